package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// loadCollection reads one collection file into typed records. Unknown
// fields are rejected: the on-disk field names are a fixed contract and a
// non-conforming record is a startup error, not something to repair.
func loadCollection[T any](dir, name string) ([]T, error) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open collection %s: %w", name, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	var records []T
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", name, err)
	}
	return records, nil
}

// writeCollection serializes a full collection and atomically replaces its
// file: the payload goes to a temp file in the same directory, is fsynced,
// then renamed over the target. A failed write never leaves the file in a
// mixed old/new state.
func writeCollection(dir, name string, records any) error {
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", name, err)
	}
	// An emptied collection is an empty sequence on disk, never null.
	if string(payload) == "null" {
		payload = []byte("[]")
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp for %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp for %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp for %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
