package service

import (
	"fmt"

	"github.com/grazebox/backoffice/internal/activity/domain"
	"github.com/grazebox/backoffice/internal/clock"
	"github.com/grazebox/backoffice/internal/config"
	"github.com/grazebox/backoffice/internal/normalize"
	"github.com/grazebox/backoffice/internal/store"
	"go.uber.org/fx"
)

type RecorderParams struct {
	fx.In

	Clock clock.Clock
	Cfg   config.Config
}

// Recorder appends structured audit events inside a command's transaction,
// stamped with the fixed operator identity.
type Recorder struct {
	clock    clock.Clock
	operator string
}

func NewRecorder(p RecorderParams) *Recorder {
	return &Recorder{clock: p.Clock, operator: p.Cfg.Operator}
}

// RecordAction appends one event with a preformatted detail line.
func (r *Recorder) RecordAction(tx *store.Tx, gr, category, description, detail string) {
	tx.AppendEvent(r.event(gr, category, description, detail))
}

// RecordChange appends one event summarizing a field-level diff. A no-op
// update is silent: with an empty change list nothing is recorded. The
// structured per-field map is attached only when includeDetails is set;
// subscription updates are the one category that carries it.
func (r *Recorder) RecordChange(tx *store.Tx, gr, category, description string, changes []domain.Change, includeDetails bool) bool {
	if len(changes) == 0 {
		return false
	}

	lines := make([]string, 0, len(changes))
	for _, c := range changes {
		lines = append(lines, fmt.Sprintf("%s: %v → %v", c.Label, c.Old, c.New))
	}

	e := r.event(gr, category, description, modifiedDetail(len(changes)))
	e.Changes = lines
	if includeDetails {
		details := make(map[string]domain.Delta, len(changes))
		for _, c := range changes {
			details[c.Field] = domain.Delta{Old: c.Old, New: c.New}
		}
		e.Details = details
	}
	tx.AppendEvent(e)
	return true
}

func (r *Recorder) event(gr, category, description, detail string) domain.Event {
	return domain.Event{
		GR:          normalize.ID(gr),
		Time:        r.clock.Now().UTC().Format(domain.TimeLayout),
		Category:    category,
		Actor:       r.operator,
		Description: description,
		Detail:      detail,
	}
}

// Operator is the actor identity stamped on events and modification marks.
func (r *Recorder) Operator() string { return r.operator }

// Now is the recorder's clock reading, shared so record timestamps and
// audit timestamps within one command agree.
func (r *Recorder) Now() string {
	return r.clock.Now().UTC().Format(domain.TimeLayout)
}

func modifiedDetail(n int) string {
	if n == 1 {
		return "1 field modified"
	}
	return fmt.Sprintf("%d fields modified", n)
}

// Diff appends a change entry when old and new differ.
func Diff(changes []domain.Change, field, label string, oldValue, newValue any) []domain.Change {
	if oldValue == newValue {
		return changes
	}
	return append(changes, domain.Change{Field: field, Label: label, Old: oldValue, New: newValue})
}
