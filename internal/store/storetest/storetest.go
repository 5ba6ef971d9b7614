// Package storetest opens throwaway stores over a temp data directory.
package storetest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	complaintdomain "github.com/grazebox/backoffice/internal/complaint/domain"
	customerdomain "github.com/grazebox/backoffice/internal/customer/domain"
	messagedomain "github.com/grazebox/backoffice/internal/message/domain"
	orderdomain "github.com/grazebox/backoffice/internal/order/domain"
	"github.com/grazebox/backoffice/internal/store"
	subscriptiondomain "github.com/grazebox/backoffice/internal/subscription/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Fixture is the initial content of every collection. Nil slices are
// written as empty collections.
type Fixture struct {
	Customers     []customerdomain.Customer
	Orders        []orderdomain.Order
	Complaints    []complaintdomain.Complaint
	Subscriptions []subscriptiondomain.Subscription
	Threads       []messagedomain.Thread
	Events        []activitydomain.Event
}

// Open writes the fixture into a temp directory and opens a store over it.
func Open(t *testing.T, f Fixture) (*store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	WriteFixture(t, dir, f)

	s, err := store.Open(dir, zap.NewNop())
	require.NoError(t, err)
	return s, dir
}

// WriteFixture lays the six collection files down in dir.
func WriteFixture(t *testing.T, dir string, f Fixture) {
	t.Helper()
	writeFile(t, dir, "customers.json", f.Customers, len(f.Customers))
	writeFile(t, dir, "orders.json", f.Orders, len(f.Orders))
	writeFile(t, dir, "complaints.json", f.Complaints, len(f.Complaints))
	writeFile(t, dir, "subscriptions.json", f.Subscriptions, len(f.Subscriptions))
	writeFile(t, dir, "messages.json", f.Threads, len(f.Threads))
	writeFile(t, dir, "activity.json", f.Events, len(f.Events))
}

func writeFile(t *testing.T, dir, name string, records any, n int) {
	t.Helper()
	payload := []byte("[]")
	if n > 0 {
		var err error
		payload, err = json.MarshalIndent(records, "", "  ")
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), payload, 0o644))
}

// ReadFile decodes one collection file from dir into out.
func ReadFile(t *testing.T, dir, name string, out any) {
	t.Helper()
	payload, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(payload, out))
}
