package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	customerdomain "github.com/grazebox/backoffice/internal/customer/domain"
	"github.com/grazebox/backoffice/internal/fault"
	orderdomain "github.com/grazebox/backoffice/internal/order/domain"
	"github.com/grazebox/backoffice/internal/store"
	"github.com/grazebox/backoffice/internal/store/storetest"
	subscriptiondomain "github.com/grazebox/backoffice/internal/subscription/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixture() storetest.Fixture {
	return storetest.Fixture{
		Customers: []customerdomain.Customer{
			{GR: "GR-10001", FirstName: "Alice", LastName: "Hargreaves", Email: "alice@example.com", Phone: "07123 456789", Postcode: "SW1A 1AA"},
			{GR: "GR-10002", FirstName: "Bashir", LastName: "Okonkwo", Email: "b@example.com", Phone: "07987 654321", Postcode: "M1 4BT"},
		},
		Subscriptions: []subscriptiondomain.Subscription{
			{GR: "GR-10001", Status: "Active", Frequency: "Weekly", Recipes: 3, BoxSize: 2, DeliveryDay: "Tuesday"},
		},
		Orders: []orderdomain.Order{
			{GR: "GR-10001", OrderID: "ORD-20260801-AAAA0001", OrderDate: "2026-08-01T12:00:00Z", Status: orderdomain.StatusCommitted, BoxSize: 2, Payment: 29.96},
			{GR: "GR-10001", OrderID: "ORD-20260810-AAAA0002", OrderDate: "2026-08-10T12:00:00Z", Status: orderdomain.StatusPending, BoxSize: 1, Payment: 14.98},
		},
		Events: []activitydomain.Event{
			{GR: "GR-10001", Time: "2026-08-01T09:00:00Z", Category: activitydomain.CategoryOrderCreated, Actor: "admin"},
			{GR: "GR-10001", Time: "2026-08-10T09:00:00Z", Category: activitydomain.CategoryOrderCreated, Actor: "admin"},
			{GR: "GR-10002", Time: "2026-08-05T09:00:00Z", Category: activitydomain.CategoryPersonalUpdated, Actor: "admin"},
		},
	}
}

func TestOpenLoadsCollections(t *testing.T) {
	s, _ := storetest.Open(t, fixture())

	counts := s.Counts()
	assert.Equal(t, 2, counts.Customers)
	assert.Equal(t, 2, counts.Orders)
	assert.Equal(t, 1, counts.Subscriptions)
	assert.Equal(t, 3, counts.Activity)
	assert.Equal(t, 0, counts.Complaints)
	assert.Equal(t, 0, counts.Messages)
}

func TestOpenMissingFile(t *testing.T) {
	dir := t.TempDir()
	storetest.WriteFixture(t, dir, fixture())
	require.NoError(t, os.Remove(filepath.Join(dir, "orders.json")))

	_, err := store.Open(dir, zap.NewNop())
	assert.Error(t, err)
}

func TestOpenDuplicateIdentifier(t *testing.T) {
	f := fixture()
	f.Customers = append(f.Customers, customerdomain.Customer{GR: "gr-10001", FirstName: "Shadow"})

	dir := t.TempDir()
	storetest.WriteFixture(t, dir, f)

	_, err := store.Open(dir, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate account identifier")
}

func TestLookupNormalizesIdentifier(t *testing.T) {
	s, _ := storetest.Open(t, fixture())

	cust, ok := s.CustomerByGR("  gr-10001 ")
	require.True(t, ok)
	assert.Equal(t, "Alice", cust.FirstName)

	_, ok = s.CustomerByGR("GR-99999")
	assert.False(t, ok)
}

func TestEventsByGRNewestFirst(t *testing.T) {
	s, _ := storetest.Open(t, fixture())

	events := s.EventsByGR("GR-10001")
	require.Len(t, events, 2)
	assert.Equal(t, "2026-08-10T09:00:00Z", events[0].Time)
	assert.Equal(t, "2026-08-01T09:00:00Z", events[1].Time)
}

func TestRunCommandPersistsDirtyCollections(t *testing.T) {
	s, dir := storetest.Open(t, fixture())

	err := s.RunCommand(func(tx *store.Tx) error {
		cust, ok := tx.CustomerByGR("GR-10001")
		require.True(t, ok)
		cust.City = "London"
		tx.UpdateCustomer(cust)
		return nil
	})
	require.NoError(t, err)

	var onDisk []customerdomain.Customer
	storetest.ReadFile(t, dir, "customers.json", &onDisk)
	require.Len(t, onDisk, 2)
	assert.Equal(t, "London", onDisk[0].City)

	// Untouched collections keep their files as-is.
	var orders []orderdomain.Order
	storetest.ReadFile(t, dir, "orders.json", &orders)
	assert.Len(t, orders, 2)
}

func TestRunCommandRollsBackOnError(t *testing.T) {
	s, dir := storetest.Open(t, fixture())

	boom := errors.New("precondition failed")
	err := s.RunCommand(func(tx *store.Tx) error {
		tx.AppendOrder(orderdomain.Order{GR: "GR-10002", OrderID: "ORD-X"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// Neither memory nor disk observed the aborted append.
	assert.Equal(t, 2, s.Counts().Orders)
	var onDisk []orderdomain.Order
	storetest.ReadFile(t, dir, "orders.json", &onDisk)
	assert.Len(t, onDisk, 2)
}

func TestRunCommandPersistenceFailure(t *testing.T) {
	s, dir := storetest.Open(t, fixture())

	// Make the orders file path unwritable by replacing it with a directory
	// so the final rename fails.
	require.NoError(t, os.Remove(filepath.Join(dir, "orders.json")))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "orders.json"), 0o755))

	err := s.RunCommand(func(tx *store.Tx) error {
		tx.AppendOrder(orderdomain.Order{GR: "GR-10002", OrderID: "ORD-X"})
		return nil
	})
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.Persistence))

	// In-memory state rolled back.
	assert.Equal(t, 2, s.Counts().Orders)
}

func TestRemoveOrder(t *testing.T) {
	s, dir := storetest.Open(t, fixture())

	err := s.RunCommand(func(tx *store.Tx) error {
		removed, ok := tx.RemoveOrder("ORD-20260810-AAAA0002")
		require.True(t, ok)
		assert.Equal(t, orderdomain.StatusPending, removed.Status)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, s.Counts().Orders)
	var onDisk []orderdomain.Order
	storetest.ReadFile(t, dir, "orders.json", &onDisk)
	require.Len(t, onDisk, 1)
	assert.Equal(t, "ORD-20260801-AAAA0001", onDisk[0].OrderID)
}

func TestClearEvents(t *testing.T) {
	s, dir := storetest.Open(t, fixture())

	var cleared int
	err := s.RunCommand(func(tx *store.Tx) error {
		cleared = tx.ClearEvents("gr-10001")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	// The other account's events survive.
	var onDisk []activitydomain.Event
	storetest.ReadFile(t, dir, "activity.json", &onDisk)
	require.Len(t, onDisk, 1)
	assert.Equal(t, "GR-10002", onDisk[0].GR)
}

func TestClearEventsNoMatches(t *testing.T) {
	s, _ := storetest.Open(t, fixture())

	var cleared int
	err := s.RunCommand(func(tx *store.Tx) error {
		cleared = tx.ClearEvents("GR-99999")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, cleared)
	assert.Equal(t, 3, s.Counts().Activity)
}

func TestEmptyCollectionPersistsAsArray(t *testing.T) {
	s, dir := storetest.Open(t, fixture())

	err := s.RunCommand(func(tx *store.Tx) error {
		tx.ClearEvents("GR-10001")
		tx.ClearEvents("GR-10002")
		return nil
	})
	require.NoError(t, err)

	payload, err := os.ReadFile(filepath.Join(dir, "activity.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(payload))
}

func TestOrderAccountCount(t *testing.T) {
	s, _ := storetest.Open(t, fixture())
	assert.Equal(t, 1, s.OrderAccountCount())
}

func TestComplaintCountIndexEmpty(t *testing.T) {
	s, _ := storetest.Open(t, fixture())
	assert.Empty(t, s.ComplaintCountIndex())
}
