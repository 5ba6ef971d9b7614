package service_test

import (
	"context"
	"testing"

	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	"github.com/grazebox/backoffice/internal/activity/service"
	"github.com/grazebox/backoffice/internal/fault"
	"github.com/grazebox/backoffice/internal/store"
	"github.com/grazebox/backoffice/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (activitydomain.Service, *store.Store) {
	t.Helper()
	st, _ := storetest.Open(t, storetest.Fixture{
		Events: []activitydomain.Event{
			{GR: "GR-10001", Time: "2026-08-01T09:00:00Z", Category: activitydomain.CategoryOrderCreated, Actor: "admin"},
			{GR: "GR-10001", Time: "2026-08-10T09:00:00Z", Category: activitydomain.CategoryPersonalUpdated, Actor: "admin"},
			{GR: "GR-10001", Time: "2026-08-12T09:00:00Z", Category: activitydomain.CategoryOrderCreated, Actor: "night-shift"},
			{GR: "GR-10002", Time: "2026-08-05T09:00:00Z", Category: activitydomain.CategoryComplaintCreated, Actor: "admin"},
		},
	})
	return service.New(service.Params{Store: st, Log: zap.NewNop()}), st
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newService(t)

	events, err := svc.List(context.Background(), activitydomain.ListRequest{GR: "gr-10001"})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "2026-08-12T09:00:00Z", events[0].Time)
	assert.Equal(t, "2026-08-01T09:00:00Z", events[2].Time)
}

func TestListFilterByCategory(t *testing.T) {
	svc, _ := newService(t)

	events, err := svc.List(context.Background(), activitydomain.ListRequest{
		GR:       "GR-10001",
		Category: activitydomain.CategoryOrderCreated,
	})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestListFilterByActorAndCategory(t *testing.T) {
	svc, _ := newService(t)

	events, err := svc.List(context.Background(), activitydomain.ListRequest{
		GR:       "GR-10001",
		Category: activitydomain.CategoryOrderCreated,
		Actor:    "night-shift",
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2026-08-12T09:00:00Z", events[0].Time)
}

func TestListBlankIdentifier(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.List(context.Background(), activitydomain.ListRequest{})
	assert.True(t, fault.IsKind(err, fault.Validation))
}

func TestClear(t *testing.T) {
	svc, st := newService(t)

	result, err := svc.Clear(context.Background(), "gr-10001")
	require.NoError(t, err)
	assert.Equal(t, 3, result.ClearedCount)

	assert.Empty(t, st.EventsByGR("GR-10001"))
	assert.Len(t, st.EventsByGR("GR-10002"), 1)
}

func TestClearNothingToClear(t *testing.T) {
	svc, _ := newService(t)

	result, err := svc.Clear(context.Background(), "GR-99999")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ClearedCount)
}
