package domain

import "context"

// TimeLayout is the fixed UTC text format used for every audit timestamp.
// It sorts lexicographically in chronological order, which the store relies
// on when ordering events.
const TimeLayout = "2006-01-02T15:04:05Z"

// Audit categories.
const (
	CategoryPersonalUpdated    = "personal_updated"
	CategorySubscriptionUpdate = "subscription_update"
	CategoryOrderCreated       = "order_created"
	CategoryOrderDeleted       = "order_deleted"
	CategoryComplaintCreated   = "complaint_created"
	CategoryComplaintUpdated   = "complaint_updated"
	CategoryComplaintDeleted   = "complaint_deleted"
)

// Delta is the structured old/new pair for one changed field.
type Delta struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Event is one append-only audit record. JSON field names are part of the
// on-disk contract.
type Event struct {
	GR          string           `json:"gr"`
	Time        string           `json:"time"`
	Category    string           `json:"category"`
	Actor       string           `json:"actor"`
	Description string           `json:"description"`
	Detail      string           `json:"detail"`
	Changes     []string         `json:"changes,omitempty"`
	Details     map[string]Delta `json:"details,omitempty"`
}

// Change is one entry of a command-specific field diff. Label is the
// human-readable name used in the "Label: old → new" change string; Field
// is the structured map key.
type Change struct {
	Field string
	Label string
	Old   any
	New   any
}

type ListRequest struct {
	GR       string
	Category string
	Actor    string
}

type ClearResult struct {
	ClearedCount int `json:"cleared_count"`
}

type Service interface {
	// List returns the account's events, newest first, optionally filtered
	// by category and actor.
	List(ctx context.Context, req ListRequest) ([]Event, error)
	// Clear removes every event for the account and reports how many.
	Clear(ctx context.Context, gr string) (ClearResult, error)
}
