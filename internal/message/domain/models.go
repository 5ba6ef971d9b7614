package domain

import "context"

// Entry is one message in an account's thread.
type Entry struct {
	Sender string `json:"sender"`
	Time   string `json:"time"`
	Body   string `json:"body"`
}

// Thread is the one-to-one ordered message log for an account. Read-only
// in this system's mutation surface.
type Thread struct {
	GR  string  `json:"gr"`
	Log []Entry `json:"log"`
}

type Service interface {
	// Thread returns the account's message thread, or an empty thread when
	// none exists.
	Thread(ctx context.Context, gr string) (Thread, error)
}
