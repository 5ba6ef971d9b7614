package domain

import "context"

const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// Entry is one synthesized payment-log line derived from an order.
type Entry struct {
	Date    string  `json:"date"`
	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`
	Status  string  `json:"status"`
	TxnID   string  `json:"txn_id"`
}

// View is the per-account payment ledger. It is never persisted; it is
// recomputed from the current order collection on every query.
type View struct {
	GR     string  `json:"gr"`
	Method string  `json:"method"`
	Log    []Entry `json:"log"`
}

type Service interface {
	// ForAccount derives the payment view for one account. Accounts with
	// no orders have no view and yield a not-found failure.
	ForAccount(ctx context.Context, gr string) (View, error)
	// AccountCount reports how many accounts currently have a derivable
	// view; diagnostics only.
	AccountCount(ctx context.Context) (int, error)
}
