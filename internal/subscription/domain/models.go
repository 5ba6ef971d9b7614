package domain

import "context"

// Subscription is the one-to-one subscription record for an account.
// Seed-only existence: never created or deleted here, only mutated.
type Subscription struct {
	GR          string `json:"gr"`
	Status      string `json:"status"`
	Frequency   string `json:"frequency"`
	Recipes     int    `json:"recipes"`
	BoxSize     int    `json:"box_size"`
	DeliveryDay string `json:"delivery_day"`
}

// UpdateRequest carries the mutable subscription fields. Nil fields fall
// back to the record's prior value.
type UpdateRequest struct {
	GR          string  `json:"gr"`
	Status      *string `json:"status"`
	Frequency   *string `json:"frequency"`
	Recipes     *int    `json:"recipes"`
	BoxSize     *int    `json:"box_size"`
	DeliveryDay *string `json:"delivery_day"`
}

type Service interface {
	Get(ctx context.Context, gr string) (Subscription, error)
	Update(ctx context.Context, req UpdateRequest) (Subscription, error)
}
