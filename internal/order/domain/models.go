package domain

import "context"

const (
	StatusPending   = "pending"
	StatusCommitted = "committed"
)

// Recipe is one line item in an order.
type Recipe struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CourierDetails is populated closer to delivery; null until then.
type CourierDetails struct {
	Courier           string `json:"courier"`
	TrackingNumber    string `json:"tracking_number"`
	EstimatedDelivery string `json:"estimated_delivery"`
}

// Order is one box delivery for an account. Payment is fixed at creation
// from the price table in force then; it is never recomputed. JSON field
// names are part of the on-disk contract.
type Order struct {
	GR             string          `json:"gr"`
	OrderID        string          `json:"order_id"`
	OrderDate      string          `json:"order_date"`
	Status         string          `json:"status"`
	BoxSize        int             `json:"box_size"`
	Recipes        []Recipe        `json:"recipes"`
	Payment        float64         `json:"payment"`
	CourierDetails *CourierDetails `json:"courier_details"`
}

type GenerateOrderRequest struct {
	GR           string   `json:"gr"`
	DeliveryDate string   `json:"delivery_date"`
	BoxSize      int      `json:"box_size"`
	Recipes      []Recipe `json:"recipes"`
}

type Service interface {
	List(ctx context.Context, gr string) ([]Order, error)
	Generate(ctx context.Context, req GenerateOrderRequest) (Order, error)
	Cancel(ctx context.Context, orderID string) error
}
