package domain

import "context"

// Customer is one account's identity and contact record. JSON field names
// are part of the on-disk contract and must not change.
type Customer struct {
	GR        string `json:"gr"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Postcode  string `json:"postcode"`
	Address   string `json:"address"`
	City      string `json:"city"`
}

// Summary is the dashboard header view: identity plus the subscription
// status read from the subscription collection at query time.
type Summary struct {
	GR                 string `json:"gr"`
	Name               string `json:"name"`
	Postcode           string `json:"postcode"`
	SubscriptionStatus string `json:"subscription_status"`
}

// SearchField selects which customer attribute a search matches against.
type SearchField string

const (
	SearchByGR       SearchField = "gr"
	SearchByFullName SearchField = "full_name"
	SearchByEmail    SearchField = "email"
	SearchByPhone    SearchField = "phone"
	SearchByPostcode SearchField = "postcode"
)

type UpdatePersonalRequest struct {
	GR        string `json:"gr"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Postcode  string `json:"postcode"`
	Address   string `json:"address"`
	City      string `json:"city"`
}

type Service interface {
	Summary(ctx context.Context, gr string) (Summary, error)
	Search(ctx context.Context, field SearchField, query string) ([]Customer, error)
	UpdatePersonal(ctx context.Context, req UpdatePersonalRequest) (Customer, error)
}
