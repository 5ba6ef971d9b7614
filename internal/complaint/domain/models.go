package domain

import "context"

const (
	CompensationCredit = "credit"
	CompensationRefund = "refund"

	StatusResolved = "resolved"
)

// Complaint references one committed order and one recipe that appeared in
// it. Compensation issuance and resolution are simultaneous, so status
// starts at "resolved". JSON field names are part of the on-disk contract.
type Complaint struct {
	ComplaintID      string  `json:"complaint_id"`
	GR               string  `json:"gr"`
	OrderID          string  `json:"order_id"`
	Recipe           string  `json:"recipe"`
	Issue            string  `json:"issue"`
	CompensationType string  `json:"compensation_type"`
	Compensation     float64 `json:"compensation"`
	Status           string  `json:"status"`
	Date             string  `json:"date"`
	CreatedBy        string  `json:"created_by"`
	ModifiedDate     string  `json:"modified_date,omitempty"`
	ModifiedBy       string  `json:"modified_by,omitempty"`
}

type CreateRequest struct {
	GR                 string   `json:"gr"`
	OrderID            string   `json:"order_id"`
	Recipe             string   `json:"recipe"`
	Description        string   `json:"description"`
	CompensationType   string   `json:"compensation_type"`
	CompensationAmount *float64 `json:"compensation_amount"`
}

// UpdateRequest carries the mutable complaint fields. Nil fields are left
// untouched; a modification stamp is applied regardless.
type UpdateRequest struct {
	GR                 string   `json:"gr"`
	ComplaintID        string   `json:"complaint_id"`
	Description        *string  `json:"description"`
	CompensationType   *string  `json:"compensation_type"`
	CompensationAmount *float64 `json:"compensation_amount"`
	Status             *string  `json:"status"`
}

type Service interface {
	List(ctx context.Context, gr string) ([]Complaint, error)
	Create(ctx context.Context, req CreateRequest) (Complaint, error)
	Update(ctx context.Context, req UpdateRequest) (Complaint, error)
	Delete(ctx context.Context, gr, complaintID string) error
	// CountForAccount and CountIndex back the diagnostics surface.
	CountForAccount(ctx context.Context, gr string) (int, error)
	CountIndex(ctx context.Context) (map[string]int, error)
}
