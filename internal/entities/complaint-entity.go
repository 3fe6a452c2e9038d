package entities

import "time"

// Complaint statuses.
const (
	ComplaintOpen     = "open"
	ComplaintResolved = "resolved"
)

// Complaint is a client complaint raised against an order.
type Complaint struct {
	ID             uint64     `json:"id"`
	OrderID        uint64     `json:"order_id"`
	ClientID       uint64     `json:"client_id"`
	Subject        string     `json:"subject"`
	Detail         string     `json:"detail"`
	Status         string     `json:"status"`
	ResolutionNote *string    `json:"resolution_note,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
