package entities

import "time"

// Payment is one entry of an order's payments ledger.
type Payment struct {
	ID        uint64    `json:"id"`
	OrderID   uint64    `json:"order_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Reference *string   `json:"reference,omitempty"`
	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
}
