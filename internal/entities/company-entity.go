package entities

import "time"

// Company is a garment manufacturer tenant. The short code feeds the order
// number format; OrderSeq is the per-company sequence counter behind it.
type Company struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	ShortCode string     `json:"short_code"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Address   *string    `json:"address,omitempty"`
	GSTNumber *string    `json:"gst_number,omitempty"`
	OrderSeq  uint64     `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
