package entities

import "time"

// Product is a garment article a company manufactures.
type Product struct {
	ID          uint64     `json:"id"`
	CompanyID   uint64     `json:"company_id"`
	Name        string     `json:"name"`
	SKU         string     `json:"sku"`
	Fabric      *string    `json:"fabric,omitempty"`
	Description *string    `json:"description,omitempty"`
	UnitPrice   float64    `json:"unit_price"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
