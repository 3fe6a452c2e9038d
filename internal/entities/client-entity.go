package entities

import "time"

// Client is a buyer that places orders with a company.
type Client struct {
	ID        uint64     `json:"id"`
	CompanyID uint64     `json:"company_id"`
	Name      string     `json:"name"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Address   *string    `json:"address,omitempty"`
	City      *string    `json:"city,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
