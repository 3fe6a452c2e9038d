package entities

import "time"

// User roles. Admins use the console; clients see the portal.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

type User struct {
	ID           uint64     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	ClientID     *uint64    `json:"client_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
