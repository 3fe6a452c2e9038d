package dto

type CreateComplaintDTO struct {
	OrderID  uint64 `json:"order_id" validate:"required,gt=0"`
	ClientID uint64 `json:"client_id" validate:"required,gt=0"`
	Subject  string `json:"subject" validate:"required,min=3,max=255"`
	Detail   string `json:"detail" validate:"required,min=10"`
}

type ResolveComplaintDTO struct {
	ResolutionNote string `json:"resolution_note" validate:"required,min=3"`
}

type ComplaintDTO struct {
	ID             uint64  `json:"id"`
	OrderID        uint64  `json:"order_id"`
	ClientID       uint64  `json:"client_id"`
	Subject        string  `json:"subject"`
	Detail         string  `json:"detail"`
	Status         string  `json:"status"`
	ResolutionNote *string `json:"resolution_note,omitempty"`
	ResolvedAt     *string `json:"resolved_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}
