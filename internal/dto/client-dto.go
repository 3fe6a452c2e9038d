package dto

type CreateClientDTO struct {
	CompanyID uint64  `json:"company_id" validate:"required,gt=0"`
	Name      string  `json:"name" validate:"required,min=2,max=255"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Address   *string `json:"address,omitempty" validate:"omitempty,min=5"`
	City      *string `json:"city,omitempty"`
}

type UpdateClientDTO struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Address *string `json:"address,omitempty" validate:"omitempty,min=5"`
	City    *string `json:"city,omitempty"`
}

type ClientDTO struct {
	ID        uint64  `json:"id"`
	CompanyID uint64  `json:"company_id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	City      *string `json:"city,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}
