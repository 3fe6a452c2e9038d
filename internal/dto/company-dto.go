package dto

type CreateCompanyDTO struct {
	Name      string  `json:"name" validate:"required,min=2,max=255"`
	ShortCode string  `json:"short_code" validate:"required,shortcode"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Address   *string `json:"address,omitempty" validate:"omitempty,min=5"`
	GSTNumber *string `json:"gst_number,omitempty"`
}

type UpdateCompanyDTO struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Address   *string `json:"address,omitempty" validate:"omitempty,min=5"`
	GSTNumber *string `json:"gst_number,omitempty"`
}

type CompanyDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	ShortCode string  `json:"short_code"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	GSTNumber *string `json:"gst_number,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}
