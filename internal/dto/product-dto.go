package dto

type CreateProductDTO struct {
	CompanyID   uint64  `json:"company_id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	SKU         string  `json:"sku" validate:"required,min=2,max=64"`
	Fabric      *string `json:"fabric,omitempty"`
	Description *string `json:"description,omitempty"`
	UnitPrice   float64 `json:"unit_price" validate:"required,gt=0"`
}

type UpdateProductDTO struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Fabric      *string  `json:"fabric,omitempty"`
	Description *string  `json:"description,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty" validate:"omitempty,gt=0"`
}

type ProductDTO struct {
	ID          uint64  `json:"id"`
	CompanyID   uint64  `json:"company_id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Fabric      *string `json:"fabric,omitempty"`
	Description *string `json:"description,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}
