package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateOrderDTO struct {
	CompanyID            uint64    `json:"company_id" validate:"required,gt=0"`
	ClientID             uint64    `json:"client_id" validate:"required,gt=0"`
	ProductID            uint64    `json:"product_id" validate:"required,gt=0"`
	Quantity             int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice            float64   `json:"unit_price" validate:"required,gt=0"`
	TaxPercent           float64   `json:"tax_percent" validate:"gte=0,lte=100"`
	AdvancePaid          float64   `json:"advance_paid" validate:"gte=0"`
	Notes                *string   `json:"notes,omitempty" validate:"omitempty,min=3"`
	OrderDate            string    `json:"order_date" validate:"required,datetime=2006-01-02"`
	ExpectedDeliveryDate null.Time `json:"expected_delivery_date,omitempty"`
}

type UpdateOrderDTO struct {
	Quantity             *int      `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	UnitPrice            *float64  `json:"unit_price,omitempty" validate:"omitempty,gt=0"`
	TaxPercent           *float64  `json:"tax_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	AdvancePaid          *float64  `json:"advance_paid,omitempty" validate:"omitempty,gte=0"`
	Notes                *string   `json:"notes,omitempty" validate:"omitempty,min=3"`
	ExpectedDeliveryDate null.Time `json:"expected_delivery_date,omitempty"`
}

// ChangeStageDTO is the drag-and-drop payload: a single target stage label,
// canonical name or alias.
type ChangeStageDTO struct {
	Stage string `json:"stage" validate:"required,min=1"`
}

type StageHistoryEntryDTO struct {
	StageName string `json:"stage_name"`
	EnteredAt string `json:"entered_at"`
	Status    string `json:"status"`
}

type OrderDTO struct {
	ID                   uint64                 `json:"id"`
	OrderNumber          string                 `json:"order_number"`
	CompanyID            uint64                 `json:"company_id"`
	ClientID             uint64                 `json:"client_id"`
	ProductID            uint64                 `json:"product_id"`
	Quantity             int                    `json:"quantity"`
	UnitPrice            float64                `json:"unit_price"`
	TaxPercent           float64                `json:"tax_percent"`
	AdvancePaid          float64                `json:"advance_paid"`
	TotalAmount          float64                `json:"total_amount"`
	Notes                *string                `json:"notes,omitempty"`
	OrderDate            string                 `json:"order_date"`
	ExpectedDeliveryDate *string                `json:"expected_delivery_date,omitempty"`
	CurrentStage         *string                `json:"current_stage,omitempty"`
	Progress             int                    `json:"progress"`
	IsDelayed            bool                   `json:"is_delayed"`
	CompletedAt          *string                `json:"completed_at,omitempty"`
	StageHistory         []StageHistoryEntryDTO `json:"stage_history,omitempty"`
	CreatedAt            string                 `json:"created_at"`
	UpdatedAt            string                 `json:"updated_at,omitempty"`
}

type CreatePaymentDTO struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required,oneof=cash bank_transfer upi cheque"`
	Reference *string `json:"reference,omitempty"`
	PaidAt    string  `json:"paid_at" validate:"required,datetime=2006-01-02"`
}

type PaymentDTO struct {
	ID        uint64  `json:"id"`
	OrderID   uint64  `json:"order_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference *string `json:"reference,omitempty"`
	PaidAt    string  `json:"paid_at"`
	CreatedAt string  `json:"created_at"`
}
