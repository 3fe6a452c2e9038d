package entities

import (
	"time"

	"garment-oms/internal/timeline"
)

// Order is the central entity: one manufacturing order moving through the
// production pipeline. CurrentStage, StageHistory and CompletedAt together
// form the slice the timeline engine owns; they are persisted in a single
// row so a transition commits atomically.
type Order struct {
	ID                   uint64                  `json:"id"`
	OrderNumber          string                  `json:"order_number"`
	CompanyID            uint64                  `json:"company_id"`
	ClientID             uint64                  `json:"client_id"`
	ProductID            uint64                  `json:"product_id"`
	Quantity             int                     `json:"quantity"`
	UnitPrice            float64                 `json:"unit_price"`
	TaxPercent           float64                 `json:"tax_percent"`
	AdvancePaid          float64                 `json:"advance_paid"`
	Notes                *string                 `json:"notes,omitempty"`
	OrderDate            time.Time               `json:"order_date"`
	ExpectedDeliveryDate *time.Time              `json:"expected_delivery_date,omitempty"`
	CurrentStage         *string                 `json:"current_stage,omitempty"`
	StageHistory         []timeline.HistoryEntry `json:"stage_history"`
	CompletedAt          *time.Time              `json:"completed_at,omitempty"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            *time.Time              `json:"updated_at,omitempty"`
}

// Timeline extracts the engine-owned slice of the order.
func (o *Order) Timeline() timeline.Timeline {
	current := ""
	if o.CurrentStage != nil {
		current = *o.CurrentStage
	}
	return timeline.Timeline{
		CurrentStage: current,
		History:      o.StageHistory,
		CompletedAt:  o.CompletedAt,
	}
}

// ApplyTimeline writes an updated timeline back onto the order.
func (o *Order) ApplyTimeline(tl timeline.Timeline) {
	if tl.CurrentStage == "" {
		o.CurrentStage = nil
	} else {
		stage := tl.CurrentStage
		o.CurrentStage = &stage
	}
	o.StageHistory = tl.History
	o.CompletedAt = tl.CompletedAt
}

// TotalAmount is the payable total: quantity times unit price plus tax.
func (o *Order) TotalAmount() float64 {
	base := float64(o.Quantity) * o.UnitPrice
	return base + base*o.TaxPercent/100
}

// BalanceDue is the total minus everything paid so far, advance included.
func (o *Order) BalanceDue(paymentsTotal float64) float64 {
	return o.TotalAmount() - o.AdvancePaid - paymentsTotal
}
