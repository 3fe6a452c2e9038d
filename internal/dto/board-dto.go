package dto

// BoardCardDTO is one order card on the Kanban board.
type BoardCardDTO struct {
	ID                   uint64  `json:"id"`
	OrderNumber          string  `json:"order_number"`
	ClientID             uint64  `json:"client_id"`
	ProductID            uint64  `json:"product_id"`
	Quantity             int     `json:"quantity"`
	Progress             int     `json:"progress"`
	IsDelayed            bool    `json:"is_delayed"`
	ExpectedDeliveryDate *string `json:"expected_delivery_date,omitempty"`
	EnteredStageAt       *string `json:"entered_stage_at,omitempty"`
}

// BoardColumnDTO is one pipeline stage with the orders currently visible in
// it. Completed orders older than the retention window are filtered out of
// the last column.
type BoardColumnDTO struct {
	Stage   string         `json:"stage"`
	Ordinal int            `json:"ordinal"`
	Orders  []BoardCardDTO `json:"orders"`
}

type BoardDTO struct {
	Columns []BoardColumnDTO `json:"columns"`
}
