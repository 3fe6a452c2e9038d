package dto

type StageCountDTO struct {
	Stage   string `json:"stage"`
	Ordinal int    `json:"ordinal"`
	Count   int    `json:"count"`
}

type ActivityDTO struct {
	OrderID     uint64 `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Stage       string `json:"stage"`
	EnteredAt   string `json:"entered_at"`
}

type DashboardDTO struct {
	TotalOrders     int             `json:"total_orders"`
	DelayedOrders   int             `json:"delayed_orders"`
	CompletedOrders int             `json:"completed_orders"`
	OpenComplaints  int             `json:"open_complaints"`
	StageCounts     []StageCountDTO `json:"stage_counts"`
	RecentActivity  []ActivityDTO   `json:"recent_activity"`
}
