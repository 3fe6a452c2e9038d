package websocket

import "time"

// Envelope wraps every pushed message with a type tag so the frontend can
// dispatch on it.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// StageChangedPayload is pushed to board clients when an order card moves.
type StageChangedPayload struct {
	OrderID     uint64 `json:"order_id"`
	OrderNumber string `json:"order_number"`
	FromStage   string `json:"from_stage,omitempty"`
	ToStage     string `json:"to_stage"`
	Progress    int    `json:"progress"`
}
