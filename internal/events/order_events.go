package events

import "time"

// OrderStageChangedEvent fires after a stage transition is committed to
// storage. No-op transitions (card dropped on its own column) never publish.
type OrderStageChangedEvent struct {
	EventID     string
	OrderID     uint64
	OrderNumber string
	FromStage   string
	ToStage     string
	Progress    int
	ActorID     uint64
	OccurredAt  time.Time
}

func (e OrderStageChangedEvent) Name() string {
	return "order.stage.changed"
}

// OrderCompletedEvent fires when an order reaches the terminal stage.
type OrderCompletedEvent struct {
	EventID     string
	OrderID     uint64
	OrderNumber string
	CompletedAt time.Time
}

func (e OrderCompletedEvent) Name() string {
	return "order.completed"
}
