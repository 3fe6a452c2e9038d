package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"garment-oms/internal/events"
	"garment-oms/pkg/eventbus"
	"garment-oms/pkg/websocket"
)

// NotificationListener fans committed order events out to connected board
// clients over the WebSocket hub.
type NotificationListener struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewNotificationListener(hub *websocket.Hub, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{hub: hub, logger: logger}
}

// Register wires the listener onto the bus. Called once at startup.
func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe("order.stage.changed", l.handleStageChanged)
	bus.Subscribe("order.completed", l.handleCompleted)
}

func (l *NotificationListener) handleStageChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderStageChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %q", event.Name())
	}

	l.logger.Info("pushing stage change to board clients",
		zap.Uint64("order_id", e.OrderID),
		zap.String("from", e.FromStage),
		zap.String("to", e.ToStage),
	)

	l.hub.BroadcastEnvelope("order.stage.changed", websocket.StageChangedPayload{
		OrderID:     e.OrderID,
		OrderNumber: e.OrderNumber,
		FromStage:   e.FromStage,
		ToStage:     e.ToStage,
		Progress:    e.Progress,
	})
	return nil
}

func (l *NotificationListener) handleCompleted(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderCompletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %q", event.Name())
	}

	l.logger.Info("order completed",
		zap.Uint64("order_id", e.OrderID),
		zap.String("order_number", e.OrderNumber),
	)

	l.hub.BroadcastEnvelope("order.completed", map[string]interface{}{
		"order_id":     e.OrderID,
		"order_number": e.OrderNumber,
		"completed_at": e.CompletedAt,
	})
	return nil
}
