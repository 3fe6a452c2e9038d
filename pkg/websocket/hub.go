package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub tracks connected board clients and fans messages out to all of them.
// Every admin looking at the Kanban board holds one connection; a stage
// change anywhere is pushed to everyone so boards stay in sync.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	Register   chan *Client
	unregister chan *Client
	logger     *zap.Logger
	mu         sync.RWMutex
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("board client connected", zap.Uint64("user_id", client.UserID))
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Debug("board client disconnected", zap.Uint64("user_id", client.UserID))
		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer, drop the frame rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastEnvelope serializes the payload into the standard envelope and
// queues it for every connected client.
func (h *Hub) BroadcastEnvelope(msgType string, payload interface{}) {
	env := Envelope{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("marshal websocket envelope", zap.Error(err))
		return
	}
	h.broadcast <- data
}
