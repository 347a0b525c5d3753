// Package ws pushes slot events to websocket subscribers.
//
// A subscriber either follows one slot or every slot. The hub keeps one room per
// followed slot plus a room for subscribers of all slots.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"lechon/internal/adapters/out/events"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/slot"
)

// AllSlots is the room of subscribers that follow every slot.
var AllSlots = kernel.UUID{}

type slotMessage struct {
	slotID  kernel.UUID
	payload []byte
}

// Hub maintains the set of active clients and broadcasts slot events to them.
type Hub struct {
	rooms map[kernel.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan slotMessage
	done       chan struct{}

	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[kernel.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan slotMessage, 256),
		done:       make(chan struct{}),
		logger:     logger.With("component", "ws-hub"),
	}
}

// Run serves registrations and broadcasts until ctx is done.
// On exit every client is disconnected.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.slotID] == nil {
				h.rooms[client.slotID] = make(map[*Client]bool)
			}
			h.rooms[client.slotID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			h.deliver(msg.slotID, msg.payload)
			if msg.slotID != AllSlots {
				h.deliver(AllSlots, msg.payload)
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues the events for every subscriber of the affected slots.
func (h *Hub) Publish(ctx context.Context, evs ...slot.Event) error {
	for _, e := range evs {
		payload, err := json.Marshal(events.NewSlotEvent(e))
		if err != nil {
			return fmt.Errorf("encode slot event: %w", err)
		}

		select {
		case h.broadcast <- slotMessage{slotID: e.SlotID, payload: payload}:
		case <-ctx.Done():
			return ctx.Err()
		case <-h.done:
			return nil
		}
	}
	return nil
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Subscribers returns the number of clients following slotID.
func (h *Hub) Subscribers(slotID kernel.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[slotID])
}

// deliver must be called with mu held.
func (h *Hub) deliver(slotID kernel.UUID, payload []byte) {
	for client := range h.rooms[slotID] {
		select {
		case client.send <- payload:
		default:
			h.logger.Warn("dropping slow websocket client", "slot_id", slotID.String())
			h.remove(client)
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.slotID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.slotID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.rooms {
		for client := range clients {
			h.remove(client)
		}
	}
}
