// Package events turns slot domain events into the JSON payload shared by every
// sink and fans them out to the configured sinks.
package events

import (
	"time"

	"lechon/internal/core/domain/model/slot"
)

// SlotEvent is the wire form of slot.Event.
type SlotEvent struct {
	Type       string    `json:"type"`
	SlotID     string    `json:"slotId"`
	OrderID    *string   `json:"orderId,omitempty"`
	SlotStatus string    `json:"slotStatus"`
	Occupancy  int       `json:"occupancy"`
	Capacity   int       `json:"capacity"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewSlotEvent(e slot.Event) SlotEvent {
	var orderID *string
	if e.OrderID != nil {
		id := e.OrderID.String()
		orderID = &id
	}

	return SlotEvent{
		Type:       string(e.Type),
		SlotID:     e.SlotID.String(),
		OrderID:    orderID,
		SlotStatus: e.Status.String(),
		Occupancy:  e.Occupancy,
		Capacity:   e.Capacity,
		OccurredAt: e.OccurredAt.UTC(),
	}
}
