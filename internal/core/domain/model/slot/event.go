package slot

import (
	"time"

	"lechon/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventOrderAssigned     EventType = "order_assigned"
	EventOrderUnassigned   EventType = "order_unassigned"
	EventSlotStatusChanged EventType = "slot_status_changed"
)

// Event describes a committed change to a slot. Aggregates record events as they
// change; the unit of work hands them to the publisher once the transaction commits.
type Event struct {
	Type       EventType
	SlotID     kernel.UUID
	OrderID    *kernel.UUID
	Status     Status
	Occupancy  int
	Capacity   int
	OccurredAt time.Time
}
