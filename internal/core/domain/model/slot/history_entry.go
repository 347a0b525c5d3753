package slot

import (
	"errors"
	"time"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/pkg/errs"
)

// HistoryEntry is one cooking session: the interval an order spent in a slot.
// An entry with a nil end is open.
type HistoryEntry struct {
	id           kernel.UUID
	orderID      kernel.UUID
	startCooking time.Time
	endCooking   *time.Time
}

func NewHistoryEntry(id, orderID kernel.UUID, startCooking time.Time) (*HistoryEntry, error) {
	return RestoreHistoryEntry(id, orderID, startCooking, nil)
}

// RestoreHistoryEntry rebuilds a persisted entry.
func RestoreHistoryEntry(id, orderID kernel.UUID, startCooking time.Time, endCooking *time.Time) (*HistoryEntry, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if startCooking.IsZero() {
		return nil, errs.NewValueIsRequiredError("start cooking")
	}
	if endCooking != nil && endCooking.Before(startCooking) {
		return nil, errs.NewValueIsInvalidError("end cooking before start cooking")
	}

	return &HistoryEntry{
		id:           id,
		orderID:      orderID,
		startCooking: startCooking,
		endCooking:   copyTime(endCooking),
	}, nil
}

func (h *HistoryEntry) ID() kernel.UUID {
	return h.id
}

func (h *HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

func (h *HistoryEntry) StartCooking() time.Time {
	return h.startCooking
}

func (h *HistoryEntry) EndCooking() *time.Time {
	return copyTime(h.endCooking)
}

func (h *HistoryEntry) IsOpen() bool {
	return h.endCooking == nil
}

// minSessionLength keeps endCooking strictly after startCooking at the precision
// timestamps are stored with.
const minSessionLength = time.Microsecond

func (h *HistoryEntry) close(now time.Time) {
	if !now.After(h.startCooking) {
		now = h.startCooking.Add(minSessionLength)
	}
	h.endCooking = &now
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
