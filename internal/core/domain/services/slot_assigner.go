package services

import (
	"errors"
	"time"

	"lechon/internal/core/domain/model/order"
	"lechon/internal/core/domain/model/slot"
)

// ErrSlotMismatch is returned by Release when the order points at a different slot
// than the one supplied.
var ErrSlotMismatch = errors.New("order is assigned to a different slot")

// SlotAssigner applies assignment and unassignment to a slot and an order as one step.
//
// Checks run in a fixed order, each with its own error:
//
//	Assign:  slot accepts orders (ErrSlotUnavailable / ErrCapacityExceeded),
//	         order has no slot (ErrOrderAlreadyAssigned)
//	Release: order has a slot (ErrOrderNotAssigned), it is this slot (ErrSlotMismatch)
//
// Nothing is mutated when a check fails.
type SlotAssigner struct{}

func NewSlotAssigner() SlotAssigner {
	return SlotAssigner{}
}

// Assign puts o into s and starts its cooking session at now.
func (SlotAssigner) Assign(s *slot.Slot, o *order.Order, now time.Time) error {
	if err := errors.Join(s.Validate(), o.Validate()); err != nil {
		return err
	}
	if err := s.CheckCanAccept(); err != nil {
		return err
	}
	if o.IsAssigned() {
		return order.ErrOrderAlreadyAssigned
	}

	if err := s.Assign(o.ID(), now); err != nil {
		return err
	}
	return o.AssignToSlot(s.ID(), now)
}

// Release takes o out of s, closes its cooking session and marks it cooked.
func (SlotAssigner) Release(s *slot.Slot, o *order.Order, now time.Time) (slot.ReleaseResult, error) {
	if err := errors.Join(s.Validate(), o.Validate()); err != nil {
		return slot.ReleaseResult{}, err
	}
	if !o.IsAssigned() {
		return slot.ReleaseResult{}, order.ErrOrderNotAssigned
	}
	if !o.SlotID().IsEqual(s.ID()) {
		return slot.ReleaseResult{}, ErrSlotMismatch
	}

	result, err := s.Release(o.ID(), now)
	if err != nil {
		return slot.ReleaseResult{}, err
	}
	if err := o.ReleaseFromSlot(now); err != nil {
		return slot.ReleaseResult{}, err
	}
	return result, nil
}
