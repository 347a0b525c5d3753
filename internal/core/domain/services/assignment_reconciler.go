package services

import (
	"time"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/order"
	"lechon/internal/core/domain/model/slot"
)

// Repairs lists the aggregates a reconciliation pass changed.
type Repairs struct {
	Slots  []*slot.Slot
	Orders []*order.Order
}

// Count is the number of repaired aggregates.
func (r Repairs) Count() int {
	return len(r.Slots) + len(r.Orders)
}

// AssignmentReconciler re-derives order state and cooking history from slot
// occupancy, which is treated as the source of truth:
//   - an order pointing at a slot that does not list it is detached
//   - an order listed by a slot but not pointing at it is re-attached
//   - open sessions of orders a slot no longer lists are closed
//   - every occupant without an open session gets one
//   - every available/occupied slot gets its status re-derived
//
// A second pass over the repaired state changes nothing.
type AssignmentReconciler struct{}

func NewAssignmentReconciler() AssignmentReconciler {
	return AssignmentReconciler{}
}

// Reconcile expects every slot, and every order that is either assigned or listed
// by a slot. When two slots list the same order, the first one in slots wins.
func (AssignmentReconciler) Reconcile(slots []*slot.Slot, orders []*order.Order, now time.Time) (Repairs, error) {
	listedBy := make(map[kernel.UUID]*slot.Slot)
	for _, s := range slots {
		if err := s.Validate(); err != nil {
			return Repairs{}, err
		}
		for _, id := range s.CurrentOrders() {
			if _, ok := listedBy[id]; !ok {
				listedBy[id] = s
			}
		}
	}

	var repairs Repairs
	byID := make(map[kernel.UUID]*order.Order, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return Repairs{}, err
		}
		byID[o.ID()] = o

		owner, listed := listedBy[o.ID()]
		switch {
		case listed && (!o.IsAssigned() || !o.SlotID().IsEqual(owner.ID())):
			startedAt := now
			if entry := owner.OpenEntryFor(o.ID()); entry != nil {
				startedAt = entry.StartCooking()
			}
			if err := o.ReattachToSlot(owner.ID(), startedAt, now); err != nil {
				return Repairs{}, err
			}
			repairs.Orders = append(repairs.Orders, o)
		case !listed && o.IsAssigned():
			o.DetachFromSlot(now)
			repairs.Orders = append(repairs.Orders, o)
		}
	}

	for _, s := range slots {
		startedAt := func(orderID kernel.UUID) time.Time {
			o, ok := byID[orderID]
			if !ok || !o.IsAssigned() || !o.SlotID().IsEqual(s.ID()) || o.CookingDate() == nil {
				return time.Time{}
			}
			return *o.CookingDate()
		}

		historyChanged, err := s.RepairHistory(now, startedAt)
		if err != nil {
			return Repairs{}, err
		}
		if statusChanged := s.ReconcileStatus(now); historyChanged || statusChanged {
			repairs.Slots = append(repairs.Slots, s)
		}
	}

	return repairs, nil
}
