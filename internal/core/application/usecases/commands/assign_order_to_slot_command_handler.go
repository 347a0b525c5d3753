package commands

import (
	"context"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/services"
)

// AssignOrderToSlotCommandHandler assigns an order to a slot.
//
// The slot row is locked before its capacity is checked and the order row is
// locked after it, so concurrent assignments to one slot run one at a time and
// the loser of a race for the last unit gets slot.ErrCapacityExceeded.
//
// Errors, in the order they are checked:
//   - errs.ErrObjectNotFound for the slot, then for the order
//   - slot.ErrSlotUnavailable or slot.ErrCapacityExceeded
//   - order.ErrOrderAlreadyAssigned
//   - errs.ErrStorageFailure from the repositories
type AssignOrderToSlotCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	metrics    SlotMetrics
}

func NewAssignOrderToSlotCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	metrics SlotMetrics,
) AssignOrderToSlotCommandHandler {
	return AssignOrderToSlotCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		metrics:    metrics,
	}
}

// Handle runs the assignment in one transaction.
func (h AssignOrderToSlotCommandHandler) Handle(ctx context.Context, cmd AssignOrderToSlotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := h.assign(ctx, cmd)
	if reason := rejectionReason(err); reason != "" {
		h.metrics.Rejected("assign", reason)
	}
	if err != nil {
		return err
	}

	h.metrics.OrderAssigned()
	return nil
}

func (h AssignOrderToSlotCommandHandler) assign(ctx context.Context, cmd AssignOrderToSlotCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	slotRepo := uow.SlotRepository()
	orderRepo := uow.OrderRepository()

	slotID, err := resolveID("slot", cmd.SlotID())
	if err != nil {
		return err
	}
	s, err := slotRepo.GetForUpdate(ctx, slotID)
	if err != nil {
		return err
	}

	orderID, err := resolveID("order", cmd.OrderID())
	if err != nil {
		return err
	}
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	if err = services.NewSlotAssigner().Assign(s, o, h.clock.Now()); err != nil {
		return err
	}

	if err = slotRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
