package commands

import (
	"context"
	"errors"
	"log/slog"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/order"
	"lechon/internal/core/domain/services"
	"lechon/internal/core/ports"
	"lechon/internal/pkg/errs"
)

// maxUnassignAttempts bounds the retries when the order moves to another slot
// between reading it and locking its slot.
const maxUnassignAttempts = 3

// ErrUnassignContention is returned when the order kept moving between slots for
// every attempt.
var ErrUnassignContention = errors.New("order was reassigned concurrently, try again")

// UnassignOrderFromSlotCommandHandler releases an order from its slot, closes the
// cooking session and marks the order cooked.
//
// Locks are taken slot first, order second, like assignment. The slot id is read
// from the unlocked order, the slot is locked, then the order is locked and re-read;
// if it now points elsewhere the transaction is dropped and the sequence repeats.
//
// Errors:
//   - errs.ErrObjectNotFound for the order
//   - order.ErrOrderNotAssigned
//   - ErrUnassignContention after maxUnassignAttempts
//   - errs.ErrStorageFailure from the repositories
type UnassignOrderFromSlotCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	metrics    SlotMetrics
	logger     *slog.Logger
}

func NewUnassignOrderFromSlotCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	metrics SlotMetrics,
	logger *slog.Logger,
) UnassignOrderFromSlotCommandHandler {
	return UnassignOrderFromSlotCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		metrics:    metrics,
		logger:     logger.With("component", "unassign-order-from-slot"),
	}
}

func (h UnassignOrderFromSlotCommandHandler) Handle(ctx context.Context, cmd UnassignOrderFromSlotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderID, err := resolveID("order", cmd.OrderID())
	if err == nil {
		err = h.unassignWithRetry(ctx, orderID)
	}

	if reason := rejectionReason(err); reason != "" {
		h.metrics.Rejected("unassign", reason)
	}
	if err != nil {
		return err
	}

	h.metrics.OrderUnassigned()
	return nil
}

func (h UnassignOrderFromSlotCommandHandler) unassignWithRetry(ctx context.Context, orderID kernel.UUID) error {
	for range maxUnassignAttempts {
		err := h.unassign(ctx, orderID)
		if !errors.Is(err, services.ErrSlotMismatch) {
			return err
		}
		h.logger.InfoContext(ctx, "order moved while unassigning, retrying", "order_id", orderID.String())
	}
	return ErrUnassignContention
}

func (h UnassignOrderFromSlotCommandHandler) unassign(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	slotRepo := uow.SlotRepository()
	orderRepo := uow.OrderRepository()

	current, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if !current.IsAssigned() {
		return order.ErrOrderNotAssigned
	}
	slotID := *current.SlotID()

	s, err := slotRepo.GetForUpdate(ctx, slotID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return h.releaseFromMissingSlot(ctx, uow, orderRepo, orderID, slotID)
	}
	if err != nil {
		return err
	}

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	now := h.clock.Now()
	result, err := services.NewSlotAssigner().Release(s, o, now)
	if err != nil {
		return err
	}

	log := h.logger.With("slot_id", slotID.String(), "order_id", orderID.String())
	if !result.WasOccupant {
		log.WarnContext(ctx, "order was not among the slot's current orders")
	}
	switch {
	case result.OpenEntries == 0:
		log.WarnContext(ctx, "no open history entry for order")
	case result.OpenEntries > 1:
		log.WarnContext(ctx, "several open history entries for order, closed the most recent",
			"open_entries", result.OpenEntries)
		h.metrics.MultipleOpenHistory()
	}

	if err = slotRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// releaseFromMissingSlot ends the cooking of an order whose slot was deleted.
// There is no history entry left to close.
func (h UnassignOrderFromSlotCommandHandler) releaseFromMissingSlot(
	ctx context.Context,
	uow UoW,
	orderRepo ports.OrderRepository,
	orderID, slotID kernel.UUID,
) error {
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}
	if !o.IsAssigned() || !o.SlotID().IsEqual(slotID) {
		return services.ErrSlotMismatch
	}

	if err = o.ReleaseFromSlot(h.clock.Now()); err != nil {
		return err
	}
	h.logger.WarnContext(ctx, "order pointed at a missing slot, released without history",
		"slot_id", slotID.String(), "order_id", orderID.String())

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
