package commands

import (
	"context"
	"log/slog"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/services"
)

// ReconcileAssignmentsCommandHandler makes order state agree with slot occupancy.
//
// Every slot is locked, then every order that is assigned or listed by a slot, so
// the pass cannot interleave with assignments. Slot occupancy wins: orders are
// detached or re-attached to match it and slot statuses are re-derived.
type ReconcileAssignmentsCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	metrics    SlotMetrics
	logger     *slog.Logger
}

func NewReconcileAssignmentsCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	metrics SlotMetrics,
	logger *slog.Logger,
) ReconcileAssignmentsCommandHandler {
	return ReconcileAssignmentsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		metrics:    metrics,
		logger:     logger.With("component", "reconcile-assignments"),
	}
}

// Handle returns the number of slots and orders it changed.
func (h ReconcileAssignmentsCommandHandler) Handle(ctx context.Context, cmd ReconcileAssignmentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	slotRepo := uow.SlotRepository()
	orderRepo := uow.OrderRepository()

	slots, err := slotRepo.GetAllForUpdate(ctx)
	if err != nil {
		return 0, err
	}

	var listed []kernel.UUID
	for _, s := range slots {
		listed = append(listed, s.CurrentOrders()...)
	}

	orders, err := orderRepo.GetAssignedOrIn(ctx, listed)
	if err != nil {
		return 0, err
	}

	repairs, err := services.NewAssignmentReconciler().Reconcile(slots, orders, h.clock.Now())
	if err != nil {
		return 0, err
	}

	for _, s := range repairs.Slots {
		if err = slotRepo.Update(ctx, s); err != nil {
			return 0, err
		}
	}
	for _, o := range repairs.Orders {
		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
		h.logger.InfoContext(ctx, "order repaired",
			"order_id", o.ID().String(), "status", o.Status().String(), "assigned", o.IsAssigned())
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if repairs.Count() > 0 {
		h.metrics.Reconciled(repairs.Count())
	}
	return repairs.Count(), nil
}
