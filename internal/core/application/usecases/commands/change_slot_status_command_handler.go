package commands

import (
	"context"

	"lechon/internal/core/domain/model/kernel"
)

// ChangeSlotStatusCommandHandler applies an operator status change under the slot lock.
// Occupants are kept; a slot set back to available comes out occupied when full.
type ChangeSlotStatusCommandHandler struct {
	uowFactory SlotUoWFactory
	clock      kernel.Clock
}

func NewChangeSlotStatusCommandHandler(uowFactory SlotUoWFactory, clock kernel.Clock) ChangeSlotStatusCommandHandler {
	return ChangeSlotStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h ChangeSlotStatusCommandHandler) Handle(ctx context.Context, cmd ChangeSlotStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	slotID, err := resolveID("slot", cmd.SlotID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	slotRepo := uow.SlotRepository()
	s, err := slotRepo.GetForUpdate(ctx, slotID)
	if err != nil {
		return err
	}

	if err = s.ChangeStatus(cmd.Status(), h.clock.Now()); err != nil {
		return err
	}

	if err = slotRepo.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
