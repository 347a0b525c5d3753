package commands

import (
	"context"

	"lechon/internal/core/domain/model/kernel"
)

// UpdateSlotCommandHandler edits a slot under its row lock. Lowering the capacity
// below the current occupancy is rejected with errs.ErrValueIsOutOfRange; any other
// change re-derives the status against the new capacity.
type UpdateSlotCommandHandler struct {
	uowFactory SlotUoWFactory
	clock      kernel.Clock
}

func NewUpdateSlotCommandHandler(uowFactory SlotUoWFactory, clock kernel.Clock) UpdateSlotCommandHandler {
	return UpdateSlotCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h UpdateSlotCommandHandler) Handle(ctx context.Context, cmd UpdateSlotCommand) error {
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

	err = s.Update(
		cmd.NameOr(s.Name()),
		cmd.CapacityOr(s.Capacity()),
		cmd.TypeOr(s.Type()),
		cmd.NotesOr(s.Notes()),
		h.clock.Now(),
	)
	if err != nil {
		return err
	}

	if err = slotRepo.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
