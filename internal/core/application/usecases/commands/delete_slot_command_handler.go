package commands

import (
	"context"
)

// DeleteSlotCommandHandler deletes an empty slot together with its history.
// A slot with occupants fails with slot.ErrSlotNotEmpty.
type DeleteSlotCommandHandler struct {
	uowFactory SlotUoWFactory
}

func NewDeleteSlotCommandHandler(uowFactory SlotUoWFactory) DeleteSlotCommandHandler {
	return DeleteSlotCommandHandler{uowFactory: uowFactory}
}

func (h DeleteSlotCommandHandler) Handle(ctx context.Context, cmd DeleteSlotCommand) error {
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

	if err = s.CheckCanDelete(); err != nil {
		return err
	}

	if err = slotRepo.Delete(ctx, s.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
