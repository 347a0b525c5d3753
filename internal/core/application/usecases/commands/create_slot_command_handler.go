package commands

import (
	"context"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/slot"
)

// CreateSlotCommandHandler persists a new, empty, available slot.
// A name already used by another slot fails with errs.ErrObjectAlreadyExists.
type CreateSlotCommandHandler struct {
	uowFactory SlotUoWFactory
	clock      kernel.Clock
}

func NewCreateSlotCommandHandler(uowFactory SlotUoWFactory, clock kernel.Clock) CreateSlotCommandHandler {
	return CreateSlotCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CreateSlotCommandHandler) Handle(ctx context.Context, cmd CreateSlotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	s, err := slot.NewSlot(cmd.SlotID(), cmd.Name(), cmd.Capacity(), cmd.Type(), cmd.Notes(), h.clock.Now())
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

	if err = uow.SlotRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
