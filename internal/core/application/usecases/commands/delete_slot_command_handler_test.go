package commands_test

import (
	"testing"

	"lechon/internal/core/application/usecases/commands"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/slot"
	"lechon/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewDeleteSlotCommand(t *testing.T) {
	_, err := commands.NewDeleteSlotCommand("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero commands.DeleteSlotCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrDeleteSlotCommandIsNotConstructed)
}

func TestDeleteSlotCommandHandler_Handle(t *testing.T) {
	t.Run("should delete empty slot", func(t *testing.T) {
		ctx := t.Context()
		s := newTestSlot(1)
		cmd, _ := commands.NewDeleteSlotCommand(s.ID().String())

		slotRepo := new(MockSlotRepository)
		uow := new(MockUoW)
		factory := new(MockSlotUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("SlotRepository").Return(slotRepo).Once(),
			slotRepo.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once(),
			slotRepo.On("Delete", ctx, s.ID()).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		err := commands.NewDeleteSlotCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		slotRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should refuse slot with occupants", func(t *testing.T) {
		ctx := t.Context()
		s := newTestSlot(1)
		require.NoError(t, s.Assign(kernel.NewUUID(), testNow))
		cmd, _ := commands.NewDeleteSlotCommand(s.ID().String())

		slotRepo := new(MockSlotRepository)
		uow := new(MockUoW)
		factory := new(MockSlotUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("SlotRepository").Return(slotRepo).Once()
		slotRepo.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		err := commands.NewDeleteSlotCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, slot.ErrSlotNotEmpty)
		slotRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
