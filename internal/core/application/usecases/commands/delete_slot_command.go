package commands

import (
	"errors"
	"strings"

	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/guard"
)

var ErrDeleteSlotCommandIsNotConstructed = errors.New(
	"DeleteSlotCommand must be created via NewDeleteSlotCommand constructor",
)

// DeleteSlotCommand removes a slot that has no orders in it.
type DeleteSlotCommand struct {
	slotID string

	guard guard.ConstructorGuard
}

func NewDeleteSlotCommand(slotID string) (DeleteSlotCommand, error) {
	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return DeleteSlotCommand{}, errs.NewValueIsRequiredError("slotId")
	}

	return DeleteSlotCommand{
		slotID: slotID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteSlotCommand) Validate() error {
	return c.guard.Validate(ErrDeleteSlotCommandIsNotConstructed)
}

func (c DeleteSlotCommand) SlotID() string {
	return c.slotID
}
