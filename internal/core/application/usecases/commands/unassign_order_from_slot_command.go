package commands

import (
	"errors"
	"strings"

	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/guard"
)

var ErrUnassignOrderFromSlotCommandIsNotConstructed = errors.New(
	"UnassignOrderFromSlotCommand must be created via NewUnassignOrderFromSlotCommand constructor",
)

// UnassignOrderFromSlotCommand asks to take an order out of the slot cooking it.
// The slot is resolved from the order.
type UnassignOrderFromSlotCommand struct {
	orderID string

	guard guard.ConstructorGuard
}

func NewUnassignOrderFromSlotCommand(orderID string) (UnassignOrderFromSlotCommand, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return UnassignOrderFromSlotCommand{}, errs.NewValueIsRequiredError("orderId")
	}

	return UnassignOrderFromSlotCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UnassignOrderFromSlotCommand) Validate() error {
	return c.guard.Validate(ErrUnassignOrderFromSlotCommandIsNotConstructed)
}

func (c UnassignOrderFromSlotCommand) OrderID() string {
	return c.orderID
}
