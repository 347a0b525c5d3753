package commands

import (
	"errors"
	"strings"

	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/guard"
)

var ErrAssignOrderToSlotCommandIsNotConstructed = errors.New(
	"AssignOrderToSlotCommand must be created via NewAssignOrderToSlotCommand constructor",
)

// AssignOrderToSlotCommand asks to put an order into a cooking slot.
// Ids are kept as supplied: a value that is not a UUID is reported as not found
// by the handler, after the slot/order lookups that come before it.
//
// Example:
//
//	cmd, err := NewAssignOrderToSlotCommand(req.SlotID, req.OrderID)
//	if err != nil {
//	    return err // errs.ErrValueIsRequired
//	}
//	err = handler.Handle(ctx, cmd)
type AssignOrderToSlotCommand struct {
	slotID  string
	orderID string

	guard guard.ConstructorGuard
}

// NewAssignOrderToSlotCommand requires both ids to be non-blank.
func NewAssignOrderToSlotCommand(slotID, orderID string) (AssignOrderToSlotCommand, error) {
	slotID, orderID = strings.TrimSpace(slotID), strings.TrimSpace(orderID)

	var errList []error
	if slotID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("slotId"))
	}
	if orderID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("orderId"))
	}
	if err := errors.Join(errList...); err != nil {
		return AssignOrderToSlotCommand{}, err
	}

	return AssignOrderToSlotCommand{
		slotID:  slotID,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOrderToSlotCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderToSlotCommandIsNotConstructed)
}

func (c AssignOrderToSlotCommand) SlotID() string {
	return c.slotID
}

func (c AssignOrderToSlotCommand) OrderID() string {
	return c.orderID
}
