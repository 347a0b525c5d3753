package commands

import (
	"errors"
	"strings"

	"lechon/internal/core/domain/model/slot"
	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/guard"
)

var ErrChangeSlotStatusCommandIsNotConstructed = errors.New(
	"ChangeSlotStatusCommand must be created via NewChangeSlotStatusCommand constructor",
)

// ChangeSlotStatusCommand is an operator status change: maintenance, out_of_order
// or back to available. Occupied is derived and cannot be requested.
type ChangeSlotStatusCommand struct {
	slotID string
	status slot.Status

	guard guard.ConstructorGuard
}

func NewChangeSlotStatusCommand(slotID, status string) (ChangeSlotStatusCommand, error) {
	slotID = strings.TrimSpace(slotID)

	var errList []error
	if slotID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("slotId"))
	}

	target, err := slot.ParseStatus(strings.TrimSpace(status))
	switch {
	case err != nil:
		errList = append(errList, err)
	case target == slot.StatusOccupied:
		errList = append(errList, errs.NewValueIsInvalidError("status occupied is derived from occupancy"))
	}

	if err = errors.Join(errList...); err != nil {
		return ChangeSlotStatusCommand{}, err
	}

	return ChangeSlotStatusCommand{
		slotID: slotID,
		status: target,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeSlotStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeSlotStatusCommandIsNotConstructed)
}

func (c ChangeSlotStatusCommand) SlotID() string {
	return c.slotID
}

func (c ChangeSlotStatusCommand) Status() slot.Status {
	return c.status
}
