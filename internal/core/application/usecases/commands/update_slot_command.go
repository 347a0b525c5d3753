package commands

import (
	"errors"
	"strings"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/guard"
)

var ErrUpdateSlotCommandIsNotConstructed = errors.New(
	"UpdateSlotCommand must be created via NewUpdateSlotCommand constructor",
)

// SlotChanges lists the attributes to edit. Nil fields keep their stored value.
type SlotChanges struct {
	Name     *string
	Capacity *int
	Type     *string
	Notes    *string
}

// UpdateSlotCommand edits the operator-managed attributes of a slot.
//
// Example:
//
//	capacity := 4
//	cmd, err := NewUpdateSlotCommand(slotID, SlotChanges{Capacity: &capacity})
type UpdateSlotCommand struct { //nolint:recvcheck //using for validation
	slotID   string
	name     *string
	capacity *int
	slotType *kernel.LechonType
	notes    *string

	guard guard.ConstructorGuard
}

func NewUpdateSlotCommand(slotID string, changes SlotChanges) (UpdateSlotCommand, error) {
	command := UpdateSlotCommand{
		slotID: strings.TrimSpace(slotID),
		guard:  guard.NewConstructorGuard(),
	}

	var errList []error
	if command.slotID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("slotId"))
	}
	if changes == (SlotChanges{}) {
		errList = append(errList, errs.NewValueIsRequiredError("slot changes"))
	}
	errList = append(errList,
		command.setName(changes.Name),
		command.setCapacity(changes.Capacity),
		command.setType(changes.Type),
	)
	if changes.Notes != nil {
		notes := strings.TrimSpace(*changes.Notes)
		command.notes = &notes
	}

	if err := errors.Join(errList...); err != nil {
		return UpdateSlotCommand{}, err
	}
	return command, nil
}

func (c UpdateSlotCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSlotCommandIsNotConstructed)
}

func (c UpdateSlotCommand) SlotID() string {
	return c.slotID
}

// NameOr returns the requested name, or current when the name is unchanged.
func (c UpdateSlotCommand) NameOr(current string) string {
	if c.name == nil {
		return current
	}
	return *c.name
}

func (c UpdateSlotCommand) CapacityOr(current int) int {
	if c.capacity == nil {
		return current
	}
	return *c.capacity
}

func (c UpdateSlotCommand) TypeOr(current kernel.LechonType) kernel.LechonType {
	if c.slotType == nil {
		return current
	}
	return *c.slotType
}

func (c UpdateSlotCommand) NotesOr(current string) string {
	if c.notes == nil {
		return current
	}
	return *c.notes
}

func (c *UpdateSlotCommand) setName(name *string) error {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = &trimmed
	return nil
}

func (c *UpdateSlotCommand) setCapacity(capacity *int) error {
	if capacity == nil {
		return nil
	}
	if *capacity < 1 {
		return errs.NewValueIsOutOfRangeError("capacity", *capacity, 1, "unbounded")
	}
	value := *capacity
	c.capacity = &value
	return nil
}

func (c *UpdateSlotCommand) setType(raw *string) error {
	if raw == nil {
		return nil
	}
	t := kernel.LechonType(strings.TrimSpace(*raw))
	if err := t.Validate(); err != nil {
		return err
	}
	c.slotType = &t
	return nil
}
