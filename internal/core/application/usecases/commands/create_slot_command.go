package commands

import (
	"errors"
	"strings"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/guard"
)

var ErrCreateSlotCommandIsNotConstructed = errors.New(
	"CreateSlotCommand must be created via NewCreateSlotCommand constructor",
)

// CreateSlotCommand registers a new cooking slot. The slot id is generated here so
// the caller can report it back.
//
// Example:
//
//	cmd, err := NewCreateSlotCommand("Pit 3", 2, "whole_pig", "")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	fmt.Println(cmd.SlotID())
type CreateSlotCommand struct { //nolint:recvcheck //using for validation
	slotID   kernel.UUID
	name     string
	capacity int
	slotType kernel.LechonType
	notes    string

	guard guard.ConstructorGuard
}

// NewCreateSlotCommand validates the request. An empty slotType means multi_purpose.
func NewCreateSlotCommand(name string, capacity int, slotType, notes string) (CreateSlotCommand, error) {
	command := CreateSlotCommand{
		slotID: kernel.NewUUID(),
		notes:  strings.TrimSpace(notes),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setName(name),
		command.setCapacity(capacity),
		command.setType(slotType),
	); err != nil {
		return CreateSlotCommand{}, err
	}

	return command, nil
}

func (c CreateSlotCommand) Validate() error {
	return c.guard.Validate(ErrCreateSlotCommandIsNotConstructed)
}

func (c CreateSlotCommand) SlotID() kernel.UUID {
	return c.slotID
}

func (c CreateSlotCommand) Name() string {
	return c.name
}

func (c CreateSlotCommand) Capacity() int {
	return c.capacity
}

func (c CreateSlotCommand) Type() kernel.LechonType {
	return c.slotType
}

func (c CreateSlotCommand) Notes() string {
	return c.notes
}

func (c *CreateSlotCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateSlotCommand) setCapacity(capacity int) error {
	if capacity < 1 {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, 1, "unbounded")
	}
	c.capacity = capacity
	return nil
}

func (c *CreateSlotCommand) setType(raw string) error {
	t := kernel.LechonType(strings.TrimSpace(raw))
	if t == "" {
		t = kernel.MultiPurpose
	}
	if err := t.Validate(); err != nil {
		return err
	}
	c.slotType = t
	return nil
}
