package commands

import (
	"errors"
	"strings"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand records a pending order so it can be assigned to a slot.
// createdBy is the authenticated caller.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerName string
	lechonType   kernel.LechonType
	createdBy    kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(customerName, lechonType string, createdBy kernel.UUID) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		orderID: kernel.NewUUID(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerName(customerName),
		command.setLechonType(lechonType),
		command.setCreatedBy(createdBy),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

func (c CreateOrderCommand) LechonType() kernel.LechonType {
	return c.lechonType
}

func (c CreateOrderCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

func (c *CreateOrderCommand) setCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	c.customerName = name
	return nil
}

func (c *CreateOrderCommand) setLechonType(raw string) error {
	t := kernel.LechonType(strings.TrimSpace(raw))
	if t == "" {
		return errs.NewValueIsRequiredError("lechonType")
	}
	if !t.IsConcrete() {
		return errs.NewValueIsInvalidError("lechonType " + string(t))
	}
	c.lechonType = t
	return nil
}

func (c *CreateOrderCommand) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.createdBy = id
	return nil
}
