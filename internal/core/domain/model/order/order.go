package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/guard"
)

const maxCustomerNameLength = 100

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderAlreadyAssigned is returned when assigning an order that already occupies a slot.
	ErrOrderAlreadyAssigned = errors.New("order is already assigned to a slot")

	// ErrOrderNotAssigned is returned when releasing an order that occupies no slot.
	ErrOrderNotAssigned = errors.New("order is not assigned to any slot")
)

// Order is the aggregate root for a customer's cooking job.
//
// Invariants:
//   - valid id, non-empty customer name and a concrete lechon type
//   - slotID is nil or references exactly one slot
//   - cookingDate/cookedDate are only changed through the slot methods below
type Order struct {
	id           kernel.UUID
	customerName string
	lechonType   kernel.LechonType
	status       Status
	slotID       *kernel.UUID
	cookingDate  *time.Time
	cookedDate   *time.Time
	createdBy    kernel.UUID
	createdAt    time.Time
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a pending order that is not attached to any slot.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "Dela Cruz", kernel.WholePig, callerID, clock.Now())
func NewOrder(
	id kernel.UUID,
	customerName string,
	lechonType kernel.LechonType,
	createdBy kernel.UUID,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setLechonType(lechonType),
		o.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries persisted order state back into the domain.
// A zero UpdatedAt falls back to CreatedAt.
type RestoreOrderParams struct {
	ID           kernel.UUID
	CustomerName string
	LechonType   kernel.LechonType
	Status       Status
	SlotID       *kernel.UUID
	CookingDate  *time.Time
	CookedDate   *time.Time
	CreatedBy    kernel.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		cookingDate: copyTime(p.CookingDate),
		cookedDate:  copyTime(p.CookedDate),
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
		guard:       guard.NewConstructorGuard(),
	}
	if o.updatedAt.IsZero() {
		o.updatedAt = p.CreatedAt
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerName(p.CustomerName),
		o.setLechonType(p.LechonType),
		o.setStatus(p.Status),
		o.setSlotID(p.SlotID),
		o.setCreatedBy(p.CreatedBy),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerName() string {
	return o.customerName
}

func (o *Order) LechonType() kernel.LechonType {
	return o.lechonType
}

func (o *Order) Status() Status {
	return o.status
}

// SlotID returns the occupied slot, or nil.
func (o *Order) SlotID() *kernel.UUID {
	if o.slotID == nil {
		return nil
	}
	id := *o.slotID
	return &id
}

// IsAssigned reports whether the order currently occupies a slot.
func (o *Order) IsAssigned() bool {
	return o.slotID != nil
}

func (o *Order) CookingDate() *time.Time {
	return copyTime(o.cookingDate)
}

func (o *Order) CookedDate() *time.Time {
	return copyTime(o.cookedDate)
}

func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AssignToSlot attaches the order to slotID and starts a cooking cycle.
// A cooked date left over from a previous cycle is cleared.
func (o *Order) AssignToSlot(slotID kernel.UUID, now time.Time) error {
	if err := slotID.Validate(); err != nil {
		return err
	}
	if o.slotID != nil {
		return ErrOrderAlreadyAssigned
	}

	o.slotID = &slotID
	o.status = Cooking
	o.cookingDate = &now
	o.cookedDate = nil
	o.touch(now)
	return nil
}

// ReleaseFromSlot detaches the order and ends the cooking cycle.
func (o *Order) ReleaseFromSlot(now time.Time) error {
	if o.slotID == nil {
		return ErrOrderNotAssigned
	}

	o.slotID = nil
	o.status = Cooked
	o.cookedDate = &now
	o.touch(now)
	return nil
}

// DetachFromSlot is the repair counterpart of ReleaseFromSlot, used when the slot no
// longer lists the order. An order that never started cooking goes back to Pending.
func (o *Order) DetachFromSlot(now time.Time) {
	o.slotID = nil
	o.touch(now)
	if o.cookingDate == nil {
		o.status = Pending
		return
	}
	o.status = Cooked
	o.cookedDate = &now
}

// ReattachToSlot is the repair counterpart of AssignToSlot, used when a slot lists the
// order but the order does not point back. startedAt comes from the open history entry.
func (o *Order) ReattachToSlot(slotID kernel.UUID, startedAt, now time.Time) error {
	if err := slotID.Validate(); err != nil {
		return err
	}

	o.slotID = &slotID
	o.status = Cooking
	o.cookingDate = &startedAt
	o.cookedDate = nil
	o.touch(now)
	return nil
}

func (o *Order) touch(now time.Time) {
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	if len([]rune(name)) > maxCustomerNameLength {
		return errs.NewValueIsOutOfRangeError("customer name length", len([]rune(name)), 1, maxCustomerNameLength)
	}
	o.customerName = name
	return nil
}

func (o *Order) setLechonType(t kernel.LechonType) error {
	if !t.IsConcrete() {
		return errs.NewValueIsInvalidErrorWithCause("lechon type", fmt.Errorf("%q cannot be ordered", string(t)))
	}
	o.lechonType = t
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *Order) setSlotID(id *kernel.UUID) error {
	if id == nil {
		o.slotID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	slotID := *id
	o.slotID = &slotID
	return nil
}

func (o *Order) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("created by", err)
	}
	o.createdBy = id
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
