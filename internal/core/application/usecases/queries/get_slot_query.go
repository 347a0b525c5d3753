// Package queries contains the read side: slot and order views built with plain
// SQL over the same tables the repositories write.
package queries

import (
	"errors"
	"strings"
	"time"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/guard"
)

var ErrGetSlotQueryIsNotConstructed = errors.New(
	"GetSlotQuery must be created via NewGetSlotQuery constructor",
)

// GetSlotQuery reads one slot with its occupants and cooking history.
//
// Example:
//
//	query, err := NewGetSlotQuery(slotID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetSlotQuery struct {
	slotID string

	guard guard.ConstructorGuard
}

func NewGetSlotQuery(slotID string) (GetSlotQuery, error) {
	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return GetSlotQuery{}, errs.NewValueIsRequiredError("slotId")
	}
	return GetSlotQuery{
		slotID: slotID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetSlotQuery) Validate() error {
	return q.guard.Validate(ErrGetSlotQueryIsNotConstructed)
}

func (q GetSlotQuery) SlotID() string {
	return q.slotID
}

// GetSlotQueryResponse is the slot read model. CanAcceptOrders and
// AvailableCapacity are derived from the stored status and occupancy.
type GetSlotQueryResponse struct {
	ID                kernel.UUID
	Name              string
	Capacity          int
	Type              kernel.LechonType
	Status            string
	Notes             string
	CurrentOrders     []kernel.UUID
	CanAcceptOrders   bool
	AvailableCapacity int
	History           []SlotHistoryItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SlotHistoryItem is one cooking session. EndCooking is nil while it is open.
type SlotHistoryItem struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	StartCooking time.Time
	EndCooking   *time.Time
}
