package queries

import (
	"errors"
	"strings"
	"time"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/guard"
)

var ErrGetOrderCookingQueryIsNotConstructed = errors.New(
	"GetOrderCookingQuery must be created via NewGetOrderCookingQuery constructor",
)

// GetOrderCookingQuery reads where an order is cooking and since when.
type GetOrderCookingQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

func NewGetOrderCookingQuery(orderID string) (GetOrderCookingQuery, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return GetOrderCookingQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return GetOrderCookingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderCookingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderCookingQueryIsNotConstructed)
}

func (q GetOrderCookingQuery) OrderID() string {
	return q.orderID
}

// GetOrderCookingQueryResponse is the cooking view of an order. SlotID is nil
// when the order is not in a slot.
type GetOrderCookingQueryResponse struct {
	OrderID     kernel.UUID
	Status      string
	SlotID      *kernel.UUID
	CookingDate *time.Time
	CookedDate  *time.Time
}
