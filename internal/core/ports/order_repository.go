package ports

import (
	"context"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the slot reference, status and cooking dates of an order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order without locking it. Missing orders yield errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads an order and holds its row lock until the transaction ends.
	// Callers lock the slot first.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAssignedOrIn loads and locks every order that points at a slot plus the
	// orders in ids. Unknown ids are skipped.
	GetAssignedOrIn(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)
}
