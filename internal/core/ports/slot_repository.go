// Package ports defines the contracts between the domain and its infrastructure:
// repositories, the unit of work and the event publisher.
package ports

import (
	"context"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/slot"
)

// SlotRepository persists slot aggregates together with their occupants and history.
type SlotRepository interface {
	// Add persists a new slot. A duplicate name yields errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *slot.Slot) error

	// Update writes status, occupants and history of an existing slot.
	Update(ctx context.Context, aggregate *slot.Slot) error

	// Get loads a slot without locking it. Missing slots yield errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*slot.Slot, error)

	// GetForUpdate loads a slot and holds its row lock until the transaction ends.
	// Two transactions locking the same slot are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*slot.Slot, error)

	// GetAllForUpdate loads and locks every slot, ordered by id.
	GetAllForUpdate(ctx context.Context) ([]*slot.Slot, error)

	// Delete removes a slot and its history.
	Delete(ctx context.Context, id kernel.UUID) error
}
