package ports

import (
	"context"

	"lechon/internal/core/domain/model/slot"
)

// EventPublisher delivers slot events after the transaction that produced them
// has committed. Delivery is best effort: a failed publish does not undo the change.
type EventPublisher interface {
	Publish(ctx context.Context, events ...slot.Event) error
}
