package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary.
// Repositories obtained after Begin share its transaction; events recorded by the
// aggregates they save are published once Commit succeeds.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and publishes the collected events.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction and its events.
	// Returns an error if no transaction is active.
	Rollback(ctx context.Context) error

	// SlotRepository returns a SlotRepository bound to the current transaction.
	SlotRepository() SlotRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository
}
