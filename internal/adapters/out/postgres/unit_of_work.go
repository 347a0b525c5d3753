// Package postgres provides the GORM implementation of the Unit of Work.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// after Begin run inside that transaction and register every aggregate they save.
// When Commit succeeds the unit of work drains the events recorded by saved slots
// and hands them to the EventPublisher; Rollback drops them.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	s, err := uow.SlotRepository().GetForUpdate(ctx, slotID)
//	if err != nil {
//	    return err
//	}
//	// mutate s through the domain
//	if err := uow.SlotRepository().Update(ctx, s); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency:
//   - each UnitOfWork instance is used by one goroutine
//   - row locks taken with GetForUpdate are held until Commit or Rollback
//   - callers lock the slot before the order
package postgres

import (
	"context"
	"log/slog"

	"lechon/internal/adapters/out/postgres/orderrepo"
	"lechon/internal/adapters/out/postgres/pgerr"
	"lechon/internal/adapters/out/postgres/slotrepo"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/slot"
	"lechon/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate saved during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	PullEvents() []slot.Event
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool
// and one event publisher.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates the factory. publisher may be nil, in which
// case events are dropped after commit.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit-of-work"),
	}
}

// Create produces a fresh unit of work with no transaction and nothing tracked.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates saved in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin again while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Map("transaction.begin", "transaction", "", tx.Error)
	}

	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit commits the transaction, then publishes the events of every saved slot.
// A publish failure is logged and does not fail the commit.
//
// Returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return pgerr.Map("transaction.commit", "transaction", "", err)
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards the transaction and everything tracked in it.
//
// Returns gorm.ErrInvalidTransaction when no transaction is active, which is the
// case for the deferred Rollback after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// SlotRepository returns a slot repository bound to the active transaction, or
// to the plain connection when there is none.
func (uow *GormUnitOfWork) SlotRepository() ports.SlotRepository {
	return slotrepo.NewGormSlotRepository(uow.conn(), uow)
}

// OrderRepository returns an order repository bound to the active transaction, or
// to the plain connection when there is none.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate saved within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	var events []slot.Event
	for _, tracked := range uow.trackedAggregates {
		if source, ok := tracked.Aggregate.(eventSource); ok {
			events = append(events, source.PullEvents()...)
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.WarnContext(ctx, "slot events not published",
			"events", len(events), "error", err)
	}
}
