// Package commands contains the operations that change slots and orders.
// Every command is built by its constructor, validated by its handler and executed
// inside one unit of work: Begin, load, mutate through the domain, save, Commit.
package commands

import (
	"context"

	"lechon/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles the database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository of a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SlotRepoFactory provides the slot repository of a transaction.
	SlotRepoFactory interface {
		SlotRepository() ports.SlotRepository
	}

	// OrderUoW manages transactions that touch orders only.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order units of work.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SlotUoW manages transactions that touch slots only.
	SlotUoW interface {
		TxManager
		SlotRepoFactory
	}

	// SlotUoWFactory creates slot units of work.
	SlotUoWFactory interface {
		Create() SlotUoW
	}

	// UoW manages transactions across slots and orders.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   slotRepo := uow.SlotRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... lock the slot, then the order, mutate, save
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		SlotRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates units of work for operations spanning both aggregates.
	UoWFactory interface {
		Create() UoW
	}
)

// SlotMetrics receives the outcome of assignment operations.
type SlotMetrics interface {
	OrderAssigned()
	OrderUnassigned()
	Rejected(operation, reason string)
	MultipleOpenHistory()
	Reconciled(repairs int)
}
