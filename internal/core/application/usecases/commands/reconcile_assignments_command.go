package commands

import (
	"errors"

	"lechon/internal/pkg/guard"
)

var ErrReconcileAssignmentsCommandIsNotConstructed = errors.New(
	"ReconcileAssignmentsCommand must be created via NewReconcileAssignmentsCommand constructor",
)

// ReconcileAssignmentsCommand triggers a repair pass over every slot and every
// assigned order. It is run by the scheduler and on demand by an operator.
type ReconcileAssignmentsCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileAssignmentsCommand() ReconcileAssignmentsCommand {
	return ReconcileAssignmentsCommand{guard: guard.NewConstructorGuard()}
}

func (c ReconcileAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileAssignmentsCommandIsNotConstructed)
}
