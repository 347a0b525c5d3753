package commands

import (
	"errors"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/order"
	"lechon/internal/core/domain/model/slot"
	"lechon/internal/pkg/errs"
)

// resolveID turns a supplied id into a UUID. A string that is not a UUID cannot
// name a stored entity, so it is reported as not found.
func resolveID(entity, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewObjectNotFoundErrorWithCause(entity, raw, err)
	}
	return id, nil
}

// rejectionReason labels business-rule failures for metrics. Other errors return "".
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, slot.ErrSlotUnavailable):
		return "slot_unavailable"
	case errors.Is(err, slot.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, order.ErrOrderAlreadyAssigned):
		return "already_assigned"
	case errors.Is(err, order.ErrOrderNotAssigned):
		return "not_assigned"
	default:
		return ""
	}
}
