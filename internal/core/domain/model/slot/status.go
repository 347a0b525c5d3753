package slot

import (
	"fmt"

	"lechon/internal/pkg/errs"
)

// Status is the operational state of a slot.
//
//	available ⇄ occupied          derived from occupancy by DeriveStatus
//	maintenance, out_of_order     set by an operator through ChangeStatus
type Status int

const (
	StatusUnknown Status = iota
	StatusAvailable
	StatusOccupied
	StatusMaintenance
	StatusOutOfOrder
)

var statusNames = map[Status]string{
	StatusAvailable:   "available",
	StatusOccupied:    "occupied",
	StatusMaintenance: "maintenance",
	StatusOutOfOrder:  "out_of_order",
}

// DeriveStatus returns occupied when count has reached capacity, otherwise available.
func DeriveStatus(count, capacity int) Status {
	if count >= capacity {
		return StatusOccupied
	}
	return StatusAvailable
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid slot status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid slot status", s))
	}
	return nil
}

// IsDerived reports whether the status is managed from occupancy.
func (s Status) IsDerived() bool {
	return s == StatusAvailable || s == StatusOccupied
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
