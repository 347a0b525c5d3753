package order

import (
	"fmt"

	"lechon/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The slot assignment service owns two transitions:
//
//	any ──AssignToSlot──> Cooking ──ReleaseFromSlot──> Cooked
//
// Every other transition belongs to the order management screens and is not
// enforced here.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	Cooking
	Cooked
	Packed
	PickedUp
	Ready
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Confirmed: "confirmed",
	Preparing: "preparing",
	Cooking:   "cooking",
	Cooked:    "cooked",
	Packed:    "packed",
	PickedUp:  "picked_up",
	Ready:     "ready",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

// ParseStatus converts the persisted name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the known statuses.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the persisted name, or "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
