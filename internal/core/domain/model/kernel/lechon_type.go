package kernel

import (
	"fmt"

	"lechon/internal/pkg/errs"
)

// LechonType is the kind of roast. Orders name one of the concrete kinds;
// slots may also be MultiPurpose.
type LechonType string

const (
	WholePig     LechonType = "whole_pig"
	Chicken      LechonType = "chicken"
	PigBelly     LechonType = "pig_belly"
	WholeCow     LechonType = "whole_cow"
	MultiPurpose LechonType = "multi_purpose"
)

func (t LechonType) String() string {
	return string(t)
}

// IsConcrete reports whether t is a roast an order can ask for.
func (t LechonType) IsConcrete() bool {
	switch t {
	case WholePig, Chicken, PigBelly, WholeCow:
		return true
	default:
		return false
	}
}

// Validate accepts every known type, MultiPurpose included.
func (t LechonType) Validate() error {
	if t.IsConcrete() || t == MultiPurpose {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("lechon type", fmt.Errorf("%q is not a known lechon type", string(t)))
}
