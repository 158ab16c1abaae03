package wealthtrack

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an operation referencing a holding or deposit id that
// does not exist in the book. The operation applies no mutation.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput reports a rejected input (non-positive units or price,
// missing symbol). The operation applies no mutation.
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// OversellWarning reports a sale whose requested quantity exceeded the units
// held at the time. The sale still succeeds: the holding is clamped at zero
// units and the sale log keeps the literal requested quantity, so the caller
// is expected to surface this to the user rather than fail.
type OversellWarning struct {
	Requested Quantity
	Held      Quantity
}

func (w *OversellWarning) Error() string {
	return fmt.Sprintf("sold %s units but only %s were held; holding clamped to zero", w.Requested, w.Held)
}
