package errors

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrYearApproved is returned when an operation is attempted on a financial
// year that has already been approved. Callers present this as an
// informational state, not a failure.
var ErrYearApproved = errors.New("financial year already approved")

// ErrStaleCalculation is returned when a recalculation result is discarded
// because a newer pass has already been applied for the same year.
var ErrStaleCalculation = errors.New("superseded by a newer recalculation")

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// ErrInsufficientBalance is returned when a withdrawal would overdraw an
// investor's contributed capital or a payout would overdraw a distribution.
type ErrInsufficientBalance struct {
	Requested string
	Available string
}

func (e *ErrInsufficientBalance) Error() string {
	return "insufficient balance: requested " + e.Requested + ", available " + e.Available
}
