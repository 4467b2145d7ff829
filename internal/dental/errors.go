package dental

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEntryNotFound is returned by Update when the referenced entry is gone.
var ErrEntryNotFound = errors.New("procedure entry not found")

// DuplicateProcedureError reports the (tooth, procedure) pairs that would
// collide with entries already in the ledger.
type DuplicateProcedureError struct {
	Pairs []ProcedureKey
}

func (e *DuplicateProcedureError) Error() string {
	pairs := make([]string, 0, len(e.Pairs))
	for _, p := range e.Pairs {
		pairs = append(pairs, fmt.Sprintf("tooth %s / %s", p.Tooth, p.Procedure))
	}
	return "procedure already planned: " + strings.Join(pairs, ", ")
}

// InvalidDurationError is returned for durations below one day.
type InvalidDurationError struct {
	Days int
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("duration must be at least 1 day, got %d", e.Days)
}

// InvalidDiscountError is returned for negative discount inputs.
type InvalidDiscountError struct {
	Amount float64
}

func (e *InvalidDiscountError) Error() string {
	return fmt.Sprintf("discount cannot be negative, got %.2f", e.Amount)
}

// InvalidConditionError is returned when a chart selection uses a condition
// outside the doctor's configured set.
type InvalidConditionError struct {
	Condition string
}

func (e *InvalidConditionError) Error() string {
	return fmt.Sprintf("unknown health condition %q", e.Condition)
}

// UnknownToothError is returned when a tooth identifier is not part of the
// canonical layout.
type UnknownToothError struct {
	Tooth string
}

func (e *UnknownToothError) Error() string {
	return fmt.Sprintf("tooth %q is not in the dental chart layout", e.Tooth)
}

// InvalidStatusError is returned when an entry status is not one of the
// known values.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("unknown procedure status %q", e.Status)
}
