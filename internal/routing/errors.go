package routing

import (
	"errors"
	"fmt"
)

// Sentinel errors matched through errors.Is by callers that only need the category.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrComputation  = errors.New("computation error")
)

// InvalidInputError is returned when an origin or destination is not a valid GeoPoint.
type InvalidInputError struct {
	Field  string // Field names the offending input, e.g. "origin.latitude".
	Reason string // Reason describes what is wrong with the value.
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ComputationError is returned when the numeric result of an estimation is unusable.
type ComputationError struct {
	Op     string
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("failed to compute %s: %s", e.Op, e.Reason)
}

// Is reports whether target is ErrComputation.
func (e *ComputationError) Is(target error) bool {
	return target == ErrComputation
}
