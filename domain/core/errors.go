package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrUnknownParameter is returned when a sweep or update references a
	// parameter name outside the fixed model parameter set.
	ErrUnknownParameter = errors.New("unknown model parameter")

	// ErrUndefinedUtility is returned when lives saved goes negative: raising a
	// negative base to the fractional diminishing-returns exponent has no real
	// result, so the utility is undefined rather than NaN.
	ErrUndefinedUtility = errors.New("utility undefined for negative lives saved")

	// ErrEmptySweep is returned when a sweep request carries no grid at all
	// (nil values and no range to expand).
	ErrEmptySweep = errors.New("sweep has no values")
)

// Error constructors with context
func NewUnknownParameterError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

func NewUndefinedUtilityError(livesSaved float64) error {
	return fmt.Errorf("%w: lives saved = %.4f", ErrUndefinedUtility, livesSaved)
}

// Error checking helpers
func IsUnknownParameterError(err error) bool {
	return errors.Is(err, ErrUnknownParameter)
}

func IsUndefinedUtilityError(err error) bool {
	return errors.Is(err, ErrUndefinedUtility)
}
