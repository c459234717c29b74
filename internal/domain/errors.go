package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports a parameter value outside its documented range.
// Constructors and Validate methods return it (possibly joined with others
// via errors.Join), so callers can recover it with errors.As.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%s): %s", e.Field, e.Value, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field string, value any, reason string) error {
	return &ValidationError{
		Field:  field,
		Value:  fmt.Sprint(value),
		Reason: reason,
	}
}

// valueRange is an inclusive [Min, Max] bound on a decimal parameter.
type valueRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func newRange(min, max string) valueRange {
	return valueRange{
		Min: decimal.RequireFromString(min),
		Max: decimal.RequireFromString(max),
	}
}

func (r valueRange) check(field string, v decimal.Decimal) error {
	if v.LessThan(r.Min) || v.GreaterThan(r.Max) {
		return NewValidationError(field, v, fmt.Sprintf("must be between %s and %s", r.Min, r.Max))
	}
	return nil
}

func checkPositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return NewValidationError(field, v, "must be greater than 0")
	}
	return nil
}

func checkNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return NewValidationError(field, v, "cannot be negative")
	}
	return nil
}
