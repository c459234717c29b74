package transform

import (
	"fmt"

	"github.com/rgehrsitz/heis/internal/domain"
)

// EffectTransform defines the interface for all intervention transformations.
// Transforms never mutate their input; each Apply builds a new parameter tree,
// so variants derived from one base never share nested pathway objects.
type EffectTransform interface {
	// Apply transforms base parameters and returns a new parameter set.
	Apply(base domain.InterventionParameters) (domain.InterventionParameters, error)

	// Name returns a short identifier for this transform (e.g., "scale_effects").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform can be applied without applying it.
	Validate(base domain.InterventionParameters) error
}

// ApplyTransforms applies a sequence of transforms to base parameters.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base domain.InterventionParameters, transforms []EffectTransform) (domain.InterventionParameters, error) {
	current := base.DeepCopy()

	for i, transform := range transforms {
		if transform == nil {
			return domain.InterventionParameters{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.InterventionParameters{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.InterventionParameters{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
