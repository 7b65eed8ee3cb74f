package transform

import (
	"fmt"

	"github.com/DavidGslade86/VCFEstimator/internal/domain"
)

// ClaimTransform defines the interface for all claim transformations.
// Transforms are composable operations that derive a variant claim from a base
// claim, used by ordering comparison and sensitivity sweeps.
type ClaimTransform interface {
	// Apply transforms a base claim and returns a new modified claim.
	// The base claim is never modified.
	Apply(base *domain.ProjectionConfig) (*domain.ProjectionConfig, error)

	// Name returns a short identifier for this transform (e.g., "set_ordering").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base *domain.ProjectionConfig) error
}

// ApplyTransforms applies a sequence of transforms to a base claim.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base *domain.ProjectionConfig, transforms []ClaimTransform) (*domain.ProjectionConfig, error) {
	if base == nil {
		return nil, fmt.Errorf("base claim cannot be nil")
	}

	if len(transforms) == 0 {
		return base.Clone(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
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
