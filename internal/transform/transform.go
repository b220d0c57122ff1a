// Package transform applies named what-if changes to a calculator form.
package transform

import (
	"fmt"

	"github.com/devnagringa/calculadoras/internal/form"
)

// FormTransform is one composable change to a form, such as a salary raise
// or a different Simples annex. Transforms never modify their input.
type FormTransform interface {
	// Apply returns a modified copy of base
	Apply(base form.Form) (form.Form, error)

	// Name is a short identifier, e.g. "adjust_salary"
	Name() string

	// Description is shown next to the scenario in reports
	Description() string

	// Validate checks the transform against base without applying it
	Validate(base form.Form) error
}

// ApplyTransforms applies transforms in order, each one receiving the
// output of the previous
func ApplyTransforms(base form.Form, transforms []FormTransform) (form.Form, error) {
	current := base
	for i, t := range transforms {
		if t == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation
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

// NewTransformError creates a new TransformError
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
