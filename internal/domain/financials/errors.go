package financials

import (
	"errors"
	"fmt"
)

// ErrValidation matches every *ValidationError through errors.Is.
var ErrValidation = errors.New("validation error")

// ValidationError reports an input that breaks a calculator precondition.
// Line is set for line-item failures, Field for scalar inputs.
type ValidationError struct {
	Line   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line != "":
		return fmt.Sprintf("invalid line %q: %s", e.Line, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	default:
		return e.Reason
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func lineError(label, reason string) error {
	return &ValidationError{Line: label, Reason: reason}
}

func fieldError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
