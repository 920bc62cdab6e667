// Package fault holds the error categories shared by every domain package.
// Domain errors wrap one of these so the HTTP layer can map them to a status
// code without knowing about each package.
package fault

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

// FieldError is a validation failure tied to a single input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// Validation builds a FieldError.
func Validation(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// Fields collects field errors from err for response details.
func Fields(err error) map[string]string {
	var fe *FieldError
	if !errors.As(err, &fe) {
		return nil
	}
	return map[string]string{fe.Field: fe.Message}
}
