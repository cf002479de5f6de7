// Package inspect contains pure functions for reading container inspection records.
// This is part of the Functional Core - all functions are pure with no I/O.
package inspect

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input errors
	ErrEmptyInput     = errors.New("inspection input is empty")
	ErrInvalidJSON    = errors.New("invalid JSON syntax")
	ErrNoRecord       = errors.New("no inspection record found")
	ErrUnexpectedRoot = errors.New("inspection input must be an object or an array of objects")

	// Shape errors
	ErrMissingField = errors.New("required field is missing")
	ErrWrongType    = errors.New("field has the wrong type")
)

// FieldError wraps errors with the JSON path where extraction failed.
type FieldError struct {
	Path    string // e.g., "Mounts[1].Source"
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates a new FieldError.
func NewFieldError(path, message string, err error) *FieldError {
	return &FieldError{
		Path:    path,
		Message: message,
		Err:     err,
	}
}
