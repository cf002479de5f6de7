// Package compose renders compose service definitions from extracted inspection data.
// This is part of the Functional Core - all functions are pure with no I/O.
package compose

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input validation errors
	ErrNilSpec           = errors.New("service spec is nil")
	ErrEmptyServiceName  = errors.New("service name is empty")
	ErrInvalidListStyle  = errors.New("invalid empty list style")
	ErrEmptyVersionValue = errors.New("compose version is empty")
)

// RenderError wraps errors with context about which field could not be rendered.
type RenderError struct {
	Field   string // e.g., "services.web"
	Message string
	Err     error
}

func (e *RenderError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError.
func NewRenderError(field, message string, err error) *RenderError {
	return &RenderError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
