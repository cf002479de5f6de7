package fileio

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	ErrInputNotFound = errors.New("input file not found")
	ErrReadFailed    = errors.New("input file could not be read")
	ErrWriteFailed   = errors.New("output file could not be written")
)

// IOError wraps file errors with the operation and path involved.
type IOError struct {
	Op   string // Operation that failed
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// newIOError joins the package sentinel with the underlying OS error so callers
// can match either with errors.Is.
func newIOError(op, path string, kind, cause error) *IOError {
	return &IOError{
		Op:   op,
		Path: path,
		Err:  fmt.Errorf("%w: %w", kind, cause),
	}
}
