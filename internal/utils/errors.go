// Package utils provides error wrapping and checked arithmetic for the
// membuf library.
package utils

import "fmt"

// BufError represents a structured buffer error.
type BufError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *BufError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// WrapError creates a contextual error.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &BufError{
		Context: context,
		Cause:   cause,
	}
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *BufError) Unwrap() error {
	return e.Cause
}
