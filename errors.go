package qbench

import (
	"errors"
	"fmt"
)

// RuntimeError represents an operational error that should lead to exit code 2
// Examples include configuration errors, unreadable circuit directories, and
// engine failures.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// BenchFailureError represents a completed suite with mismatched circuits
// (exit code 1)
type BenchFailureError struct {
	Message string
}

func (e *BenchFailureError) Error() string {
	return fmt.Sprintf("benchmark failure: %s", e.Message)
}

// NewBenchFailureError creates a new BenchFailureError
func NewBenchFailureError(message string) *BenchFailureError {
	return &BenchFailureError{Message: message}
}

// IsBenchFailureError checks if the error is or wraps a BenchFailureError
func IsBenchFailureError(err error) bool {
	var benchErr *BenchFailureError
	return err != nil && errors.As(err, &benchErr)
}
