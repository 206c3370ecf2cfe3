// Package engine defines the uniform contract between the benchmark harness
// and a quantum-circuit simulator. The harness never sees an engine's
// parser, gate set, or numerics; it sees a path in and a state vector out.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/qsimbench/qbench/types"
)

// Adapter is implemented once per simulator. Simulate must be idempotent:
// the timer calls it repeatedly against the same path and no result may be
// cached across calls. How the circuit reaches the engine (the path itself,
// the file's contents, a subprocess) is the adapter's concern alone.
type Adapter interface {
	// Name identifies the engine in logs, reports, and errors.
	Name() string
	// Simulate runs the circuit at path and returns the final state vector.
	Simulate(ctx context.Context, path string) (types.StateVector, error)
}

// EngineError wraps any failure of an underlying simulator: parse errors,
// execution errors, subprocess exits, or a malformed result vector. The
// cause is propagated opaquely; the harness does not interpret it.
type EngineError struct {
	Engine  string
	Circuit string
	Err     error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine %s failed on %s: %v", e.Engine, e.Circuit, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates an EngineError for the named engine and circuit.
func NewEngineError(engineName, circuit string, err error) *EngineError {
	return &EngineError{Engine: engineName, Circuit: circuit, Err: err}
}

// IsEngineError checks if an error is an EngineError.
func IsEngineError(err error) bool {
	var engineErr *EngineError
	return errors.As(err, &engineErr)
}
