package unitary

import (
	"context"
	"os"
	"path/filepath"

	"github.com/qsimbench/qbench/engine"
	"github.com/qsimbench/qbench/types"
)

// Adapter exposes the unitary engine through the harness contract. It is
// the default reference engine. The underlying engine consumes circuit
// source text, so the adapter reads the file on every call.
type Adapter struct {
	engine *Engine
}

// NewAdapter wraps a fresh unitary engine.
func NewAdapter() *Adapter {
	return &Adapter{engine: New()}
}

func (a *Adapter) Name() string {
	return "unitary"
}

func (a *Adapter) Simulate(_ context.Context, path string) (types.StateVector, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, engine.NewEngineError(a.Name(), filepath.Base(path), err)
	}
	amplitudes, err := a.engine.Run(string(source))
	if err != nil {
		return nil, engine.NewEngineError(a.Name(), filepath.Base(path), err)
	}
	vec, err := types.NewStateVector(amplitudes)
	if err != nil {
		return nil, engine.NewEngineError(a.Name(), filepath.Base(path), err)
	}
	return vec, nil
}
