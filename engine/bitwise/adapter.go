package bitwise

import (
	"context"
	"path/filepath"

	"github.com/qsimbench/qbench/engine"
	"github.com/qsimbench/qbench/types"
)

// Adapter exposes the bitwise engine through the harness contract. It is
// the default candidate engine.
type Adapter struct {
	engine *Engine
}

// NewAdapter wraps a fresh bitwise engine.
func NewAdapter() *Adapter {
	return &Adapter{engine: New()}
}

func (a *Adapter) Name() string {
	return "bitwise"
}

func (a *Adapter) Simulate(_ context.Context, path string) (types.StateVector, error) {
	amplitudes, err := a.engine.Simulate(path)
	if err != nil {
		return nil, engine.NewEngineError(a.Name(), filepath.Base(path), err)
	}
	vec, err := types.NewStateVector(amplitudes)
	if err != nil {
		return nil, engine.NewEngineError(a.Name(), filepath.Base(path), err)
	}
	return vec, nil
}
