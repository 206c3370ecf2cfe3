// Package external adapts out-of-process simulator engines to the harness
// contract. An external engine is any executable that prints a JSON document
// of the form {"statevector": [[re, im], ...]} on stdout. Two invocation
// styles are supported: candidate-style engines receive the circuit path as
// their final argument, reference-style engines receive the circuit source
// on stdin.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/qsimbench/qbench/engine"
	"github.com/qsimbench/qbench/types"
)

type resultDoc struct {
	Statevector [][2]float64 `json:"statevector"`
}

// PathAdapter invokes an engine that accepts the circuit file path as its
// final command-line argument.
type PathAdapter struct {
	command string
	args    []string
}

// NewPathAdapter builds a candidate-style subprocess adapter.
func NewPathAdapter(command string, args ...string) *PathAdapter {
	return &PathAdapter{command: command, args: args}
}

func (a *PathAdapter) Name() string {
	return filepath.Base(a.command)
}

func (a *PathAdapter) Simulate(ctx context.Context, path string) (types.StateVector, error) {
	args := append(append([]string{}, a.args...), path)
	cmd := exec.CommandContext(ctx, a.command, args...)
	return execute(a.Name(), filepath.Base(path), cmd)
}

// SourceAdapter invokes an engine that reads circuit source text on stdin.
type SourceAdapter struct {
	command string
	args    []string
}

// NewSourceAdapter builds a reference-style subprocess adapter.
func NewSourceAdapter(command string, args ...string) *SourceAdapter {
	return &SourceAdapter{command: command, args: args}
}

func (a *SourceAdapter) Name() string {
	return filepath.Base(a.command)
}

func (a *SourceAdapter) Simulate(ctx context.Context, path string) (types.StateVector, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, engine.NewEngineError(a.Name(), filepath.Base(path), err)
	}
	cmd := exec.CommandContext(ctx, a.command, a.args...)
	cmd.Stdin = bytes.NewReader(source)
	return execute(a.Name(), filepath.Base(path), cmd)
}

func execute(engineName, circuit string, cmd *exec.Cmd) (types.StateVector, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return nil, engine.NewEngineError(engineName, circuit, err)
	}

	var doc resultDoc
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		return nil, engine.NewEngineError(engineName, circuit, fmt.Errorf("decoding statevector: %w", err))
	}
	amplitudes := make([]complex128, len(doc.Statevector))
	for i, pair := range doc.Statevector {
		amplitudes[i] = complex(pair[0], pair[1])
	}
	vec, err := types.NewStateVector(amplitudes)
	if err != nil {
		return nil, engine.NewEngineError(engineName, circuit, err)
	}
	return vec, nil
}
