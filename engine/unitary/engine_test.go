package unitary

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qsimbench/qbench/engine"
	"github.com/qsimbench/qbench/engine/bitwise"
)

func assertAmplitudes(t *testing.T, want, got []complex128) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, real(want[i]), real(got[i]), 1e-9, "real part at index %d", i)
		assert.InDelta(t, imag(want[i]), imag(got[i]), 1e-9, "imag part at index %d", i)
	}
}

func TestRunBellState(t *testing.T) {
	state, err := New().Run(`OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
creg c[2];
h q[0];
cx q[0], q[1];
measure q[0] -> c[0];
measure q[1] -> c[1];
`)
	require.NoError(t, err)

	inv := complex(1/math.Sqrt2, 0)
	assertAmplitudes(t, []complex128{inv, 0, 0, inv}, state)
}

func TestRunStatementsDoNotNeedOwnLines(t *testing.T) {
	state, err := New().Run("qreg q[2]; x q[0]; cx q[0], q[1];")
	require.NoError(t, err)
	assertAmplitudes(t, []complex128{0, 0, 0, 1}, state)
}

func TestRunSwapDecomposition(t *testing.T) {
	state, err := New().Run("qreg q[2];\nx q[0];\nswap q[0], q[1];\n")
	require.NoError(t, err)
	assertAmplitudes(t, []complex128{0, 0, 1, 0}, state)
}

func TestRunRotations(t *testing.T) {
	state, err := New().Run("qreg q[1];\nh q[0];\nrz(pi) q[0];\nh q[0];\n")
	require.NoError(t, err)
	assertAmplitudes(t, []complex128{0, complex(0, -1)}, state)

	state, err = New().Run("qreg q[1];\nry(pi/2) q[0];\n")
	require.NoError(t, err)
	inv := complex(1/math.Sqrt2, 0)
	assertAmplitudes(t, []complex128{inv, inv}, state)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{
			name:    "unsupported gate",
			source:  "qreg q[2];\nccx q[0], q[1];\n",
			wantMsg: "unsupported gate",
		},
		{
			name:    "statement before qreg",
			source:  "h q[0];\nqreg q[1];\n",
			wantMsg: "precedes the qreg",
		},
		{
			name:    "missing qreg",
			source:  "OPENQASM 2.0;\n",
			wantMsg: "no qreg",
		},
		{
			name:    "multiple qreg",
			source:  "qreg q[1];\nqreg r[2];\n",
			wantMsg: "multiple qreg",
		},
		{
			name:    "index out of range",
			source:  "qreg q[2];\nz q[5];\n",
			wantMsg: "out of range",
		},
		{
			name:    "rotation without parameter",
			source:  "qreg q[1];\nrx q[0];\n",
			wantMsg: "requires a parameter",
		},
		{
			name:    "two-qubit gate on one wire",
			source:  "qreg q[2];\nswap q[0], q[0];\n",
			wantMsg: "distinct",
		},
		{
			name:    "division by zero angle",
			source:  "qreg q[1];\nrz(pi/0) q[0];\n",
			wantMsg: "division by zero",
		},
		{
			name:    "bad operand",
			source:  "qreg q[1];\nh q0;\n",
			wantMsg: "bad operand",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestEvalAngle(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"0.25", 0.25},
		{"pi", math.Pi},
		{"-pi", -math.Pi},
		{"pi/2", math.Pi / 2},
		{"3*pi/4", 3 * math.Pi / 4},
		{"2*pi", 2 * math.Pi},
		{"-pi/8", -math.Pi / 8},
	}
	for _, tt := range tests {
		got, err := evalAngle(tt.expr)
		require.NoError(t, err, "expr %q", tt.expr)
		assert.InDelta(t, tt.want, got, 1e-12, "expr %q", tt.expr)
	}

	_, err := evalAngle("tau/2")
	require.Error(t, err)
}

func TestAdapterReadsSourceAndWrapsErrors(t *testing.T) {
	adapter := NewAdapter()
	assert.Equal(t, "unitary", adapter.Name())

	dir := t.TempDir()
	path := filepath.Join(dir, "flip.qasm")
	require.NoError(t, os.WriteFile(path, []byte("qreg q[1];\nx q[0];\n"), 0644))

	vec, err := adapter.Simulate(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, vec.QubitCount())

	_, err = adapter.Simulate(context.Background(), filepath.Join(dir, "missing.qasm"))
	require.Error(t, err)
	assert.True(t, engine.IsEngineError(err))

	var engineErr *engine.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, "unitary", engineErr.Engine)
	assert.Equal(t, "missing.qasm", engineErr.Circuit)
}

// The two shipped engines are independent implementations; agreeing on a
// spread of circuits is what makes one usable as the baseline for the other.
func TestAgreesWithBitwiseEngine(t *testing.T) {
	circuits := []struct {
		name   string
		source string
	}{
		{"bell", "qreg q[2];\nh q[0];\ncx q[0], q[1];\n"},
		{"ghz", "qreg q[3];\nh q[0];\ncx q[0], q[1];\ncx q[1], q[2];\n"},
		{"rotation mix", "qreg q[2];\nrx(pi/3) q[0];\nry(0.7) q[1];\nrz(-pi/5) q[0];\ncx q[1], q[0];\n"},
		{"phase ladder", "qreg q[3];\nh q[0];\nh q[1];\nh q[2];\ns q[0];\nt q[1];\ncz q[0], q[2];\nswap q[1], q[2];\n"},
		{"everything", "qreg q[2];\nh q[0];\ny q[1];\nsdg q[0];\ntdg q[1];\nz q[0];\nswap q[0], q[1];\ncx q[0], q[1];\n"},
	}

	for _, tt := range circuits {
		t.Run(tt.name, func(t *testing.T) {
			refState, err := New().Run(tt.source)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "circuit.qasm")
			require.NoError(t, os.WriteFile(path, []byte(tt.source), 0644))
			candState, err := bitwise.New().Simulate(path)
			require.NoError(t, err)

			assertAmplitudes(t, refState, candState)
		})
	}
}
