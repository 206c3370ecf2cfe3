// Package unitary is a dense state-vector simulator that expresses every
// gate as a 2x2 unitary matrix and applies it with stride-blocked index
// arithmetic. It is the harness's built-in reference engine and shares no
// code with the bitwise candidate.
package unitary

import (
	"fmt"
	"math"
	"math/cmplx"
)

type matrix [2][2]complex128

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)

	matH   = matrix{{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}}
	matX   = matrix{{0, 1}, {1, 0}}
	matY   = matrix{{0, -1i}, {1i, 0}}
	matZ   = matrix{{1, 0}, {0, -1}}
	matS   = matrix{{1, 0}, {0, 1i}}
	matSdg = matrix{{1, 0}, {0, -1i}}
	matT   = matrix{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}
	matTdg = matrix{{1, 0}, {0, cmplx.Exp(complex(0, -math.Pi/4))}}
	matID  = matrix{{1, 0}, {0, 1}}
)

func matrixFor(op Op) (matrix, error) {
	switch op.Gate {
	case "id":
		return matID, nil
	case "h":
		return matH, nil
	case "x":
		return matX, nil
	case "y":
		return matY, nil
	case "z":
		return matZ, nil
	case "s":
		return matS, nil
	case "sdg":
		return matSdg, nil
	case "t":
		return matT, nil
	case "tdg":
		return matTdg, nil
	case "rx":
		c := complex(math.Cos(op.Param/2), 0)
		s := complex(0, -math.Sin(op.Param/2))
		return matrix{{c, s}, {s, c}}, nil
	case "ry":
		c := complex(math.Cos(op.Param/2), 0)
		s := complex(math.Sin(op.Param/2), 0)
		return matrix{{c, -s}, {s, c}}, nil
	case "rz":
		return matrix{
			{cmplx.Exp(complex(0, -op.Param/2)), 0},
			{0, cmplx.Exp(complex(0, op.Param/2))},
		}, nil
	}
	return matrix{}, fmt.Errorf("no matrix for gate %q", op.Gate)
}

// Engine holds no state between runs; every run starts from |0...0>.
type Engine struct{}

// New returns a unitary-matrix engine.
func New() *Engine {
	return &Engine{}
}

// Run executes circuit source text. This is the reference-style collaborator
// interface: the engine receives the file's contents, not its path.
func (e *Engine) Run(source string) ([]complex128, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, err
	}

	state := make([]complex128, 1<<prog.Qubits)
	state[0] = 1
	for _, op := range prog.Ops {
		switch op.Gate {
		case "cx":
			applyControlled(state, matX, op.Qubits[0], op.Qubits[1])
		case "cz":
			applyControlled(state, matZ, op.Qubits[0], op.Qubits[1])
		case "swap":
			// Decomposed as three alternating CNOTs.
			applyControlled(state, matX, op.Qubits[0], op.Qubits[1])
			applyControlled(state, matX, op.Qubits[1], op.Qubits[0])
			applyControlled(state, matX, op.Qubits[0], op.Qubits[1])
		default:
			m, err := matrixFor(op)
			if err != nil {
				return nil, err
			}
			applySingle(state, m, op.Qubits[0])
		}
	}
	return state, nil
}

// applySingle applies a 2x2 unitary to the target qubit, walking the state
// in blocks of 2*stride so each amplitude pair is visited exactly once.
func applySingle(state []complex128, m matrix, target int) {
	stride := 1 << target
	for base := 0; base < len(state); base += stride << 1 {
		for offset := 0; offset < stride; offset++ {
			i0 := base + offset
			i1 := i0 + stride
			a0, a1 := state[i0], state[i1]
			state[i0] = m[0][0]*a0 + m[0][1]*a1
			state[i1] = m[1][0]*a0 + m[1][1]*a1
		}
	}
}

// applyControlled applies a 2x2 unitary to the target qubit on the subspace
// where the control qubit is set.
func applyControlled(state []complex128, m matrix, control, target int) {
	cbit, tbit := 1<<control, 1<<target
	for i := range state {
		if i&cbit != 0 && i&tbit == 0 {
			j := i | tbit
			a0, a1 := state[i], state[j]
			state[i] = m[0][0]*a0 + m[0][1]*a1
			state[j] = m[1][0]*a0 + m[1][1]*a1
		}
	}
}
