// Package bitwise is a dense state-vector simulator that applies gates with
// bit-mask index arithmetic, pairing the basis states that differ only in
// the target bit. It is the harness's built-in candidate engine.
package bitwise

import (
	"fmt"
	"math"
	"math/cmplx"
	"os"
)

// Engine holds no state between simulations; every call starts from |0...0>.
type Engine struct{}

// New returns a bitwise engine.
func New() *Engine {
	return &Engine{}
}

// Simulate loads and runs the circuit file at path. This is the
// candidate-style collaborator interface: the engine receives a path and
// opens the file itself.
func (e *Engine) Simulate(path string) ([]complex128, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	circ, err := ParseQASM(string(data))
	if err != nil {
		return nil, err
	}
	return e.run(circ)
}

func (e *Engine) run(circ *Circuit) ([]complex128, error) {
	state := make([]complex128, 1<<circ.Qubits)
	state[0] = 1
	for _, g := range circ.Gates {
		if err := applyGate(state, g); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func applyGate(state []complex128, g Gate) error {
	switch g.Name {
	case "id":
	case "h":
		applyH(state, g.Target)
	case "x":
		applyX(state, g.Target)
	case "y":
		applyY(state, g.Target)
	case "z":
		applyPhase(state, g.Target, -1)
	case "s":
		applyPhase(state, g.Target, 1i)
	case "sdg":
		applyPhase(state, g.Target, -1i)
	case "t":
		applyPhase(state, g.Target, cmplx.Exp(complex(0, math.Pi/4)))
	case "tdg":
		applyPhase(state, g.Target, cmplx.Exp(complex(0, -math.Pi/4)))
	case "rx":
		applyRX(state, g.Target, g.Theta)
	case "ry":
		applyRY(state, g.Target, g.Theta)
	case "rz":
		applyRZ(state, g.Target, g.Theta)
	case "cx":
		applyCX(state, g.Control, g.Target)
	case "cz":
		applyCZ(state, g.Control, g.Target)
	case "swap":
		applySwap(state, g.Control, g.Target)
	default:
		return fmt.Errorf("unsupported gate %q", g.Name)
	}
	return nil
}

func applyH(state []complex128, target int) {
	bit := 1 << target
	factor := complex(1/math.Sqrt2, 0)
	for i := range state {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := state[i], state[j]
			state[i] = factor * (a0 + a1)
			state[j] = factor * (a0 - a1)
		}
	}
}

func applyX(state []complex128, target int) {
	bit := 1 << target
	for i := range state {
		if i&bit == 0 {
			j := i | bit
			state[i], state[j] = state[j], state[i]
		}
	}
}

func applyY(state []complex128, target int) {
	bit := 1 << target
	for i := range state {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := state[i], state[j]
			state[i] = -1i * a1
			state[j] = 1i * a0
		}
	}
}

// applyPhase multiplies the amplitude of every basis state with the target
// bit set. Covers z, s, sdg, t, and tdg.
func applyPhase(state []complex128, target int, phase complex128) {
	bit := 1 << target
	for i := range state {
		if i&bit != 0 {
			state[i] *= phase
		}
	}
}

func applyRX(state []complex128, target int, theta float64) {
	bit := 1 << target
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	for i := range state {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := state[i], state[j]
			state[i] = c*a0 + s*a1
			state[j] = s*a0 + c*a1
		}
	}
}

func applyRY(state []complex128, target int, theta float64) {
	bit := 1 << target
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	for i := range state {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := state[i], state[j]
			state[i] = c*a0 - s*a1
			state[j] = s*a0 + c*a1
		}
	}
}

func applyRZ(state []complex128, target int, theta float64) {
	bit := 1 << target
	phase := cmplx.Exp(complex(0, theta/2))
	for i := range state {
		if i&bit == 0 {
			j := i | bit
			state[i] *= cmplx.Conj(phase)
			state[j] *= phase
		}
	}
}

func applyCX(state []complex128, control, target int) {
	cbit, tbit := 1<<control, 1<<target
	for i := range state {
		if i&cbit != 0 && i&tbit == 0 {
			j := i | tbit
			state[i], state[j] = state[j], state[i]
		}
	}
}

func applyCZ(state []complex128, control, target int) {
	cbit, tbit := 1<<control, 1<<target
	for i := range state {
		if i&cbit != 0 && i&tbit != 0 {
			state[i] = -state[i]
		}
	}
}

func applySwap(state []complex128, a, b int) {
	abit, bbit := 1<<a, 1<<b
	for i := range state {
		if i&abit != 0 && i&bbit == 0 {
			j := (i &^ abit) | bbit
			state[i], state[j] = state[j], state[i]
		}
	}
}
