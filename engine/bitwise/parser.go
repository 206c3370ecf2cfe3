package bitwise

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// maxQubits bounds the dense state vector at 2^24 amplitudes.
const maxQubits = 24

// Gate is one parsed circuit operation. Control is -1 for single-qubit
// gates; Theta is meaningful only for rotation gates.
type Gate struct {
	Name    string
	Target  int
	Control int
	Theta   float64
}

// Circuit is a parsed OpenQASM 2.0 subset program.
type Circuit struct {
	Qubits int
	Gates  []Gate
}

var (
	qregRegex     = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\]\s*;?$`)
	rotationRegex = regexp.MustCompile(`^([a-z]\w*)\(([^()]+)\)\s+(\w+)\[(\d+)\]\s*;?$`)
	twoQubitRegex = regexp.MustCompile(`^([a-z]\w*)\s+(\w+)\[(\d+)\]\s*,\s*(\w+)\[(\d+)\]\s*;?$`)
	singleRegex   = regexp.MustCompile(`^([a-z]\w*)\s+(\w+)\[(\d+)\]\s*;?$`)
)

var (
	singleQubitGates = map[string]bool{
		"id": true, "h": true, "x": true, "y": true, "z": true,
		"s": true, "sdg": true, "t": true, "tdg": true,
	}
	rotationGates = map[string]bool{"rx": true, "ry": true, "rz": true}
	twoQubitGates = map[string]bool{"cx": true, "cz": true, "swap": true}
)

// ParseQASM parses the OpenQASM 2.0 subset this engine executes: one qreg,
// the standard single-qubit gates, rx/ry/rz rotations, and cx/cz/swap.
// Classical registers, measurements, and barriers are skipped; anything else
// is an error.
func ParseQASM(source string) (*Circuit, error) {
	circ := &Circuit{}
	declared := false

	for n, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if i := strings.Index(line, "//"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" ||
			strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") ||
			strings.HasPrefix(line, "barrier") ||
			strings.HasPrefix(line, "measure") {
			continue
		}

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			if declared {
				return nil, fmt.Errorf("line %d: multiple qreg declarations", n+1)
			}
			qubits, err := strconv.Atoi(m[2])
			if err != nil || qubits < 1 || qubits > maxQubits {
				return nil, fmt.Errorf("line %d: qreg size must be 1..%d", n+1, maxQubits)
			}
			circ.Qubits = qubits
			declared = true
			continue
		}
		if !declared {
			return nil, fmt.Errorf("line %d: gate before qreg declaration", n+1)
		}

		if m := rotationRegex.FindStringSubmatch(line); m != nil {
			name := m[1]
			if !rotationGates[name] {
				return nil, fmt.Errorf("line %d: unsupported gate %q", n+1, name)
			}
			theta, err := parseAngle(m[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", n+1, err)
			}
			target, err := parseIndex(m[4], circ.Qubits)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", n+1, err)
			}
			circ.Gates = append(circ.Gates, Gate{Name: name, Target: target, Control: -1, Theta: theta})
			continue
		}

		if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
			name := m[1]
			if !twoQubitGates[name] {
				return nil, fmt.Errorf("line %d: unsupported gate %q", n+1, name)
			}
			control, err := parseIndex(m[3], circ.Qubits)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", n+1, err)
			}
			target, err := parseIndex(m[5], circ.Qubits)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", n+1, err)
			}
			if control == target {
				return nil, fmt.Errorf("line %d: %s needs two distinct qubits", n+1, name)
			}
			circ.Gates = append(circ.Gates, Gate{Name: name, Target: target, Control: control})
			continue
		}

		if m := singleRegex.FindStringSubmatch(line); m != nil {
			name := m[1]
			if !singleQubitGates[name] {
				return nil, fmt.Errorf("line %d: unsupported gate %q", n+1, name)
			}
			target, err := parseIndex(m[3], circ.Qubits)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", n+1, err)
			}
			circ.Gates = append(circ.Gates, Gate{Name: name, Target: target, Control: -1})
			continue
		}

		return nil, fmt.Errorf("line %d: unsupported statement %q", n+1, line)
	}

	if !declared {
		return nil, errors.New("no qreg declaration found")
	}
	return circ, nil
}

func parseIndex(s string, qubits int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad qubit index %q", s)
	}
	if idx < 0 || idx >= qubits {
		return 0, fmt.Errorf("qubit index %d out of range for %d-qubit register", idx, qubits)
	}
	return idx, nil
}

// parseAngle evaluates a rotation parameter: a float literal or the forms
// pi, -pi, a*pi, pi/b, and a*pi/b.
func parseAngle(expr string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(expr), " ", "")
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	sign := 1.0
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}
	factor := 1.0
	if i := strings.Index(s, "*"); i >= 0 {
		f, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, fmt.Errorf("bad angle %q", expr)
		}
		factor = f
		s = s[i+1:]
	}
	divisor := 1.0
	if i := strings.Index(s, "/"); i >= 0 {
		d, err := strconv.ParseFloat(s[i+1:], 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("bad angle %q", expr)
		}
		divisor = d
		s = s[:i]
	}
	if s != "pi" {
		return 0, fmt.Errorf("bad angle %q", expr)
	}
	return sign * factor * math.Pi / divisor, nil
}
