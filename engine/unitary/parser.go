package unitary

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxQubits bounds the dense state vector at 2^24 amplitudes.
const maxQubits = 24

// Op is one operation of a parsed program.
type Op struct {
	Gate   string
	Qubits []int
	Param  float64
}

// Program is a parsed OpenQASM 2.0 subset circuit.
type Program struct {
	Qubits int
	Ops    []Op
}

type gateSpec struct {
	qubits int
	params int
}

var gates = map[string]gateSpec{
	"id": {1, 0}, "h": {1, 0}, "x": {1, 0}, "y": {1, 0}, "z": {1, 0},
	"s": {1, 0}, "sdg": {1, 0}, "t": {1, 0}, "tdg": {1, 0},
	"rx": {1, 1}, "ry": {1, 1}, "rz": {1, 1},
	"cx": {2, 0}, "cz": {2, 0}, "swap": {2, 0},
}

// Parse consumes the OpenQASM 2.0 subset shared by the shipped engines. It
// strips comments, splits the source into ';'-terminated statements, and
// tokenizes each statement. Classical registers, measurements, and barriers
// are skipped.
func Parse(source string) (*Program, error) {
	var cleaned strings.Builder
	for _, line := range strings.Split(source, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		cleaned.WriteString(line)
		cleaned.WriteByte('\n')
	}

	prog := &Program{}
	declared := false
	for _, stmt := range strings.Split(cleaned.String(), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		keyword := stmt
		if i := strings.IndexAny(stmt, " \t("); i >= 0 {
			keyword = stmt[:i]
		}
		switch keyword {
		case "OPENQASM", "include", "creg", "barrier", "measure":
			continue
		case "qreg":
			if declared {
				return nil, fmt.Errorf("multiple qreg declarations: %q", stmt)
			}
			_, size, err := parseOperand(strings.TrimSpace(stmt[len("qreg"):]))
			if err != nil {
				return nil, fmt.Errorf("bad qreg declaration %q: %v", stmt, err)
			}
			if size < 1 || size > maxQubits {
				return nil, fmt.Errorf("qreg size %d outside 1..%d", size, maxQubits)
			}
			prog.Qubits = size
			declared = true
			continue
		}

		if !declared {
			return nil, fmt.Errorf("statement %q precedes the qreg declaration", stmt)
		}
		op, err := parseOp(stmt)
		if err != nil {
			return nil, err
		}
		spec, ok := gates[op.Gate]
		if !ok {
			return nil, fmt.Errorf("unsupported gate %q", op.Gate)
		}
		if len(op.Qubits) != spec.qubits {
			return nil, fmt.Errorf("gate %s takes %d qubit(s), got %d", op.Gate, spec.qubits, len(op.Qubits))
		}
		if spec.qubits == 2 && op.Qubits[0] == op.Qubits[1] {
			return nil, fmt.Errorf("gate %s needs two distinct qubits", op.Gate)
		}
		for _, q := range op.Qubits {
			if q < 0 || q >= prog.Qubits {
				return nil, fmt.Errorf("qubit index %d out of range for %d-qubit register", q, prog.Qubits)
			}
		}
		prog.Ops = append(prog.Ops, op)
	}

	if !declared {
		return nil, errors.New("no qreg declaration found")
	}
	return prog, nil
}

// parseOp splits "rz(pi/2) q[0]" or "cx q[0], q[1]" into gate name, optional
// parameter, and operand indices.
func parseOp(stmt string) (Op, error) {
	var op Op

	rest := stmt
	end := 0
	for end < len(rest) && (isWordByte(rest[end])) {
		end++
	}
	if end == 0 {
		return op, fmt.Errorf("unsupported statement %q", stmt)
	}
	op.Gate = rest[:end]
	rest = rest[end:]

	spec, ok := gates[op.Gate]
	if ok && spec.params > 0 {
		rest = strings.TrimSpace(rest)
		if len(rest) == 0 || rest[0] != '(' {
			return op, fmt.Errorf("gate %s requires a parameter", op.Gate)
		}
		closing := strings.IndexByte(rest, ')')
		if closing < 0 {
			return op, fmt.Errorf("unterminated parameter in %q", stmt)
		}
		param, err := evalAngle(rest[1:closing])
		if err != nil {
			return op, err
		}
		op.Param = param
		rest = rest[closing+1:]
	}

	for _, operand := range strings.Split(rest, ",") {
		operand = strings.TrimSpace(operand)
		if operand == "" {
			return op, fmt.Errorf("missing operand in %q", stmt)
		}
		_, idx, err := parseOperand(operand)
		if err != nil {
			return op, err
		}
		op.Qubits = append(op.Qubits, idx)
	}
	return op, nil
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}

// parseOperand decodes "q[3]" into register name and index.
func parseOperand(s string) (string, int, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '[')
	if open < 1 || !strings.HasSuffix(s, "]") {
		return "", 0, fmt.Errorf("bad operand %q", s)
	}
	idx, err := strconv.Atoi(s[open+1 : len(s)-1])
	if err != nil {
		return "", 0, fmt.Errorf("bad operand index in %q", s)
	}
	return s[:open], idx, nil
}

// evalAngle evaluates a parameter expression as a chain of '*' and '/'
// operations over float literals and the constant pi, e.g. "3*pi/4".
func evalAngle(expr string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(expr), " ", "")
	if s == "" {
		return 0, errors.New("empty angle expression")
	}
	negative := false
	if s[0] == '-' {
		negative = true
		s = s[1:]
	}

	value := 0.0
	pending := byte('*')
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != '*' && s[i] != '/' {
			continue
		}
		term, err := angleTerm(s[start:i])
		if err != nil {
			return 0, fmt.Errorf("bad angle %q: %v", expr, err)
		}
		switch pending {
		case '*':
			if start == 0 {
				value = term
			} else {
				value *= term
			}
		case '/':
			if term == 0 {
				return 0, fmt.Errorf("bad angle %q: division by zero", expr)
			}
			value /= term
		}
		if i < len(s) {
			pending = s[i]
		}
		start = i + 1
	}
	if negative {
		value = -value
	}
	return value, nil
}

func angleTerm(s string) (float64, error) {
	if s == "pi" {
		return math.Pi, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized term %q", s)
	}
	return v, nil
}
