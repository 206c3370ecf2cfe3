// Package compare decides whether two state vectors are numerically
// equivalent under a combined absolute/relative tolerance.
package compare

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/qsimbench/qbench/types"
)

// Default tolerances. Loose enough to absorb floating-point accumulation
// differences between independently implemented engines, tight enough to
// catch genuine algorithmic divergence.
const (
	DefaultAtol = 1e-8
	DefaultRtol = 1e-5
)

// LengthMismatchError reports that the two engines disagreed on the
// Hilbert-space dimension for the same circuit. This is a structural
// failure of the run, never a "not equivalent" verdict.
type LengthMismatchError struct {
	LenA int
	LenB int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("state vector length mismatch: %d vs %d", e.LenA, e.LenB)
}

// IsLengthMismatchError checks if an error is a LengthMismatchError.
func IsLengthMismatchError(err error) bool {
	var mismatchErr *LengthMismatchError
	return errors.As(err, &mismatchErr)
}

// Equivalent reports whether every amplitude of a agrees with the matching
// amplitude of b within |a_i - b_i| <= atol + rtol*|b_i|. The verdict is the
// logical AND over all indices. Vectors of differing length produce a
// LengthMismatchError and no verdict.
func Equivalent(a, b types.StateVector, atol, rtol float64) (bool, error) {
	if len(a) != len(b) {
		return false, &LengthMismatchError{LenA: len(a), LenB: len(b)}
	}
	for i := range a {
		if cmplx.Abs(a[i]-b[i]) > atol+rtol*cmplx.Abs(b[i]) {
			return false, nil
		}
	}
	return true, nil
}
