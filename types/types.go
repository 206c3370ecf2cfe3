// Package types defines the data model shared across the benchmark harness:
// state vectors produced by simulator engines, per-circuit comparison
// records, and the result set collected over one suite run.
package types

import (
	"errors"
	"fmt"
	"math/bits"
	"math/cmplx"
	"time"
)

var (
	// ErrEmptyVector is returned when an engine produces no amplitudes.
	ErrEmptyVector = errors.New("state vector is empty")
	// ErrNotPowerOfTwo is returned when the amplitude count cannot
	// correspond to a whole number of qubits.
	ErrNotPowerOfTwo = errors.New("state vector length is not a power of two")
	// ErrNotFinite is returned when an amplitude is NaN or infinite.
	ErrNotFinite = errors.New("state vector contains a non-finite amplitude")
)

// StateVector is the ordered sequence of complex amplitudes describing a
// quantum system's final state. Build one through NewStateVector so the
// power-of-two length invariant holds for every value in circulation.
type StateVector []complex128

// NewStateVector validates raw engine output and wraps it as a StateVector.
// The amplitudes must be non-empty, all finite, and a power of two in count;
// a violation is an error, never a silently adjusted vector.
func NewStateVector(amplitudes []complex128) (StateVector, error) {
	if len(amplitudes) == 0 {
		return nil, ErrEmptyVector
	}
	if bits.OnesCount(uint(len(amplitudes))) != 1 {
		return nil, fmt.Errorf("%w: got length %d", ErrNotPowerOfTwo, len(amplitudes))
	}
	for i, a := range amplitudes {
		if cmplx.IsNaN(a) || cmplx.IsInf(a) {
			return nil, fmt.Errorf("%w: index %d is %v", ErrNotFinite, i, a)
		}
	}
	return StateVector(amplitudes), nil
}

// QubitCount returns log2 of the vector length. It is exact for any vector
// built through NewStateVector; a length-1 vector describes zero qubits.
func (v StateVector) QubitCount() int {
	return bits.TrailingZeros(uint(len(v)))
}

// ComparisonRecord is one row of the benchmark report: a single circuit run
// through both engines, timed, and checked for numerical agreement.
type ComparisonRecord struct {
	Circuit           string        `json:"circuit"`
	QubitCount        int           `json:"qubit_count"`
	CandidateDuration time.Duration `json:"candidate_duration_ns"`
	ReferenceDuration time.Duration `json:"reference_duration_ns"`
	Equivalent        bool          `json:"equivalent"`
}

// ResultSet accumulates one ComparisonRecord per discovered circuit. It is
// append-only while the suite runs; the reporter sorts it once afterwards
// and treats it as read-only from then on.
type ResultSet struct {
	RunID     string             `json:"run_id"`
	SourceDir string             `json:"source_dir"`
	Records   []ComparisonRecord `json:"records"`
	Started   time.Time          `json:"started"`
	Finished  time.Time          `json:"finished"`
}

// NewResultSet starts an empty result set for one suite run.
func NewResultSet(runID, sourceDir string) *ResultSet {
	return &ResultSet{
		RunID:     runID,
		SourceDir: sourceDir,
		Started:   time.Now(),
	}
}

// Append adds a completed record. Records arrive in discovery order; sorting
// is the reporter's job.
func (rs *ResultSet) Append(rec ComparisonRecord) {
	rs.Records = append(rs.Records, rec)
}

// Finish stamps the end of the suite run.
func (rs *ResultSet) Finish() {
	rs.Finished = time.Now()
}

// Size returns the number of records collected.
func (rs *ResultSet) Size() int {
	return len(rs.Records)
}

// EquivalentCount returns how many circuits the candidate matched.
func (rs *ResultSet) EquivalentCount() int {
	n := 0
	for _, rec := range rs.Records {
		if rec.Equivalent {
			n++
		}
	}
	return n
}

// MismatchCount returns how many circuits the candidate got wrong.
func (rs *ResultSet) MismatchCount() int {
	return rs.Size() - rs.EquivalentCount()
}

// AllEquivalent reports whether every verdict in the set is positive.
func (rs *ResultSet) AllEquivalent() bool {
	return rs.MismatchCount() == 0
}

// Duration returns the wall-clock span of the suite run.
func (rs *ResultSet) Duration() time.Duration {
	return rs.Finished.Sub(rs.Started)
}
