// Package runner drives the benchmark suite: it discovers circuits, times
// the candidate and reference engines on each one, checks the final states
// for numerical agreement, and collects the records into a result set.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/qsimbench/qbench/bench"
	"github.com/qsimbench/qbench/compare"
	"github.com/qsimbench/qbench/discovery"
	"github.com/qsimbench/qbench/engine"
	"github.com/qsimbench/qbench/types"
)

// TimeoutError reports that one circuit exceeded the configured per-case
// deadline. It is deliberately distinct from an engine failure: a slow
// engine is not a wrong engine.
type TimeoutError struct {
	Circuit string
	Limit   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("circuit %s exceeded the %s case timeout", e.Circuit, e.Limit)
}

// IsTimeoutError checks if an error is a TimeoutError.
func IsTimeoutError(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// CaseRunner benchmarks a single circuit against both engines. The two
// engines are invoked strictly one after another, never concurrently, so
// each timing reflects that engine's isolated cost.
type CaseRunner struct {
	Candidate   engine.Adapter
	Reference   engine.Adapter
	Repetitions int
	Atol        float64
	Rtol        float64
	Timeout     time.Duration // 0 disables the per-case deadline
	Log         *log.Logger
}

// Run produces the comparison record for one circuit file. Timing and
// correctness sampling are decoupled: after the timed repetitions, each
// adapter is invoked exactly once more and only those two vectors feed the
// equivalence check. Failures propagate; nothing is caught here.
func (r *CaseRunner) Run(ctx context.Context, circuitPath string) (types.ComparisonRecord, error) {
	var rec types.ComparisonRecord
	circuit := filepath.Base(circuitPath)
	logger := r.Log
	if logger == nil {
		logger = log.Default()
	}

	cctx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	logger.Debug("timing candidate engine", "circuit", circuit, "repetitions", r.Repetitions)
	candidateDuration, err := bench.Measure(func() error {
		_, simErr := r.Candidate.Simulate(cctx, circuitPath)
		return simErr
	}, r.Repetitions)
	if err != nil {
		return rec, r.caseError(cctx, circuit, err)
	}

	logger.Debug("timing reference engine", "circuit", circuit, "repetitions", r.Repetitions)
	referenceDuration, err := bench.Measure(func() error {
		_, simErr := r.Reference.Simulate(cctx, circuitPath)
		return simErr
	}, r.Repetitions)
	if err != nil {
		return rec, r.caseError(cctx, circuit, err)
	}

	candidateVec, err := r.Candidate.Simulate(cctx, circuitPath)
	if err != nil {
		return rec, r.caseError(cctx, circuit, err)
	}
	referenceVec, err := r.Reference.Simulate(cctx, circuitPath)
	if err != nil {
		return rec, r.caseError(cctx, circuit, err)
	}

	equivalent, err := compare.Equivalent(candidateVec, referenceVec, r.Atol, r.Rtol)
	if err != nil {
		return rec, err
	}

	rec = types.ComparisonRecord{
		Circuit:           circuit,
		QubitCount:        candidateVec.QubitCount(),
		CandidateDuration: candidateDuration,
		ReferenceDuration: referenceDuration,
		Equivalent:        equivalent,
	}
	return rec, nil
}

// caseError converts a deadline overrun into a TimeoutError. Subprocess
// engines surface a kill rather than context.DeadlineExceeded, so the case
// context is consulted as well.
func (r *CaseRunner) caseError(cctx context.Context, circuit string, err error) error {
	if r.Timeout > 0 && (errors.Is(err, context.DeadlineExceeded) || cctx.Err() == context.DeadlineExceeded) {
		return &TimeoutError{Circuit: circuit, Limit: r.Timeout}
	}
	return err
}

// Config carries everything a suite run needs. Candidate and Reference are
// the two engine adapters; the rest tunes discovery, timing, comparison,
// and scheduling.
type Config struct {
	RunID       string
	CircuitDir  string
	Extension   string
	Repetitions int
	Atol        float64
	Rtol        float64
	Candidate   engine.Adapter
	Reference   engine.Adapter
	CaseTimeout time.Duration
	Parallel    int
	Log         *log.Logger
}

// SuiteRunner runs every discovered circuit through a CaseRunner and
// collects the records. The first case failure aborts the whole suite.
type SuiteRunner struct {
	cfg   Config
	cases CaseRunner
}

// NewSuiteRunner validates the configuration and builds a suite runner.
func NewSuiteRunner(cfg Config) (*SuiteRunner, error) {
	if cfg.CircuitDir == "" {
		return nil, errors.New("circuit directory is required")
	}
	if cfg.Extension == "" {
		return nil, errors.New("circuit extension is required")
	}
	if cfg.Candidate == nil || cfg.Reference == nil {
		return nil, errors.New("both candidate and reference adapters are required")
	}
	if cfg.Repetitions < 1 {
		return nil, fmt.Errorf("repetitions must be at least 1, got %d", cfg.Repetitions)
	}
	if cfg.Atol < 0 || cfg.Rtol < 0 {
		return nil, errors.New("tolerances must be non-negative")
	}
	if cfg.CaseTimeout < 0 {
		return nil, errors.New("case timeout must be non-negative")
	}
	if cfg.Parallel < 1 {
		return nil, fmt.Errorf("parallelism must be at least 1, got %d", cfg.Parallel)
	}
	if cfg.Log == nil {
		cfg.Log = log.Default()
	}

	return &SuiteRunner{
		cfg: cfg,
		cases: CaseRunner{
			Candidate:   cfg.Candidate,
			Reference:   cfg.Reference,
			Repetitions: cfg.Repetitions,
			Atol:        cfg.Atol,
			Rtol:        cfg.Rtol,
			Timeout:     cfg.CaseTimeout,
			Log:         cfg.Log,
		},
	}, nil
}

// Run discovers the suite's circuits and benchmarks each one. Records land
// in the result set in discovery order; sorting is the reporter's concern.
func (s *SuiteRunner) Run(ctx context.Context) (*types.ResultSet, error) {
	paths, err := discovery.DiscoverCircuits(s.cfg.CircuitDir, s.cfg.Extension)
	if err != nil {
		return nil, err
	}
	s.cfg.Log.Info("discovered circuits",
		"count", len(paths),
		"dir", s.cfg.CircuitDir,
		"extension", s.cfg.Extension)

	rs := types.NewResultSet(s.cfg.RunID, s.cfg.CircuitDir)
	if s.cfg.Parallel > 1 {
		err = s.runParallel(ctx, paths, rs)
	} else {
		err = s.runSequential(ctx, paths, rs)
	}
	if err != nil {
		return nil, err
	}
	rs.Finish()

	s.cfg.Log.Info("suite complete",
		"circuits", rs.Size(),
		"equivalent", rs.EquivalentCount(),
		"mismatched", rs.MismatchCount(),
		"elapsed", rs.Duration())
	return rs, nil
}

func (s *SuiteRunner) runSequential(ctx context.Context, paths []string, rs *types.ResultSet) error {
	for _, path := range paths {
		rec, err := s.cases.Run(ctx, path)
		if err != nil {
			return errors.Wrapf(err, "circuit %s", filepath.Base(path))
		}
		rs.Append(rec)
		s.logRecord(rec)
	}
	return nil
}

// runParallel spreads circuits over a bounded pool. The two engines within
// one circuit still run strictly in sequence; only whole cases overlap.
// Records are written to per-index slots so the assembled set keeps
// discovery order.
func (s *SuiteRunner) runParallel(ctx context.Context, paths []string, rs *types.ResultSet) error {
	records := make([]types.ComparisonRecord, len(paths))
	p := pool.New().
		WithErrors().
		WithFirstError().
		WithMaxGoroutines(s.cfg.Parallel).
		WithContext(ctx).
		WithCancelOnError()

	for i, path := range paths {
		p.Go(func(ctx context.Context) error {
			rec, err := s.cases.Run(ctx, path)
			if err != nil {
				return errors.Wrapf(err, "circuit %s", filepath.Base(path))
			}
			records[i] = rec
			s.logRecord(rec)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	for _, rec := range records {
		rs.Append(rec)
	}
	return nil
}

func (s *SuiteRunner) logRecord(rec types.ComparisonRecord) {
	s.cfg.Log.Info("circuit benchmarked",
		"circuit", rec.Circuit,
		"qubits", rec.QubitCount,
		"candidate", rec.CandidateDuration,
		"reference", rec.ReferenceDuration,
		"equivalent", rec.Equivalent)
}
