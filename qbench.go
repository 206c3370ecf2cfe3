// Package qbench compares a candidate quantum-circuit simulator against a
// trusted reference: it discovers circuit files, times both engines on each
// one, checks the final state vectors for numerical agreement, and reports
// the outcome as a table, a plot, and an optional JSON export.
package qbench

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/qsimbench/qbench/engine"
	"github.com/qsimbench/qbench/engine/bitwise"
	"github.com/qsimbench/qbench/engine/external"
	"github.com/qsimbench/qbench/engine/unitary"
	"github.com/qsimbench/qbench/exitcodes"
	"github.com/qsimbench/qbench/metrics"
	"github.com/qsimbench/qbench/report"
	"github.com/qsimbench/qbench/runner"
	"github.com/qsimbench/qbench/types"
)

// Service wires discovery, the suite runner, and the reporters into one
// benchmark run.
type Service struct {
	config  *Config
	version string
	runID   string
	suite   *runner.SuiteRunner
	result  *types.ResultSet
}

// New creates the benchmark service from a validated config.
func New(config *Config, version string) (*Service, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	candidate, err := candidateAdapter(config)
	if err != nil {
		return nil, err
	}
	reference, err := referenceAdapter(config)
	if err != nil {
		return nil, err
	}

	config.Log.Debug("Creating benchmark service",
		"circuitDir", config.CircuitDir,
		"extension", config.Extension,
		"repetitions", config.Repetitions,
		"candidate", candidate.Name(),
		"reference", reference.Name())

	runID := uuid.New().String()
	suite, err := runner.NewSuiteRunner(runner.Config{
		RunID:       runID,
		CircuitDir:  config.CircuitDir,
		Extension:   config.Extension,
		Repetitions: config.Repetitions,
		Atol:        config.Atol,
		Rtol:        config.Rtol,
		Candidate:   candidate,
		Reference:   reference,
		CaseTimeout: config.CaseTimeout,
		Parallel:    config.Parallel,
		Log:         config.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create suite runner: %w", err)
	}

	return &Service{
		config:  config,
		version: version,
		runID:   runID,
		suite:   suite,
	}, nil
}

// candidateAdapter selects the engine under test: an external command when
// configured, otherwise the built-in bitwise engine.
func candidateAdapter(config *Config) (engine.Adapter, error) {
	if config.CandidateCmd == "" {
		return bitwise.NewAdapter(), nil
	}
	parts := strings.Fields(config.CandidateCmd)
	if len(parts) == 0 {
		return nil, errors.New("candidate command must not be blank")
	}
	return external.NewPathAdapter(parts[0], parts[1:]...), nil
}

// referenceAdapter selects the trusted engine: an external command when
// configured, otherwise the built-in unitary engine.
func referenceAdapter(config *Config) (engine.Adapter, error) {
	if config.ReferenceCmd == "" {
		return unitary.NewAdapter(), nil
	}
	parts := strings.Fields(config.ReferenceCmd)
	if len(parts) == 0 {
		return nil, errors.New("reference command must not be blank")
	}
	return external.NewSourceAdapter(parts[0], parts[1:]...), nil
}

// Run executes the benchmark once and writes every report artifact. A
// runtime failure returns a RuntimeError (exit code 2); a completed run
// with mismatched circuits returns a BenchFailureError (exit code 1) when
// FailOnMismatch is set.
func (s *Service) Run(ctx context.Context) error {
	// Panics are runtime errors, not benchmark verdicts.
	defer func() {
		if r := recover(); r != nil {
			s.config.Log.Error("Runtime error occurred", "error", r)
			os.Exit(exitcodes.RuntimeErr)
		}
	}()

	s.config.Log.Info("Starting benchmark run",
		"run_id", s.runID,
		"circuits", s.config.CircuitDir,
		"version", s.version)

	result, err := s.suite.Run(ctx)
	if err != nil {
		s.config.Log.Error("Runtime error running benchmark", "error", err)
		metrics.RecordErrorDetails("suite", err)
		return NewRuntimeError(err)
	}
	s.result = result

	if err := s.report(result); err != nil {
		s.config.Log.Error("Runtime error writing reports", "error", err)
		metrics.RecordErrorDetails("report", err)
		return NewRuntimeError(err)
	}

	for _, rec := range result.Records {
		verdict := "equivalent"
		if !rec.Equivalent {
			verdict = "mismatch"
		}
		metrics.RecordComparison(s.runID, rec.Circuit, verdict, rec.CandidateDuration, rec.ReferenceDuration)
	}
	metrics.RecordSuite(s.runID, result.Size(), result.EquivalentCount(), result.MismatchCount(), result.Duration())

	s.config.Log.Info("Benchmark run completed",
		"run_id", s.runID,
		"circuits", result.Size(),
		"equivalent", result.EquivalentCount(),
		"mismatched", result.MismatchCount())

	if s.config.FailOnMismatch && !result.AllEquivalent() {
		return NewBenchFailureError(fmt.Sprintf("%d of %d circuits mismatched", result.MismatchCount(), result.Size()))
	}
	return nil
}

// report writes the comparison table to stdout, renders the plot, and
// exports JSON when configured.
func (s *Service) report(result *types.ResultSet) error {
	tableGen := report.NewGenerator(report.NewTableFormatter(s.config.Title), report.NewStdoutWriter())
	if err := tableGen.Generate(result); err != nil {
		return fmt.Errorf("failed to write comparison table: %w", err)
	}

	plot := report.NewPlotRenderer(s.config.PlotFile, s.config.Title)
	if err := plot.Render(result); err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	s.config.Log.Info("Plot written", "path", s.config.PlotFile)

	if s.config.ExportFile != "" {
		exportGen := report.NewGenerator(report.NewJSONFormatter(), report.NewFileWriter(s.config.ExportFile))
		if err := exportGen.Generate(result); err != nil {
			return fmt.Errorf("failed to export results: %w", err)
		}
		s.config.Log.Info("Results exported", "path", s.config.ExportFile)
	}
	return nil
}

// Result returns the result set of the completed run, nil before Run
// finishes.
func (s *Service) Result() *types.ResultSet {
	return s.result
}
