package qbench

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/qsimbench/qbench/flags"
)

// Config holds the application configuration
type Config struct {
	CircuitDir     string        // Directory scanned for circuit files
	Extension      string        // Extension that marks a circuit file, including the dot
	Repetitions    int           // Timed runs per circuit and engine
	Atol           float64       // Absolute comparison tolerance
	Rtol           float64       // Relative comparison tolerance
	PlotFile       string        // Output path for the comparison plot
	ExportFile     string        // Optional output path for the JSON export
	Title          string        // Title shared by the table and the plot
	CandidateCmd   string        // External candidate command; empty selects the built-in engine
	ReferenceCmd   string        // External reference command; empty selects the built-in engine
	CaseTimeout    time.Duration // Per-circuit time limit, 0 for none
	Parallel       int           // Circuits benchmarked concurrently
	FailOnMismatch bool          // Exit non-zero when a circuit mismatches
	Log            *log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger *log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	circuitDir := ctx.String(flags.CircuitDir.Name)
	if circuitDir == "" {
		return nil, errors.New("circuit directory is required")
	}
	absCircuitDir, err := filepath.Abs(circuitDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for circuit directory '%s': %w", circuitDir, err)
	}

	extension := ctx.String(flags.Extension.Name)
	if extension == "" {
		return nil, errors.New("circuit extension must not be empty")
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	repetitions := ctx.Int(flags.Repetitions.Name)
	if repetitions < 1 {
		return nil, fmt.Errorf("repetitions must be at least 1, got %d", repetitions)
	}

	atol := ctx.Float64(flags.Atol.Name)
	rtol := ctx.Float64(flags.Rtol.Name)
	if atol < 0 || rtol < 0 {
		return nil, fmt.Errorf("tolerances must be non-negative, got atol=%g rtol=%g", atol, rtol)
	}

	plotFile := ctx.String(flags.PlotFile.Name)
	if plotFile == "" {
		return nil, errors.New("plot path must not be empty")
	}

	caseTimeout := ctx.Duration(flags.CaseTimeout.Name)
	if caseTimeout < 0 {
		return nil, fmt.Errorf("case timeout must not be negative, got %s", caseTimeout)
	}

	parallel := ctx.Int(flags.Parallel.Name)
	if parallel < 1 {
		return nil, fmt.Errorf("parallelism must be at least 1, got %d", parallel)
	}

	return &Config{
		CircuitDir:     absCircuitDir,
		Extension:      extension,
		Repetitions:    repetitions,
		Atol:           atol,
		Rtol:           rtol,
		PlotFile:       plotFile,
		ExportFile:     ctx.String(flags.ExportFile.Name),
		Title:          ctx.String(flags.Title.Name),
		CandidateCmd:   ctx.String(flags.CandidateCmd.Name),
		ReferenceCmd:   ctx.String(flags.ReferenceCmd.Name),
		CaseTimeout:    caseTimeout,
		Parallel:       parallel,
		FailOnMismatch: ctx.Bool(flags.FailOnMismatch.Name),
		Log:            logger,
	}, nil
}
