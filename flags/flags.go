package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/qsimbench/qbench/compare"
)

const EnvVarPrefix = "QBENCH"

// prefixEnvVars adds the application prefix to the environment variable name.
func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	CircuitDir = &cli.StringFlag{
		Name:     "circuits",
		Value:    "",
		Required: true,
		EnvVars:  prefixEnvVars("CIRCUITS"),
		Usage:    "Path to the directory from which to discover benchmark circuits",
	}
	Extension = &cli.StringFlag{
		Name:    "extension",
		Value:   ".qasm",
		EnvVars: prefixEnvVars("EXTENSION"),
		Usage:   "Filename extension that marks a circuit file (case-insensitive)",
	}
	Repetitions = &cli.IntFlag{
		Name:    "repetitions",
		Value:   10,
		EnvVars: prefixEnvVars("REPETITIONS"),
		Usage:   "Timed simulation runs per circuit and engine; the median is reported",
	}
	Atol = &cli.Float64Flag{
		Name:    "atol",
		Value:   compare.DefaultAtol,
		EnvVars: prefixEnvVars("ATOL"),
		Usage:   "Absolute tolerance for amplitude comparison",
	}
	Rtol = &cli.Float64Flag{
		Name:    "rtol",
		Value:   compare.DefaultRtol,
		EnvVars: prefixEnvVars("RTOL"),
		Usage:   "Relative tolerance for amplitude comparison",
	}
	PlotFile = &cli.StringFlag{
		Name:    "plot",
		Value:   "qbench.png",
		EnvVars: prefixEnvVars("PLOT"),
		Usage:   "Path for the duration-versus-qubits plot image",
	}
	ExportFile = &cli.StringFlag{
		Name:    "export",
		Value:   "",
		EnvVars: prefixEnvVars("EXPORT"),
		Usage:   "Optional path for a JSON export of the result set",
	}
	Title = &cli.StringFlag{
		Name:    "title",
		Value:   "Simulator comparison",
		EnvVars: prefixEnvVars("TITLE"),
		Usage:   "Title used for the report table and plot",
	}
	CandidateCmd = &cli.StringFlag{
		Name:    "candidate-cmd",
		Value:   "",
		EnvVars: prefixEnvVars("CANDIDATE_CMD"),
		Usage:   "External candidate simulator command; receives the circuit path as its final argument. Empty selects the built-in bitwise engine.",
	}
	ReferenceCmd = &cli.StringFlag{
		Name:    "reference-cmd",
		Value:   "",
		EnvVars: prefixEnvVars("REFERENCE_CMD"),
		Usage:   "External reference simulator command; receives the circuit source on stdin. Empty selects the built-in unitary engine.",
	}
	CaseTimeout = &cli.DurationFlag{
		Name:    "case-timeout",
		Value:   0,
		EnvVars: prefixEnvVars("CASE_TIMEOUT"),
		Usage:   "Per-circuit time limit (e.g. '30s'). Set to 0 or omit for no limit.",
	}
	Parallel = &cli.IntFlag{
		Name:    "parallel",
		Value:   1,
		EnvVars: prefixEnvVars("PARALLEL"),
		Usage:   "Number of circuits benchmarked concurrently. Values above 1 trade timing fidelity for throughput.",
	}
	FailOnMismatch = &cli.BoolFlag{
		Name:    "fail-on-mismatch",
		Value:   true,
		EnvVars: prefixEnvVars("FAIL_ON_MISMATCH"),
		Usage:   "Exit non-zero when any circuit's verdict is a mismatch",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Log level (debug, info, warn, error)",
	}
)

var requiredFlags = []cli.Flag{
	CircuitDir,
}

var optionalFlags = []cli.Flag{
	Extension,
	Repetitions,
	Atol,
	Rtol,
	PlotFile,
	ExportFile,
	Title,
	CandidateCmd,
	ReferenceCmd,
	CaseTimeout,
	Parallel,
	FailOnMismatch,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
