package qbench

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/qsimbench/qbench/flags"
)

// buildConfig runs the CLI flag pipeline and NewConfig exactly as main does.
func buildConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()

	var cfg *Config
	var cfgErr error

	app := cli.NewApp()
	app.Name = "qbench"
	app.Flags = flags.Flags
	app.Action = func(ctx *cli.Context) error {
		cfg, cfgErr = NewConfig(ctx, log.New(io.Discard))
		return nil
	}

	if err := app.Run(append([]string{"qbench"}, args...)); err != nil {
		return nil, err
	}
	return cfg, cfgErr
}

func TestNewConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := buildConfig(t, "--circuits", dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, dir, cfg.CircuitDir)
	assert.Equal(t, ".qasm", cfg.Extension)
	assert.Equal(t, 10, cfg.Repetitions)
	assert.Equal(t, 1e-8, cfg.Atol)
	assert.Equal(t, 1e-5, cfg.Rtol)
	assert.Equal(t, "qbench.png", cfg.PlotFile)
	assert.Equal(t, "", cfg.ExportFile)
	assert.Equal(t, "", cfg.CandidateCmd)
	assert.Equal(t, "", cfg.ReferenceCmd)
	assert.Equal(t, time.Duration(0), cfg.CaseTimeout)
	assert.Equal(t, 1, cfg.Parallel)
	assert.True(t, cfg.FailOnMismatch)
	assert.NotNil(t, cfg.Log)
}

func TestNewConfigResolvesRelativeCircuitDir(t *testing.T) {
	cfg, err := buildConfig(t, "--circuits", "testdata/circuits")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.CircuitDir))
}

func TestNewConfigNormalizesExtension(t *testing.T) {
	cfg, err := buildConfig(t, "--circuits", t.TempDir(), "--extension", "qasm")
	require.NoError(t, err)
	assert.Equal(t, ".qasm", cfg.Extension)
}

func TestNewConfigRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{name: "zero repetitions", args: []string{"--circuits", dir, "--repetitions", "0"}},
		{name: "negative repetitions", args: []string{"--circuits", dir, "--repetitions", "-3"}},
		{name: "negative atol", args: []string{"--circuits", dir, "--atol", "-1e-8"}},
		{name: "negative rtol", args: []string{"--circuits", dir, "--rtol", "-1e-5"}},
		{name: "empty extension", args: []string{"--circuits", dir, "--extension", ""}},
		{name: "empty plot path", args: []string{"--circuits", dir, "--plot", ""}},
		{name: "negative case timeout", args: []string{"--circuits", dir, "--case-timeout", "-1s"}},
		{name: "zero parallelism", args: []string{"--circuits", dir, "--parallel", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := buildConfig(t, tt.args...)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestNewConfigRequiresCircuitDir(t *testing.T) {
	_, err := buildConfig(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuits")
}
