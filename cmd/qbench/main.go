package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/qsimbench/qbench"
	"github.com/qsimbench/qbench/exitcodes"
	"github.com/qsimbench/qbench/flags"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "qbench"
	app.Usage = "Quantum circuit simulator benchmark harness"
	app.Description = "qbench times a candidate circuit simulator against a trusted reference and verifies both produce the same final state vectors"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			// Use the exit code from the ExitCoder
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			// Check for typed runtime errors
			if qbench.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else if qbench.IsBenchFailureError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.BenchFailure))
			} else {
				// For other unspecified errors, default to exit code 1
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.BenchFailure))
			}
		}
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal("Application failed", "error", err)
	}
}

func run(ctx *cli.Context) error {
	level, err := log.ParseLevel(ctx.String(flags.LogLevel.Name))
	if err != nil {
		return qbench.NewRuntimeError(fmt.Errorf("invalid log level: %w", err))
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	log.SetDefault(logger)

	cfg, err := qbench.NewConfig(ctx, logger)
	if err != nil {
		// Wrap in RuntimeError to signal this should exit with code 2
		return qbench.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	svc, err := qbench.New(cfg, Version)
	if err != nil {
		// Wrap in RuntimeError to signal this should exit with code 2
		return qbench.NewRuntimeError(fmt.Errorf("failed to create service: %w", err))
	}

	runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return svc.Run(runCtx)
}
