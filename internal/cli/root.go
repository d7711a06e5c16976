// SPDX-License-Identifier: MIT

// Package cli implements the hailstorm command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/hailstorm/config"
	"github.com/katalvlaran/hailstorm/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Format     string // "json" | "text"

	newRunID func() string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the hailstorm CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{newRunID: uuid.NewString})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hailstorm",
		Short: "hailstorm - find the rock that hits every hailstone",
		Long: `Search integer rock velocities, solve for the start position and the
collision times by least squares, and verify the result against the hailstones.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewCrossingsCommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code. Errors
// already reported by a command are not printed twice.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, NewRootCommand(), args, stdout, stderr)
}

func execute(ctx context.Context, cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return GetExitCode(err)
}

// session is the per-invocation state shared by the subcommands.
type session struct {
	cfg   config.Config
	out   *OutputFormatter
	log   *zap.Logger
	runID string
}

// newSession loads the config file, applies the global flags and builds the
// formatter and the logger. The formatter is usable even when an error is
// returned.
func (o *RootOptions) newSession(cmd *cobra.Command) (*session, error) {
	s := &session{runID: o.newRunID()}
	s.out = &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		TraceID:   s.runID,
	}

	s.cfg = config.Default()
	if o.ConfigPath != "" {
		cfg, err := config.LoadFile(o.ConfigPath)
		if err != nil {
			return s, s.out.fail(ExitCommandError, ErrCodeConfig, err)
		}
		s.cfg = cfg
	}
	if cmd.Flags().Changed("log-level") {
		s.cfg.LogLevel = o.LogLevel
	}

	log, err := logging.New(s.cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return s, s.out.fail(ExitCommandError, ErrCodeFlag, err)
	}
	s.log = log.With(zap.String("run_id", s.runID), zap.String("command", cmd.Name()))

	return s, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
