// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/hailstorm/ray"
)

// CrossingsResult is the payload of a successful crossings count.
type CrossingsResult struct {
	Count int        `json:"count"`
	Area  areaResult `json:"area"`
}

type areaResult struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

func (r CrossingsResult) String() string {
	return fmt.Sprintf("Crossings: %d", r.Count)
}

// NewCrossingsCommand creates the crossings command.
func NewCrossingsCommand(rootOpts *RootOptions) *cobra.Command {
	var lo, hi int64
	cmd := &cobra.Command{
		Use:   "crossings [input]",
		Short: "Count hailstone pairs whose XY paths cross inside the test area",
		Long: `Count unordered pairs of hailstones whose paths, ignoring Z, cross in the
future of both hailstones inside the square [min, max] x [min, max].`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrossings(rootOpts, cmd, args, lo, hi)
		},
	}

	cmd.Flags().Int64Var(&lo, "min", 0, "lower bound of the test area (default from config)")
	cmd.Flags().Int64Var(&hi, "max", 0, "upper bound of the test area (default from config)")

	return cmd
}

func runCrossings(opts *RootOptions, cmd *cobra.Command, args []string, lo, hi int64) error {
	s, err := opts.newSession(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		s.cfg.Input = args[0]
	}
	if cmd.Flags().Changed("min") {
		s.cfg.Area.Min = lo
	}
	if cmd.Flags().Changed("max") {
		s.cfg.Area.Max = hi
	}
	if err = s.cfg.Validate(); err != nil {
		return s.out.fail(ExitCommandError, ErrCodeConfig, err)
	}
	if s.cfg.Input == "" {
		return s.out.fail(ExitCommandError, ErrCodeFlag, errors.New("no input file: pass it as an argument or set input in the config"))
	}

	rays, err := ray.ReadFile(s.cfg.Input)
	if err != nil {
		return s.out.fail(ExitCommandError, ErrCodeInput, err)
	}
	area := ray.Area{Min: s.cfg.Area.Min, Max: s.cfg.Area.Max}
	count := ray.CountCrossingsXY(rays, area)
	s.log.Info("crossings counted", zap.Int("rays", len(rays)), zap.Int("count", count),
		zap.Int64("min", area.Min), zap.Int64("max", area.Max))

	return s.out.Success(CrossingsResult{Count: count, Area: areaResult{Min: area.Min, Max: area.Max}})
}
