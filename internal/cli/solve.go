// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/hailstorm/config"
	"github.com/katalvlaran/hailstorm/ray"
	"github.com/katalvlaran/hailstorm/search"
	"github.com/katalvlaran/hailstorm/velocity"
)

// SolveResult is the payload of a successful solve.
type SolveResult struct {
	Start    [3]int64 `json:"start"`
	Velocity [3]int64 `json:"velocity"`
	Answer   int64    `json:"answer"`
	Exact    bool     `json:"exact"`
}

func (r SolveResult) String() string {
	return fmt.Sprintf("Start: %d, %d, %d\nVelocity: %d, %d, %d\nAnswer: %d",
		r.Start[0], r.Start[1], r.Start[2], r.Velocity[0], r.Velocity[1], r.Velocity[2], r.Answer)
}

// solveFlags are the solve-only flags. They override the config file only
// when set on the command line.
type solveFlags struct {
	sample        int
	seed          int64
	maxCandidates int
	workers       int
	maxSize       int
	rangeSpec     string
	forwardTime   bool
	requireExact  bool
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve [input] [start-size]",
		Short: "Find the rock ray that collides with every hailstone",
		Long: `Find the rock ray that collides with every hailstone.

Candidate velocities come from cube shells around the origin, starting at
start-size (default 1), or from the box given with --range. A shell of odd
side s holds the velocities with max(|x|,|y|,|z|) = (s-1)/2; an even
start-size is rounded up to the next odd one, so 2 starts at 3 and skips
the origin, and 0 is the same as 1.

For each candidate a random sample of hailstones (all of them by default)
is solved by least squares and the result verified. With --require-exact
(the default) a candidate is only accepted when every sampled collision
time rounds to one shared integer start. The input path may come from the
config file instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(rootOpts, flags, cmd, args)
		},
	}

	d := config.Default()
	cmd.Flags().IntVar(&flags.sample, "sample", d.SampleSize, "hailstones per sample (0 = all)")
	cmd.Flags().Int64Var(&flags.seed, "seed", d.Seed, "sampling seed")
	cmd.Flags().IntVar(&flags.maxCandidates, "max-candidates", d.MaxCandidates, "candidate budget (0 = none)")
	cmd.Flags().IntVar(&flags.workers, "workers", d.Workers, "parallel search loops")
	cmd.Flags().IntVar(&flags.maxSize, "max-size", d.MaxSize, "last shell size to try (0 = unbounded)")
	cmd.Flags().StringVar(&flags.rangeSpec, "range", "", "search the box minx,miny,minz,maxx,maxy,maxz")
	cmd.Flags().BoolVar(&flags.forwardTime, "forward-time", d.ForwardTime, "reject collisions in the past")
	cmd.Flags().BoolVar(&flags.requireExact, "require-exact", d.RequireExact, "reject solutions without a single integer start")

	return cmd
}

func runSolve(opts *RootOptions, flags *solveFlags, cmd *cobra.Command, args []string) error {
	s, err := opts.newSession(cmd)
	if err != nil {
		return err
	}
	if err = flags.apply(cmd, &s.cfg, args); err != nil {
		return s.out.fail(ExitCommandError, ErrCodeFlag, err)
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
	sampleSize := s.cfg.SampleSize
	if sampleSize == 0 {
		sampleSize = len(rays)
	}
	s.log.Info("solving",
		zap.String("input", s.cfg.Input),
		zap.Int("rays", len(rays)),
		zap.Int("sample", sampleSize),
		zap.Int("workers", s.cfg.Workers))

	sol, err := search.FindSolutionParallel(cmd.Context(), rays, sampleSize, s.cfg.Workers, enumeratorFactory(s.cfg),
		search.WithSeed(s.cfg.Seed),
		search.WithMaxCandidates(s.cfg.MaxCandidates),
		search.WithTolerance(search.Tolerance{RTol: s.cfg.RTol, ATol: s.cfg.ATol}),
		search.WithRequireForwardTime(s.cfg.ForwardTime),
		search.WithRequireExact(s.cfg.RequireExact),
		search.WithLogger(s.log))
	switch {
	case errors.Is(err, search.ErrNoSolution):
		return s.out.fail(ExitFailure, ErrCodeNoSolution, err)
	case errors.Is(err, search.ErrUnderdetermined), errors.Is(err, search.ErrNoRays):
		return s.out.fail(ExitCommandError, ErrCodeInput, err)
	case err != nil:
		return s.out.fail(ExitCommandError, ErrCodeGeneric, err)
	}
	if !sol.Exact {
		s.log.Warn("start is not exact; rounded from the least-squares solution",
			zap.Float64s("start", sol.Start[:]))
	}

	return s.out.Success(SolveResult{
		Start:    sol.ExactStart.Coords(),
		Velocity: sol.Velocity.Coords(),
		Answer:   sol.Answer(),
		Exact:    sol.Exact,
	})
}

// apply copies the positional arguments and every changed flag into cfg.
func (f *solveFlags) apply(cmd *cobra.Command, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if len(args) > 1 {
		size, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("start-size %q: %w", args[1], err)
		}
		cfg.StartSize = size
	}

	set := cmd.Flags().Changed
	if set("sample") {
		cfg.SampleSize = f.sample
	}
	if set("seed") {
		cfg.Seed = f.seed
	}
	if set("max-candidates") {
		cfg.MaxCandidates = f.maxCandidates
	}
	if set("workers") {
		cfg.Workers = f.workers
	}
	if set("max-size") {
		cfg.MaxSize = f.maxSize
	}
	if set("forward-time") {
		cfg.ForwardTime = f.forwardTime
	}
	if set("require-exact") {
		cfg.RequireExact = f.requireExact
	}
	if set("range") {
		r, err := parseRange(f.rangeSpec)
		if err != nil {
			return err
		}
		cfg.Range = r
	}

	return nil
}

// parseRange parses "minx,miny,minz,maxx,maxy,maxz".
func parseRange(spec string) (*config.Range, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 6 {
		return nil, fmt.Errorf("range %q: want 6 comma-separated integers, got %d", spec, len(parts))
	}
	var vals [6]int64
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", spec, err)
		}
		vals[i] = v
	}

	return &config.Range{
		Min: [3]int64{vals[0], vals[1], vals[2]},
		Max: [3]int64{vals[3], vals[4], vals[5]},
	}, nil
}

// enumeratorFactory returns a constructor of fresh candidate cursors for cfg:
// the range box when one is configured, otherwise (bounded) cube shells.
func enumeratorFactory(cfg config.Config) func() velocity.Enumerator {
	if cfg.Range != nil {
		lo := ray.NewVector3(cfg.Range.Min[0], cfg.Range.Min[1], cfg.Range.Min[2])
		hi := ray.NewVector3(cfg.Range.Max[0], cfg.Range.Max[1], cfg.Range.Max[2])
		return func() velocity.Enumerator {
			r, err := velocity.NewRange(lo, hi)
			if err != nil {
				return nil
			}
			return r
		}
	}

	return func() velocity.Enumerator {
		return velocity.NewBoundedShell(cfg.StartSize, cfg.MaxSize)
	}
}
