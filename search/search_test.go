// SPDX-License-Identifier: MIT
package search_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/hailstorm/matrix"
	"github.com/katalvlaran/hailstorm/ray"
	"github.com/katalvlaran/hailstorm/search"
	"github.com/katalvlaran/hailstorm/velocity"
)

// forwardInput shares its first three rays with syntheticInput; the fourth is
// only hit by the rock at t = -2.
const forwardInput = `131, -56, 96 @ 5, -4, 1
175, -86, 69 @ -3, 2, 6
151, -131, 145 @ 1, 5, -2
138, -61, 86 @ 1, 1, 1
`

type FindSolutionSuite struct {
	suite.Suite
	ctx       context.Context
	sample    []ray.Ray
	synthetic []ray.Ray
}

func (s *FindSolutionSuite) SetupTest() {
	s.ctx = context.Background()
	s.sample = mustRays(s.T(), sampleInput)
	s.synthetic = mustRays(s.T(), syntheticInput)
}

func (s *FindSolutionSuite) requireSampleRock(sol *search.Solution) {
	s.Require().NotNil(sol)
	s.Equal(sampleVelocity, sol.Velocity)
	s.True(sol.Exact)
	s.Equal(sampleStart, sol.ExactStart)
	s.Equal(int64(47), sol.Answer())
	s.InDelta(24.0, sol.Start[0], 1e-6)
	s.InDelta(13.0, sol.Start[1], 1e-6)
	s.InDelta(10.0, sol.Start[2], 1e-6)
	s.True(search.Verify(sol.Unknowns(), sol.Velocity, sol.Sample, search.DefaultTolerance()))
}

func (s *FindSolutionSuite) TestSampleRange() {
	for _, seed := range []int64{0, 1, 2, 17, 99} {
		sol, err := search.FindSolution(s.ctx, s.sample, 3, smallBox(s.T()), search.WithSeed(seed))
		s.Require().NoError(err, "seed %d", seed)
		s.requireSampleRock(sol)
		s.Len(sol.Sample, 3)
		s.Len(sol.Times, 3)
	}
}

func (s *FindSolutionSuite) TestSampleShell() {
	sol, err := search.FindSolution(s.ctx, s.sample, 3, velocity.NewShell(1), search.WithSeed(4))
	s.Require().NoError(err)
	s.requireSampleRock(sol)
}

func (s *FindSolutionSuite) TestSyntheticShell() {
	sol, err := search.FindSolution(s.ctx, s.synthetic, 4, velocity.NewShell(1), search.WithSeed(8))
	s.Require().NoError(err)
	s.Equal(syntheticVelocity, sol.Velocity)
	s.True(sol.Exact)
	s.Equal(syntheticStart, sol.ExactStart)
	s.Equal(int64(165), sol.Answer())
	s.Len(sol.Sample, 4)
}

func (s *FindSolutionSuite) TestSampleSizeSaturates() {
	sol, err := search.FindSolution(s.ctx, s.sample, 10, smallBox(s.T()))
	s.Require().NoError(err)
	s.requireSampleRock(sol)
	s.Len(sol.Sample, len(s.sample))
	s.ElementsMatch(s.sample, sol.Sample)
}

func (s *FindSolutionSuite) TestBudgetExhausted() {
	calls := 0
	sol, err := search.FindSolution(s.ctx, s.sample, 3, velocity.NewShell(1),
		search.WithMaxCandidates(5),
		search.WithOnAttempt(func(search.Attempt) { calls++ }))
	s.Nil(sol)
	s.ErrorIs(err, search.ErrNoSolution)
	s.Equal(5, calls)
}

func (s *FindSolutionSuite) TestRangeExhausted() {
	r, err := velocity.NewRange(ray.NewVector3(0, 0, 0), ray.NewVector3(1, 1, 1))
	s.Require().NoError(err)
	_, err = search.FindSolution(s.ctx, s.sample, 3, r)
	s.ErrorIs(err, search.ErrNoSolution)
}

func (s *FindSolutionSuite) TestCancelledBeforeStart() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	calls := 0
	_, err := search.FindSolution(ctx, s.sample, 3, smallBox(s.T()),
		search.WithOnAttempt(func(search.Attempt) { calls++ }))
	s.ErrorIs(err, context.Canceled)
	s.Zero(calls)
}

func (s *FindSolutionSuite) TestCancelledDuringSearch() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	calls := 0
	_, err := search.FindSolution(ctx, s.sample, 3, smallBox(s.T()),
		search.WithOnAttempt(func(a search.Attempt) {
			calls++
			if a.Index == 3 {
				cancel()
			}
		}))
	s.ErrorIs(err, context.Canceled)
	s.Equal(3, calls)
}

func (s *FindSolutionSuite) TestValidation() {
	box := smallBox(s.T())

	_, err := search.FindSolution(s.ctx, nil, 3, box)
	s.ErrorIs(err, search.ErrNoRays)

	_, err = search.FindSolution(s.ctx, s.sample, 1, box)
	s.ErrorIs(err, search.ErrUnderdetermined)

	_, err = search.FindSolution(s.ctx, s.sample[:1], 3, box)
	s.ErrorIs(err, search.ErrUnderdetermined)

	_, err = search.FindSolution(s.ctx, s.sample, 3, nil)
	s.ErrorIs(err, search.ErrNilEnumerator)

	_, err = search.FindSolution(s.ctx, s.sample, 3, box, search.WithMaxCandidates(-1))
	s.ErrorIs(err, search.ErrOptionViolation)

	_, err = search.FindSolution(s.ctx, s.sample, 3, box, search.WithTolerance(search.Tolerance{RTol: -1}))
	s.ErrorIs(err, search.ErrOptionViolation)
}

func (s *FindSolutionSuite) TestAttemptHook() {
	var attempts []search.Attempt
	sol, err := search.FindSolution(s.ctx, s.sample, 3, smallBox(s.T()),
		search.WithOnAttempt(func(a search.Attempt) { attempts = append(attempts, a) }))
	s.Require().NoError(err)
	s.Require().Len(attempts, sol.Attempts)

	for i, a := range attempts {
		s.Equal(i+1, a.Index)
		s.Zero(a.Worker)
		s.Len(a.Sample, 3)
		s.NoError(a.Err)
		s.Equal(i == len(attempts)-1, a.Accepted)
	}
	last := attempts[len(attempts)-1]
	s.Equal(sampleVelocity, last.Velocity)
	for i, j := range last.Sample {
		s.Equal(s.sample[j], sol.Sample[i])
	}
}

func (s *FindSolutionSuite) TestSeedDeterminism() {
	run := func(opt search.Option) *search.Solution {
		sol, err := search.FindSolution(s.ctx, s.synthetic, 3, smallBox(s.T()), opt)
		s.Require().NoError(err)
		return sol
	}
	a, b := run(search.WithSeed(21)), run(search.WithSeed(21))
	s.Equal(a.Sample, b.Sample)
	s.Equal(a.Attempts, b.Attempts)

	c := run(search.WithRand(rand.New(rand.NewSource(21))))
	s.Equal(a.Sample, c.Sample, "WithRand(NewSource(seed)) matches WithSeed(seed)")
}

func (s *FindSolutionSuite) TestRequireForwardTime() {
	rays := mustRays(s.T(), forwardInput)

	sol, err := search.FindSolution(s.ctx, rays, 4, smallBox(s.T()))
	s.Require().NoError(err)
	s.Equal(syntheticVelocity, sol.Velocity)
	s.Equal(syntheticStart, sol.ExactStart)
	for i, r := range sol.Sample {
		if r == rays[3] {
			s.InDelta(-2.0, sol.Times[i], 1e-6)
		}
	}

	_, err = search.FindSolution(s.ctx, rays, 4, smallBox(s.T()), search.WithRequireForwardTime(true))
	s.ErrorIs(err, search.ErrNoSolution)
}

func (s *FindSolutionSuite) requirePuzzleRock(sol *search.Solution) {
	s.Require().NotNil(sol)
	s.Equal(puzzleVelocity, sol.Velocity)
	s.True(sol.Exact)
	s.Equal(puzzleStart, sol.ExactStart)
	s.Equal(int64(puzzleAnswer), sol.Answer())
}

func (s *FindSolutionSuite) TestPuzzleScaleShell() {
	rays := mustRays(s.T(), puzzleInput)
	for _, seed := range []int64{0, 3, 11} {
		sol, err := search.FindSolution(s.ctx, rays, 5, velocity.NewShell(1),
			search.WithSeed(seed), search.WithRequireExact(true))
		s.Require().NoError(err, "seed %d", seed)
		s.requirePuzzleRock(sol)
		s.Len(sol.Sample, 5)
	}
}

// At 1e14 the 1e-3 relative band lets -3, 3, 2 verify against every ray;
// only the integer snap tells it apart from -3, 4, 2.
func (s *FindSolutionSuite) TestRequireExact() {
	rays := mustRays(s.T(), puzzleInput)

	loose, err := search.FindSolution(s.ctx, rays, len(rays), velocity.NewShell(1))
	s.Require().NoError(err)
	s.NotEqual(puzzleVelocity, loose.Velocity)
	s.False(loose.Exact)
	s.Less(loose.Velocity.ChebyshevNorm(), puzzleVelocity.ChebyshevNorm())

	var rejected int
	sol, err := search.FindSolution(s.ctx, rays, len(rays), velocity.NewShell(1),
		search.WithRequireExact(true),
		search.WithOnAttempt(func(a search.Attempt) {
			if a.Velocity == loose.Velocity {
				s.False(a.Accepted)
				rejected++
			}
		}))
	s.Require().NoError(err)
	s.requirePuzzleRock(sol)
	s.Equal(1, rejected)
}

func (s *FindSolutionSuite) TestGeneratedPuzzleScale() {
	for _, seed := range []int64{1, 2} {
		rays := generateRays(300, seed, puzzleStart, puzzleVelocity)
		sol, err := search.FindSolution(s.ctx, rays, len(rays), velocity.NewShell(1), search.WithRequireExact(true))
		s.Require().NoError(err, "seed %d", seed)
		s.requirePuzzleRock(sol)
		s.Len(sol.Times, 300)
	}
}

func (s *FindSolutionSuite) TestMatrixOptionsForwarded() {
	sol, err := search.FindSolution(s.ctx, s.sample, 3, smallBox(s.T()),
		search.WithMatrixOptions(matrix.WithRefineSteps(0), matrix.WithEpsilon(1e-12)))
	s.Require().NoError(err)
	s.requireSampleRock(sol)
}

func (s *FindSolutionSuite) TestLogsVerifiedSolution() {
	core, logs := observer.New(zapcore.InfoLevel)
	_, err := search.FindSolution(s.ctx, s.sample, 3, smallBox(s.T()), search.WithLogger(zap.New(core)))
	s.Require().NoError(err)

	entries := logs.FilterMessage("solution verified").All()
	s.Require().Len(entries, 1)
	fields := entries[0].ContextMap()
	s.Equal(int64(0), fields["worker"])
	s.Equal(true, fields["exact"])
	s.Equal("-3, 1, 2", fields["velocity"])
	s.Equal("24, 13, 10", fields["start"])
	s.Zero(logs.FilterMessage("candidate evaluated").Len(), "debug records filtered at info")
}

func TestFindSolutionSuite(t *testing.T) {
	suite.Run(t, new(FindSolutionSuite))
}

func TestFindSolutionDebugLogging(t *testing.T) {
	rays := mustRays(t, sampleInput)
	_, err := search.FindSolution(context.Background(), rays, 3, smallBox(t),
		search.WithLogger(zaptest.NewLogger(t, zaptest.Level(zapcore.DebugLevel))))
	require.NoError(t, err)
}

func TestSolutionErrorsAreDistinct(t *testing.T) {
	all := []error{search.ErrNoRays, search.ErrUnderdetermined, search.ErrNilEnumerator,
		search.ErrNoSolution, search.ErrOptionViolation}
	for i := range all {
		for j := range all {
			if i != j {
				require.False(t, errors.Is(all[i], all[j]))
			}
		}
	}
}
