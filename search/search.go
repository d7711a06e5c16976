// SPDX-License-Identifier: MIT

package search

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/hailstorm/ray"
	"github.com/katalvlaran/hailstorm/velocity"
)

// FindSolution runs the sample-solve-verify loop over candidates until one
// verifies.
//
// Contracts:
//   - rays must be non-empty (ErrNoRays).
//   - sampleSize ≥ 2 (ErrUnderdetermined); it saturates to len(rays), which
//     must itself be ≥ 2.
//   - candidates must be non-nil (ErrNilEnumerator). The loop consumes it;
//     the cursor is left after the last candidate tried.
//
// Per candidate: ctx is checked, a uniform sample of distinct rays is drawn,
// the system is solved and verified. Solver errors count as rejections and
// are logged at debug level. Exhaustion returns ErrNoSolution.
//
// Complexity: O(attempts · k) while the Schur complement stays full rank.
func FindSolution(ctx context.Context, rays []ray.Ray, sampleSize int, candidates velocity.Enumerator, opts ...Option) (*Solution, error) {
	o := gatherOptions(opts...)
	if o.err != nil {
		return nil, o.err
	}
	k, err := effectiveSampleSize(rays, sampleSize)
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		return nil, ErrNilEnumerator
	}
	if o.MaxCandidates > 0 {
		candidates = velocity.Limit(candidates, o.MaxCandidates)
	}

	return newLoop(0, rays, k, candidates, o.rng(), &o).run(ctx)
}

// effectiveSampleSize validates the sample size and saturates it to len(rays).
func effectiveSampleSize(rays []ray.Ray, sampleSize int) (int, error) {
	if len(rays) == 0 {
		return 0, ErrNoRays
	}
	if sampleSize < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrUnderdetermined, sampleSize)
	}
	k := min(sampleSize, len(rays))
	if k < 2 {
		return 0, fmt.Errorf("%w: only %d ray available", ErrUnderdetermined, k)
	}

	return k, nil
}

// loop is the state of one search loop: its candidate cursor and its RNG.
// It is not safe for concurrent use.
type loop struct {
	worker     int
	rays       []ray.Ray
	k          int
	candidates velocity.Enumerator
	sampler    *sampler
	opts       *Options
	log        *zap.Logger
}

func (l *loop) run(ctx context.Context) (*Solution, error) {
	var (
		attempt  int
		cand     ray.Vector3
		ok       bool
		unknowns []float64
		err      error
	)
	for {
		if err = ctx.Err(); err != nil {
			l.log.Info("search cancelled", zap.Int("attempts", attempt), zap.Error(err))
			return nil, fmt.Errorf("search: %w", err)
		}
		if cand, ok = l.candidates.Next(); !ok {
			l.log.Info("candidates exhausted", zap.Int("attempts", attempt))
			return nil, ErrNoSolution
		}
		attempt++

		idx := l.sampler.draw(l.k)
		sample := make([]ray.Ray, len(idx))
		for i, j := range idx {
			sample[i] = l.rays[j]
		}

		unknowns, err = ComputeFor(cand, sample, l.opts.MatrixOptions...)
		accepted := err == nil && l.accept(unknowns, cand, sample)
		if err != nil {
			l.log.Debug("solve failed", zap.Int("attempt", attempt), zap.Stringer("velocity", cand), zap.Error(err))
		} else {
			l.log.Debug("candidate evaluated", zap.Int("attempt", attempt), zap.Stringer("velocity", cand),
				zap.Ints("sample", idx), zap.Bool("accepted", accepted))
		}
		l.opts.OnAttempt(Attempt{
			Worker:   l.worker,
			Index:    attempt,
			Velocity: cand,
			Sample:   idx,
			Accepted: accepted,
			Err:      err,
		})
		if !accepted {
			continue
		}

		sol := newSolution(unknowns, cand, sample, attempt)
		l.log.Info("solution verified",
			zap.Int("attempts", attempt),
			zap.Stringer("velocity", cand),
			zap.Stringer("start", sol.ExactStart),
			zap.Bool("exact", sol.Exact))
		return sol, nil
	}
}

// accept applies Verify, the optional forward-time rule and, when required,
// the integer snap of Refine.
func (l *loop) accept(unknowns []float64, cand ray.Vector3, sample []ray.Ray) bool {
	if !Verify(unknowns, cand, sample, l.opts.Tolerance) {
		return false
	}
	if l.opts.RequireForwardTime && !forwardInTime(unknowns, l.opts.Tolerance.ATol) {
		return false
	}
	if l.opts.RequireExact {
		if _, exact := Refine(unknowns, cand, sample); !exact {
			l.log.Debug("verified but not exact", zap.Stringer("velocity", cand))
			return false
		}
	}

	return true
}

func newSolution(unknowns []float64, cand ray.Vector3, sample []ray.Ray, attempts int) *Solution {
	sol := &Solution{
		Start:    [3]float64{unknowns[0], unknowns[1], unknowns[2]},
		Velocity: cand,
		Times:    append([]float64(nil), unknowns[ray.Dimensions:]...),
		Sample:   sample,
		Attempts: attempts,
	}
	sol.ExactStart, sol.Exact = Refine(unknowns, cand, sample)

	return sol
}

// newLoop builds one isolated loop; FindSolution runs worker 0 alone.
func newLoop(worker int, rays []ray.Ray, k int, candidates velocity.Enumerator, rng *rand.Rand, o *Options) *loop {
	return &loop{
		worker:     worker,
		rays:       rays,
		k:          k,
		candidates: candidates,
		sampler:    newSampler(len(rays), rng),
		opts:       o,
		log:        o.Logger.With(zap.Int("worker", worker)),
	}
}
