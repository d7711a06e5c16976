// SPDX-License-Identifier: MIT

package search

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hailstorm/ray"
	"github.com/katalvlaran/hailstorm/velocity"
)

// errSolved cancels the sibling workers once one of them has a solution.
var errSolved = errors.New("search: solved")

// FindSolutionParallel races workers independent search loops and returns
// the first verified solution.
//
// Each worker gets:
//   - its own RNG, derived from the configured seed/Rand with deriveRNG;
//   - its own enumerator from newEnumerator, strided so that worker w tries
//     candidates w, w+W, w+2W, … of the shared sequence.
//
// Together the workers cover the sequence exactly once. WithMaxCandidates
// bounds the shared sequence, not each worker. The first success cancels the
// others; when every worker runs dry the result is ErrNoSolution. For
// workers ≤ 1 this is FindSolution(ctx, rays, sampleSize, newEnumerator(), opts...).
//
// The OnAttempt hook is invoked concurrently and must be safe for that.
func FindSolutionParallel(ctx context.Context, rays []ray.Ray, sampleSize, workers int, newEnumerator func() velocity.Enumerator, opts ...Option) (*Solution, error) {
	if newEnumerator == nil {
		return nil, ErrNilEnumerator
	}
	if workers <= 1 {
		return FindSolution(ctx, rays, sampleSize, newEnumerator(), opts...)
	}

	o := gatherOptions(opts...)
	if o.err != nil {
		return nil, o.err
	}
	k, err := effectiveSampleSize(rays, sampleSize)
	if err != nil {
		return nil, err
	}

	// Build every worker before starting any: the base RNG is consumed here,
	// sequentially, and never shared afterwards.
	base := o.rng()
	loops := make([]*loop, workers)
	for w := range loops {
		e := newEnumerator()
		if e == nil {
			return nil, ErrNilEnumerator
		}
		if o.MaxCandidates > 0 {
			e = velocity.Limit(e, o.MaxCandidates)
		}
		loops[w] = newLoop(w, rays, k, velocity.Stride(e, w, workers), deriveRNG(base, uint64(w)), &o)
	}
	o.Logger.Debug("parallel search started", zap.Int("workers", workers), zap.Int("sample", k))

	var (
		mu     sync.Mutex
		winner *Solution
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, l := range loops {
		g.Go(func() error {
			sol, err := l.run(gctx)
			switch {
			case err == nil:
				mu.Lock()
				if winner == nil {
					winner = sol
				}
				mu.Unlock()
				return errSolved
			case errors.Is(err, ErrNoSolution):
				return nil
			default:
				return err
			}
		})
	}
	err = g.Wait()

	if winner != nil {
		return winner, nil
	}
	if err != nil {
		return nil, err
	}

	return nil, ErrNoSolution
}
