// SPDX-License-Identifier: MIT

package search

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/hailstorm/matrix"
)

// Option configures the search via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when the
// search is invoked.
type Option func(*Options)

// Options holds parameters and callbacks that customize a search.
type Options struct {
	// Tolerance is the verifier closeness rule.
	Tolerance Tolerance

	// Seed seeds the sampling RNG when Rand is nil (0 ⇒ defaultRNGSeed).
	Seed int64

	// Rand, when set, is used for sampling instead of a seeded source.
	// It is consumed by a single loop and must not be shared across goroutines.
	Rand *rand.Rand

	// MaxCandidates, if > 0, bounds the number of candidates drawn.
	MaxCandidates int

	// Logger receives per-attempt debug and final info records.
	Logger *zap.Logger

	// OnAttempt is called after every candidate evaluation. In
	// FindSolutionParallel it is called from several goroutines.
	OnAttempt func(Attempt)

	// RequireForwardTime also rejects solutions with a collision time < −ATol.
	RequireForwardTime bool

	// RequireExact also rejects solutions whose rounded times do not agree on
	// one integer start (see Refine).
	RequireExact bool

	// MatrixOptions are forwarded to matrix.LeastSquares.
	MatrixOptions []matrix.Option

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults:
//   - DefaultTolerance()
//   - seed 0 (fixed default stream), no explicit Rand
//   - no candidate budget
//   - zap.NewNop() logger and a no-op OnAttempt hook
//   - forward-time and exactness checks off
func DefaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance(),
		Logger:    zap.NewNop(),
		OnAttempt: func(Attempt) {},
	}
}

// WithTolerance sets the verifier tolerance. Negative, NaN or infinite
// components are recorded as ErrOptionViolation.
func WithTolerance(tol Tolerance) Option {
	return func(o *Options) {
		if !tol.valid() {
			o.err = fmt.Errorf("%w: tolerance must be finite and non-negative (rtol=%v, atol=%v)",
				ErrOptionViolation, tol.RTol, tol.ATol)
			return
		}
		o.Tolerance = tol
	}
}

// WithSeed sets the seed of the sampling RNG.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithRand supplies the sampling RNG directly; nil is ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithMaxCandidates bounds the number of candidate velocities tried.
//
//	n > 0:  at most n candidates, then ErrNoSolution
//	n == 0: explicit no budget
//	n < 0:  invalid option → ErrOptionViolation
func WithMaxCandidates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxCandidates cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxCandidates = n
	}
}

// WithLogger sets the logger; nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnAttempt registers a callback run after every candidate evaluation.
func WithOnAttempt(fn func(Attempt)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnAttempt = fn
		}
	}
}

// WithRequireForwardTime toggles rejection of negative collision times.
func WithRequireForwardTime(on bool) Option {
	return func(o *Options) { o.RequireForwardTime = on }
}

// WithRequireExact toggles rejection of verified solutions that Refine cannot
// snap to a single integer start. At puzzle scale the float verifier alone
// accepts nearby wrong velocities, so callers that need the integer answer
// should turn it on.
func WithRequireExact(on bool) Option {
	return func(o *Options) { o.RequireExact = on }
}

// WithMatrixOptions forwards numeric options to the least-squares solver.
func WithMatrixOptions(opts ...matrix.Option) Option {
	return func(o *Options) {
		o.MatrixOptions = append(o.MatrixOptions, opts...)
	}
}

// gatherOptions applies opts over DefaultOptions in order.
func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// rng returns the sampling source selected by the options.
func (o *Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}

	return rngFromSeed(o.Seed)
}
