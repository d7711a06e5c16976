// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves setters against defaults.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Tolerances used by LeastSquares are relative: the Jacobi threshold is
//     eps·max(1, ‖AᵀA‖_F) and the rank cutoff is rankTol·λmax. This keeps the
//     same defaults usable for coordinates near zero and near 1e15.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the relative off-diagonal threshold at which the
	// Jacobi sweep in LeastSquares is considered converged.
	DefaultEpsilon = 1e-13

	// DefaultRankTolerance is the relative cutoff below which an eigenvalue of
	// AᵀA is treated as zero, i.e. its direction is dropped from the
	// pseudo-inverse.
	DefaultRankTolerance = 1e-12

	// DefaultMaxIterations selects the automatic Jacobi rotation cap
	// (max(minAutoIterations, autoIterationsPerCell·n²)) when zero.
	DefaultMaxIterations = 0

	// DefaultRefineSteps is the number of iterative-refinement rounds applied
	// by LeastSquares after the first pseudo-inverse solve.
	DefaultRefineSteps = 2

	// DefaultValidateNaNInf toggles strict finite-value validation on inputs.
	DefaultValidateNaNInf = true
)

const (
	autoIterationsPerCell = 50
	minAutoIterations     = 100
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, positive"
	panicRankTolInvalid = "matrix: WithRankTolerance: tol must be finite, in [0, 1)"
	panicMaxIterInvalid = "matrix: WithMaxIterations: n must be >= 0"
	panicRefineInvalid  = "matrix: WithRefineSteps: n must be >= 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option and resolve
// them via gatherOptions.
type Options struct {
	eps            float64 // > 0; DefaultEpsilon
	rankTol        float64 // [0,1); DefaultRankTolerance
	maxIter        int     // >= 0; 0 = automatic
	refineSteps    int     // >= 0; DefaultRefineSteps
	validateNaNInf bool    // DefaultValidateNaNInf
}

// WithEpsilon sets the relative Jacobi convergence threshold.
// Implementation:
//   - Stage 1: validate eps is finite and > 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
//
// AI-Hints:
//   - Values between 1e-15 and 1e-10 are sensible for float64 data.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps <= 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithRankTolerance sets the relative eigenvalue cutoff used to detect rank
// deficiency. Zero keeps every non-zero eigenvalue.
// Panics when tol is non-finite, negative or ≥ 1.
func WithRankTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 || tol >= 1 {
		panic(panicRankTolInvalid)
	}

	return func(o *Options) { o.rankTol = tol }
}

// WithMaxIterations caps the number of Jacobi rotations; 0 restores the
// automatic cap. Panics when n is negative.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = n }
}

// WithRefineSteps sets how many residual-correction rounds LeastSquares runs.
// Each round solves A·δ ≈ b − A·x with the same pseudo-inverse and adds δ.
// Zero returns the plain normal-equation solution. Panics when n is negative.
func WithRefineSteps(n int) Option {
	if n < 0 {
		panic(panicRefineInvalid)
	}

	return func(o *Options) { o.refineSteps = n }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation (use with care).
// Non-finite inputs then propagate into the result instead of failing fast.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// NewMatrixOptions resolves option setters against documented defaults.
// Intended for callers that want to inspect the effective configuration.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon returns the effective relative Jacobi threshold.
func (o Options) Epsilon() float64 { return o.eps }

// RankTolerance returns the effective relative rank cutoff.
func (o Options) RankTolerance() float64 { return o.rankTol }

// MaxIterations returns the configured rotation cap (0 = automatic).
func (o Options) MaxIterations() int { return o.maxIter }

// RefineSteps returns the configured number of refinement rounds.
func (o Options) RefineSteps() int { return o.refineSteps }

// ValidateNaNInf reports whether non-finite inputs are rejected.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		rankTol:        DefaultRankTolerance,
		maxIter:        DefaultMaxIterations,
		refineSteps:    DefaultRefineSteps,
		validateNaNInf: DefaultValidateNaNInf,
	}
}

// gatherOptions applies opts in order over the defaults; last writer wins.
// Complexity: O(k) for k = len(opts).
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// iterationCap resolves the rotation cap for an n×n system.
func (o Options) iterationCap(n int) int {
	if o.maxIter > 0 {
		return o.maxIter
	}

	return max(minAutoIterations, autoIterationsPerCell*n*n)
}

// isNonFinite reports whether x is NaN or ±Inf.
func isNonFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
