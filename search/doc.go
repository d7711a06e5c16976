// SPDX-License-Identifier: MIT

// Package search recovers the rock ray that meets every hailstone.
//
// Given N rays (integer start, integer constant velocity), the package looks
// for one ray (start s, velocity v) such that every input ray i is hit at
// some time tᵢ:
//
//	s + tᵢ·v = pᵢ + tᵢ·vᵢ   ⇔   s + tᵢ·(v − vᵢ) = pᵢ
//
// For a fixed candidate v these are 3k linear equations in the 3+k unknowns
// (s, t₀ … t_{k−1}) of a k-ray sample. The search loop therefore:
//
//  1. draws the next candidate velocity from a velocity.Enumerator,
//  2. draws a uniform random sample of k distinct rays,
//  3. solves the 3k × (3+k) system in the least-squares sense (ComputeFor,
//     which eliminates the times and falls back to NewSystem + Solve when the
//     start is underdetermined),
//  4. verifies every equation with a relative+absolute tolerance (Verify),
//
// and stops at the first verified candidate. A verified solution is then
// snapped to integers (Refine). At puzzle scale the relative tolerance is
// loose enough for neighbouring wrong velocities to verify; WithRequireExact
// makes the integer snap part of acceptance.
//
// Entry points:
//
//   - FindSolution: single-threaded loop; deterministic for a given seed.
//   - FindSolutionParallel: W independent loops racing under errgroup, each
//     with its own derived RNG stream and a strided share of the candidates.
//
// Options:
//
//   - WithTolerance(tol):            verifier closeness (default rtol=atol=1e-3).
//   - WithSeed(seed) / WithRand(r):  sampling randomness (seed 0 ⇒ fixed default).
//   - WithMaxCandidates(n):          candidate budget; exhaustion ⇒ ErrNoSolution.
//   - WithLogger(l):                 zap logger (default no-op).
//   - WithOnAttempt(fn):             hook called after every attempt.
//   - WithRequireForwardTime(on):    also reject negative collision times.
//   - WithRequireExact(on):          also reject starts Refine cannot snap.
//   - WithMatrixOptions(opts...):    numeric knobs forwarded to matrix.LeastSquares.
//
// Errors:
//
//   - ErrNoRays, ErrUnderdetermined, ErrNilEnumerator: rejected before the loop.
//   - ErrNoSolution: the enumerator ran dry without a verified candidate.
//   - ErrOptionViolation: an invalid Option was supplied.
//   - ctx.Err(): the context was cancelled between candidates.
//
// A failed verification is never an error; the loop just moves on.
package search
