// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra kernels used by the
// hailstone solver.
//
// The package provides:
//
//   - Dense, a row-major float64 matrix with safe accessors (At/Set return
//     errors instead of panicking) and an optional finite-only numeric policy.
//   - Universal kernels over the Matrix interface: Transpose, Mul, MatVec and
//     a deterministic Jacobi eigen solver for symmetric matrices.
//   - LeastSquares, the minimum-norm solution of A·x ≈ b computed through the
//     spectral pseudo-inverse of AᵀA. Rank-deficient systems are accepted.
//
// All kernels validate their inputs through the canonical validators and
// report failures with sentinel errors wrapped by an operation tag, so callers
// match them with errors.Is. Every loop runs in a fixed order; identical
// inputs always produce bit-identical outputs.
//
// Numeric knobs (Jacobi tolerance, rank cutoff, iteration cap, NaN/Inf
// policy) are configured through functional options; see options.go.
package matrix
