// SPDX-License-Identifier: MIT

package search

import "errors"

// Sentinel errors for the search loop.
var (
	// ErrNoRays is returned when the input ray set is empty.
	ErrNoRays = errors.New("search: no rays")

	// ErrUnderdetermined is returned when fewer than two rays would be
	// sampled: 3k equations cannot pin down 3+k unknowns for k < 2.
	ErrUnderdetermined = errors.New("search: sample size must be at least 2")

	// ErrNilEnumerator is returned when no candidate source is supplied.
	ErrNilEnumerator = errors.New("search: nil velocity enumerator")

	// ErrNoSolution is returned when the candidates are exhausted (including
	// a candidate budget) without a verified solution.
	ErrNoSolution = errors.New("search: no solution found within search space")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")
)
