// SPDX-License-Identifier: MIT

package search

import (
	"math"

	"github.com/katalvlaran/hailstorm/matrix"
	"github.com/katalvlaran/hailstorm/ray"
)

// Default verifier tolerances. True solutions are integers, so a loose
// 1e-3 band separates them from wrong candidates by many orders of magnitude.
const (
	DefaultRTol = 1e-3
	DefaultATol = 1e-3
)

// Tolerance is the closeness rule used by Verify: a is close to b when
// |a − b| ≤ ATol + RTol·|b|.
type Tolerance struct {
	RTol float64
	ATol float64
}

// DefaultTolerance returns {DefaultRTol, DefaultATol}.
func DefaultTolerance() Tolerance {
	return Tolerance{RTol: DefaultRTol, ATol: DefaultATol}
}

// Close reports whether a is within tolerance of the reference value b.
// The rule is asymmetric in the same way as numpy.isclose: only |b| scales.
func (t Tolerance) Close(a, b float64) bool {
	return math.Abs(a-b) <= t.ATol+t.RTol*math.Abs(b)
}

func (t Tolerance) valid() bool {
	return t.RTol >= 0 && t.ATol >= 0 && !math.IsInf(t.RTol, 0) && !math.IsInf(t.ATol, 0)
}

// System is the linear system for one (candidate velocity, sample) pair.
// Rows 0..k-1 are the x equations, k..2k-1 the y equations, 2k..3k-1 the z
// equations; column c < 3 is start[c] and column 3+i is the time of ray i.
type System struct {
	Coefficients *matrix.Dense // 3k × (3+k)
	Results      []float64     // len 3k
}

// Solution is a verified rock ray.
type Solution struct {
	// Start is the least-squares start position.
	Start [3]float64

	// Velocity is the candidate velocity that verified.
	Velocity ray.Vector3

	// Times holds the collision time of each sampled ray, in Sample order.
	Times []float64

	// Sample is the ray subset the solution was verified against.
	Sample []ray.Ray

	// Exact reports whether rounding the times produced one integer start
	// shared by every sampled ray.
	Exact bool

	// ExactStart is the integer start (rounded Start when Exact is false).
	ExactStart ray.Vector3

	// Attempts is the number of candidates tried by the loop that found it.
	Attempts int
}

// Answer returns the sum of the integer start coordinates.
func (s *Solution) Answer() int64 { return s.ExactStart.Sum() }

// Unknowns returns the solution in solver layout: start then times.
func (s *Solution) Unknowns() []float64 {
	out := make([]float64, 0, 3+len(s.Times))
	out = append(out, s.Start[:]...)
	return append(out, s.Times...)
}

// Attempt describes one candidate evaluation, passed to the OnAttempt hook.
type Attempt struct {
	// Worker is the index of the loop that ran it (0 for FindSolution).
	Worker int

	// Index is the 1-based candidate counter of that loop.
	Index int

	// Velocity is the candidate tried.
	Velocity ray.Vector3

	// Sample holds the indices of the sampled rays in the input slice.
	Sample []int

	// Accepted is true when the candidate verified.
	Accepted bool

	// Err is the solver error, if the system could not be solved.
	Err error
}
