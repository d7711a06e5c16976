// SPDX-License-Identifier: MIT

package search

import (
	"math"

	"github.com/katalvlaran/hailstorm/ray"
)

// Verify reports whether unknowns satisfy every equation of the system of
// velocity over rays: for each ray i and axis c,
//
//	start[c] + tᵢ·(velocity[c] − rays[i].Velocity[c])  ≈  rays[i].Start[c]
//
// using tol.Close. It returns false on the first mismatch, when the unknown
// vector does not have length 3+len(rays), or when any unknown is NaN/±Inf.
// The outcome does not depend on the order of rays (as long as the times are
// permuted along with them).
func Verify(unknowns []float64, velocity ray.Vector3, rays []ray.Ray, tol Tolerance) bool {
	if len(unknowns) != ray.Dimensions+len(rays) {
		return false
	}
	for _, u := range unknowns {
		if math.IsNaN(u) || math.IsInf(u, 0) {
			return false
		}
	}

	var got, want float64
	for i, r := range rays {
		t := unknowns[ray.Dimensions+i]
		for c := 0; c < ray.Dimensions; c++ {
			got = unknowns[c] + t*float64(velocity.Coord(c)-r.Velocity.Coord(c))
			want = float64(r.Start.Coord(c))
			if !tol.Close(got, want) {
				return false
			}
		}
	}

	return true
}

// forwardInTime reports whether every collision time is ≥ −atol.
func forwardInTime(unknowns []float64, atol float64) bool {
	for _, t := range unknowns[ray.Dimensions:] {
		if t < -atol {
			return false
		}
	}

	return true
}
