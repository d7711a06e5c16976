// SPDX-License-Identifier: MIT

package search

import (
	"math"

	"github.com/katalvlaran/hailstorm/ray"
)

// maxExactTime bounds |tᵢ| for integer snapping: beyond 2^53 a float64 no
// longer represents every integer.
const maxExactTime = 1 << 53

// Refine snaps a verified float solution to integers. Every time tᵢ is
// rounded and each sampled ray proposes the start pᵢ + round(tᵢ)·(vᵢ − v);
// when all proposals coincide that start is returned with exact=true.
// Otherwise the component-wise rounding of the float start is returned with
// exact=false.
func Refine(unknowns []float64, velocity ray.Vector3, rays []ray.Ray) (start ray.Vector3, exact bool) {
	if len(unknowns) < ray.Dimensions {
		return ray.Vector3{}, false
	}
	fallback := ray.NewVector3(roundInt(unknowns[0]), roundInt(unknowns[1]), roundInt(unknowns[2]))
	if len(rays) == 0 || len(unknowns) != ray.Dimensions+len(rays) {
		return fallback, false
	}

	for i, r := range rays {
		t := unknowns[ray.Dimensions+i]
		if math.IsNaN(t) || math.Abs(t) > maxExactTime {
			return fallback, false
		}
		proposal := r.Start.Add(r.Velocity.Subtract(velocity).Scale(int64(math.Round(t))))
		if i == 0 {
			start = proposal
			continue
		}
		if proposal != start {
			return fallback, false
		}
	}

	return start, true
}

// roundInt rounds half away from zero; non-finite or out-of-range values map to 0.
func roundInt(x float64) int64 {
	if math.IsNaN(x) || math.Abs(x) > math.MaxInt64/2 {
		return 0
	}

	return int64(math.Round(x))
}
