// SPDX-License-Identifier: MIT

// Package ray models hailstones: integer points moving with a constant integer
// velocity through 3D space, position(t) = Start + Velocity*t.
//
// The package provides:
//
//   - Vector3, an immutable integer triple with named Add/Subtract/Scale ops.
//   - Ray and its canonical text form "x, y, z @ vx, vy, vz".
//   - Parse / ReadRays for the newline-delimited input file (blank lines are skipped,
//     the first malformed line aborts with a *ParseError).
//   - CrossesXY / CountCrossingsXY: future path intersections projected onto the
//     XY plane inside an inclusive square test area.
//
// Usage:
//
//	rays, err := ray.ReadFile("input")
//	if err != nil {
//		// errors.Is(err, ray.ErrMalformedRay) for bad lines
//	}
//	n := ray.CountCrossingsXY(rays, ray.Area{Min: 7, Max: 27})
package ray
