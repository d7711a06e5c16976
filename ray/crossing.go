// SPDX-License-Identifier: MIT

package ray

import "math/big"

// Area is the inclusive square [Min, Max] x [Min, Max] of the XY plane.
type Area struct {
	Min, Max int64
}

// CrossesXY reports whether the XY projections of a and b intersect at a point
// reached at a non-negative time by both rays and lying inside area.
// Parallel projections never cross, even when collinear.
//
// With d = b.v × a.v (2D cross product), the crossing times are
//
//	t_a = ((a.x-b.x)*b.vy + (b.y-a.y)*b.vx) / d
//	t_b = ((a.x-b.x)*a.vy + (b.y-a.y)*a.vx) / d
//
// and every comparison is done on numerators scaled by |d|, so no division
// happens. Products overflow int64 for real inputs; math/big keeps them exact.
func CrossesXY(a, b Ray, area Area) bool {
	var (
		ax, ay   = big.NewInt(a.Start.X), big.NewInt(a.Start.Y)
		bx, by   = big.NewInt(b.Start.X), big.NewInt(b.Start.Y)
		avx, avy = big.NewInt(a.Velocity.X), big.NewInt(a.Velocity.Y)
		bvx, bvy = big.NewInt(b.Velocity.X), big.NewInt(b.Velocity.Y)
	)

	// Stage 1: parallel check.
	d := new(big.Int).Sub(mul(bvx, avy), mul(avx, bvy))
	if d.Sign() == 0 {
		return false
	}

	// Stage 2: both crossing times must be non-negative.
	dx := new(big.Int).Sub(ax, bx)
	dy := new(big.Int).Sub(by, ay)
	tA := new(big.Int).Add(mul(dx, bvy), mul(dy, bvx))
	tB := new(big.Int).Add(mul(dx, avy), mul(dy, avx))
	if d.Sign() > 0 && (tA.Sign() < 0 || tB.Sign() < 0) {
		return false
	}
	if d.Sign() < 0 && (tA.Sign() > 0 || tB.Sign() > 0) {
		return false
	}

	// Stage 3: normalize to d > 0, then test x = ax + avx*tA/d and
	// y = ay + avy*tA/d against the area bounds.
	if d.Sign() < 0 {
		d.Neg(d)
		tA.Neg(tA)
	}
	lo, hi := big.NewInt(area.Min), big.NewInt(area.Max)

	return within(mul(tA, avx), ax, lo, hi, d) && within(mul(tA, avy), ay, lo, hi, d)
}

// within reports lo <= start + offset/d <= hi for d > 0, as
// (lo-start)*d <= offset <= (hi-start)*d.
func within(offset, start, lo, hi, d *big.Int) bool {
	minOff := mul(new(big.Int).Sub(lo, start), d)
	maxOff := mul(new(big.Int).Sub(hi, start), d)
	return offset.Cmp(minOff) >= 0 && offset.Cmp(maxOff) <= 0
}

func mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

// CountCrossingsXY counts unordered pairs of rays for which CrossesXY holds.
// Complexity: O(n²) pair checks.
func CountCrossingsXY(rays []Ray, area Area) int {
	var count, i, j int
	for i = 0; i < len(rays); i++ {
		for j = i + 1; j < len(rays); j++ {
			if CrossesXY(rays[i], rays[j], area) {
				count++
			}
		}
	}
	return count
}
