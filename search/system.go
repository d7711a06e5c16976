// SPDX-License-Identifier: MIT

package search

import (
	"fmt"

	"github.com/katalvlaran/hailstorm/matrix"
	"github.com/katalvlaran/hailstorm/ray"
)

// Build emits the equations of one coordinate for the first min(limit, len(rays))
// rays: row i has 1 at coord, velocity[coord] − rays[i].Velocity[coord] at 3+i
// and zeros elsewhere (coLen columns); the matching result is rays[i].Start[coord].
//
// Build panics if coord is not an axis or coLen < 3+min(limit, len(rays)),
// both programmer errors.
func Build(coLen int, velocity ray.Vector3, coord int, rays []ray.Ray, limit int) ([][]float64, []float64) {
	n := max(0, min(limit, len(rays)))
	if coLen < ray.Dimensions+n {
		panic(fmt.Sprintf("search: Build: coLen %d too small for %d rays", coLen, n))
	}
	vc := velocity.Coord(coord)

	coefficients := make([][]float64, n)
	results := make([]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, coLen)
		row[coord] = 1
		row[ray.Dimensions+i] = float64(vc - rays[i].Velocity.Coord(coord))
		coefficients[i] = row
		results[i] = float64(rays[i].Start.Coord(coord))
	}

	return coefficients, results
}

// NewSystem stacks the x, y and z blocks of Build into a 3k × (3+k) system.
// It returns ErrUnderdetermined for fewer than two rays.
func NewSystem(velocity ray.Vector3, rays []ray.Ray) (*System, error) {
	k := len(rays)
	if k < 2 {
		return nil, fmt.Errorf("%w: got %d rays", ErrUnderdetermined, k)
	}

	rows := make([][]float64, 0, ray.Dimensions*k)
	results := make([]float64, 0, ray.Dimensions*k)
	for coord := 0; coord < ray.Dimensions; coord++ {
		c, r := Build(ray.Dimensions+k, velocity, coord, rays, k)
		rows = append(rows, c...)
		results = append(results, r...)
	}

	a, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("search: NewSystem: %w", err)
	}

	return &System{Coefficients: a, Results: results}, nil
}

// Solve returns the least-squares unknowns of the system: start x, y, z,
// then one time per ray. Rank-deficient systems yield the minimum-norm
// solution; whether it means anything is for Verify to decide.
func (s *System) Solve(opts ...matrix.Option) ([]float64, error) {
	return matrix.LeastSquares(s.Coefficients, s.Results, opts...)
}

// ComputeFor solves the system of velocity over rays. The normal matrix is
// eliminated down to its 3×3 Schur complement, which keeps the cost linear in
// len(rays); when that complement is rank-deficient the dense System is built
// and solved instead, yielding the same minimum-norm solution as Solve.
// It returns ErrUnderdetermined for fewer than two rays.
func ComputeFor(velocity ray.Vector3, rays []ray.Ray, opts ...matrix.Option) ([]float64, error) {
	if len(rays) < 2 {
		return nil, fmt.Errorf("%w: got %d rays", ErrUnderdetermined, len(rays))
	}
	x, ok, err := solveArrowhead(velocity, rays, opts...)
	if err != nil {
		return nil, fmt.Errorf("search: ComputeFor(%s): %w", velocity, err)
	}
	if ok {
		return x, nil
	}

	sys, err := NewSystem(velocity, rays)
	if err != nil {
		return nil, err
	}
	if x, err = sys.Solve(opts...); err != nil {
		return nil, fmt.Errorf("search: ComputeFor(%s): %w", velocity, err)
	}

	return x, nil
}
