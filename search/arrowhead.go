// SPDX-License-Identifier: MIT

package search

import (
	"github.com/katalvlaran/hailstorm/matrix"
	"github.com/katalvlaran/hailstorm/ray"
)

// point is one ray's target or residual in float coordinates.
type point [ray.Dimensions]float64

// arrowhead is the normal matrix of the system of a velocity over k rays in
// factored form. AᵀA has an identity-scaled 3×3 start block, a diagonal time
// block and a border coupling start c with time i through dᵢ[c], where
// dᵢ = velocity − vᵢ. Eliminating the times leaves the 3×3 Schur complement
//
//	S = Σᵢ (I − dᵢ·dᵢᵀ / |dᵢ|²)
//
// so one solve costs O(k) instead of the O((3+k)³) dense factorization.
// A ray with dᵢ = 0 has an all-zero time column; its time is pinned to 0,
// which is the minimum-norm choice.
type arrowhead struct {
	d     []point
	n2    []float64
	schur *matrix.SymmetricSolver
}

func newArrowhead(velocity ray.Vector3, rays []ray.Ray, opts ...matrix.Option) (*arrowhead, error) {
	h := &arrowhead{
		d:  make([]point, len(rays)),
		n2: make([]float64, len(rays)),
	}
	var s [ray.Dimensions][ray.Dimensions]float64
	for i, r := range rays {
		dv := velocity.Subtract(r.Velocity)
		for c := 0; c < ray.Dimensions; c++ {
			h.d[i][c] = float64(dv.Coord(c))
		}
		h.n2[i] = h.d[i].dot(h.d[i])
		for a := 0; a < ray.Dimensions; a++ {
			s[a][a]++
			if h.n2[i] == 0 {
				continue
			}
			for b := 0; b < ray.Dimensions; b++ {
				s[a][b] -= h.d[i][a] * h.d[i][b] / h.n2[i]
			}
		}
	}

	rows := make([][]float64, ray.Dimensions)
	for a := range rows {
		rows[a] = s[a][:]
	}
	m, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, err
	}
	if h.schur, err = matrix.NewSymmetricSolver(m, opts...); err != nil {
		return nil, err
	}

	return h, nil
}

// fullRank reports whether the start block can be recovered; otherwise the
// dense pseudo-inverse has to pick the minimum-norm solution.
func (h *arrowhead) fullRank() bool {
	return h.schur.Rank() == ray.Dimensions
}

// solve returns the least-squares unknowns (start, then one time per ray)
// for targets p, one point per ray.
func (h *arrowhead) solve(p []point) ([]float64, error) {
	rhs := make([]float64, ray.Dimensions)
	var w float64
	for i := range p {
		w = 0
		if h.n2[i] > 0 {
			w = h.d[i].dot(p[i]) / h.n2[i]
		}
		for c := 0; c < ray.Dimensions; c++ {
			rhs[c] += p[i][c] - w*h.d[i][c]
		}
	}
	s, err := h.schur.Solve(rhs)
	if err != nil {
		return nil, err
	}

	x := make([]float64, ray.Dimensions+len(p))
	copy(x, s)
	var off point
	for i := range p {
		if h.n2[i] == 0 {
			continue
		}
		for c := 0; c < ray.Dimensions; c++ {
			off[c] = p[i][c] - s[c]
		}
		x[ray.Dimensions+i] = h.d[i].dot(off) / h.n2[i]
	}

	return x, nil
}

// solveArrowhead solves the system of velocity over rays without building it,
// followed by the refinement rounds configured in opts. ok is false when the
// Schur complement is rank-deficient and the caller must fall back to the
// dense solver.
func solveArrowhead(velocity ray.Vector3, rays []ray.Ray, opts ...matrix.Option) (x []float64, ok bool, err error) {
	h, err := newArrowhead(velocity, rays, opts...)
	if err != nil {
		return nil, false, err
	}
	if !h.fullRank() {
		return nil, false, nil
	}

	targets := make([]point, len(rays))
	for i, r := range rays {
		for c := 0; c < ray.Dimensions; c++ {
			targets[i][c] = float64(r.Start.Coord(c))
		}
	}
	if x, err = h.solve(targets); err != nil {
		return nil, false, err
	}

	resid := make([]point, len(rays))
	var dx []float64
	for step := matrix.NewMatrixOptions(opts...).RefineSteps(); step > 0; step-- {
		for i := range targets {
			t := x[ray.Dimensions+i]
			for c := 0; c < ray.Dimensions; c++ {
				resid[i][c] = targets[i][c] - (x[c] + t*h.d[i][c])
			}
		}
		if dx, err = h.solve(resid); err != nil {
			return nil, false, err
		}
		for j := range x {
			x[j] += dx[j]
		}
	}

	return x, true, nil
}

func (p point) dot(q point) float64 {
	return p[0]*q[0] + p[1]*q[1] + p[2]*q[2]
}
