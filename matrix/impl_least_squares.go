// SPDX-License-Identifier: MIT

package matrix

import "math"

// pseudoInverse holds the retained spectrum of AᵀA: eigenvalues above the
// rank cutoff and the matching unit eigenvectors (columns of vecs).
type pseudoInverse struct {
	n    int
	vals []float64
	vecs *Dense
	rank int
}

// apply returns (AᵀA)⁺·y restricted to the retained eigen-directions.
func (p *pseudoInverse) apply(y []float64) []float64 {
	x := make([]float64, p.n)
	var i, k int
	var coef float64
	for k = 0; k < p.rank; k++ {
		coef = ZeroSum
		for i = 0; i < p.n; i++ {
			coef += p.vecs.data[i*p.n+k] * y[i]
		}
		coef /= p.vals[k]
		for i = 0; i < p.n; i++ {
			x[i] += coef * p.vecs.data[i*p.n+k]
		}
	}

	return x
}

// LeastSquares returns the minimum-norm x minimizing ‖A·x − b‖₂.
// MAIN DESCRIPTION:
//   - Solves the normal equations AᵀA·x = Aᵀb through the spectral
//     pseudo-inverse of AᵀA, so over-determined, exactly determined and
//     rank-deficient systems are all accepted without error.
//
// Implementation:
//   - Stage 1: validate a (non-nil, finite) and b (len == a.Rows(), finite).
//   - Stage 2: form AᵀA and Aᵀb with Transpose/Mul/MatVec.
//   - Stage 3: Eigen(AᵀA) with tolerance eps·max(1, ‖AᵀA‖_F).
//   - Stage 4: keep eigenvalues > rankTol·λmax; x = Σ (vₖ·Aᵀb / λₖ)·vₖ.
//   - Stage 5: refineSteps rounds of x += (AᵀA)⁺·Aᵀ(b − A·x).
//
// Behavior highlights:
//   - Rank deficiency is silent: dropped directions contribute nothing, which
//     yields the minimum-norm solution.
//   - An all-zero A returns the zero vector.
//   - Inputs are never mutated.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (when validation is on),
//     ErrMatrixEigenFailed (Jacobi did not converge within the cap).
//
// Complexity:
//   - Time O(r·n² + iters·n²) for n = a.Cols(); Space O(n² + r·n).
//
// AI-Hints:
//   - For consistent systems the residual after refinement is at the level of
//     float64 rounding of b; use it to verify rather than trusting x blindly.
func LeastSquares(a Matrix, b []float64, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)

	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opLeastSquares, err)
	}
	if err := ValidateVecLen(b, a.Rows()); err != nil {
		return nil, matrixErrorf(opLeastSquares, err)
	}
	if o.validateNaNInf {
		if err := ValidateFinite(a); err != nil {
			return nil, matrixErrorf(opLeastSquares, err)
		}
		if err := ValidateFiniteVec(b); err != nil {
			return nil, matrixErrorf(opLeastSquares, err)
		}
	}

	at, err := Transpose(a)
	if err != nil {
		return nil, matrixErrorf(opLeastSquares, err)
	}
	pinv, err := newPseudoInverse(at, a, o)
	if err != nil {
		return nil, matrixErrorf(opLeastSquares, err)
	}

	atb, err := MatVec(at, b)
	if err != nil {
		return nil, matrixErrorf(opLeastSquares, err)
	}
	x := pinv.apply(atb)

	var ax, resid, atr, dx []float64
	resid = make([]float64, len(b))
	for step := 0; step < o.refineSteps && pinv.rank > 0; step++ {
		if ax, err = MatVec(a, x); err != nil {
			return nil, matrixErrorf(opLeastSquares, err)
		}
		for i := range b {
			resid[i] = b[i] - ax[i]
		}
		if atr, err = MatVec(at, resid); err != nil {
			return nil, matrixErrorf(opLeastSquares, err)
		}
		dx = pinv.apply(atr)
		for i := range x {
			x[i] += dx[i]
		}
	}

	return x, nil
}

// newPseudoInverse decomposes AᵀA and keeps the numerically non-zero spectrum.
func newPseudoInverse(at, a Matrix, o Options) (*pseudoInverse, error) {
	ata, err := Mul(at, a)
	if err != nil {
		return nil, err
	}
	ataDense, err := asDense(ata)
	if err != nil {
		return nil, err
	}

	return decompose(ataDense, o)
}

// decompose factors a symmetric positive semi-definite m by Jacobi and keeps
// the eigenvalues above rankTol·λmax.
func decompose(m *Dense, o Options) (*pseudoInverse, error) {
	n := m.r
	tol := o.eps * max(1, frobenius(m))
	vals, vecs, err := Eigen(m, tol, o.iterationCap(n))
	if err != nil {
		return nil, err
	}
	vd, err := asDense(vecs)
	if err != nil {
		return nil, err
	}

	p := &pseudoInverse{n: n, vals: vals, vecs: vd}
	if len(vals) == 0 || vals[0] <= 0 {
		return p, nil // zero matrix: nothing to invert
	}
	cutoff := o.rankTol * vals[0]
	for p.rank < n && vals[p.rank] > cutoff { // vals are sorted descending
		p.rank++
	}

	return p, nil
}

// frobenius returns ‖m‖_F for a Dense matrix.
func frobenius(m *Dense) float64 {
	var sum float64
	for _, v := range m.data {
		sum += v * v
	}

	return math.Sqrt(sum)
}

// Rank reports the numerical rank of a under the same cutoff LeastSquares
// uses: the number of eigenvalues of AᵀA above rankTol·λmax.
func Rank(a Matrix, opts ...Option) (int, error) {
	o := gatherOptions(opts...)
	if err := ValidateNotNil(a); err != nil {
		return 0, matrixErrorf(opRank, err)
	}
	at, err := Transpose(a)
	if err != nil {
		return 0, matrixErrorf(opRank, err)
	}
	p, err := newPseudoInverse(at, a, o)
	if err != nil {
		return 0, matrixErrorf(opRank, err)
	}

	return p.rank, nil
}

// SymmetricSolver holds the spectral pseudo-inverse of a symmetric positive
// semi-definite matrix so the same system can be solved for several
// right-hand sides. It is the building block for callers that reduce a large
// structured system to a small dense one themselves.
type SymmetricSolver struct {
	p *pseudoInverse
}

// NewSymmetricSolver factors m with the Jacobi eigen solver under the same
// epsilon and rank cutoff as LeastSquares.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf (when
//     validation is on), ErrAsymmetry, ErrMatrixEigenFailed.
func NewSymmetricSolver(m Matrix, opts ...Option) (*SymmetricSolver, error) {
	o := gatherOptions(opts...)
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSymmetricSolver, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSymmetricSolver, err)
	}
	if o.validateNaNInf {
		if err := ValidateFinite(m); err != nil {
			return nil, matrixErrorf(opSymmetricSolver, err)
		}
	}
	md, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opSymmetricSolver, err)
	}
	p, err := decompose(md, o)
	if err != nil {
		return nil, matrixErrorf(opSymmetricSolver, err)
	}

	return &SymmetricSolver{p: p}, nil
}

// Rank returns the number of retained eigen-directions.
func (s *SymmetricSolver) Rank() int { return s.p.rank }

// Solve returns the minimum-norm x with M·x = b projected onto the retained
// spectrum. b is not mutated.
func (s *SymmetricSolver) Solve(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, s.p.n); err != nil {
		return nil, matrixErrorf(opSymmetricSolver, err)
	}

	return s.p.apply(b), nil
}
