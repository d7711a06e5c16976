// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// transpose, matrix multiplication, matrix-vector product and the Jacobi
// eigen solver. All functions perform strict fail-fast validation and return
// clear errors on dimension mismatches.
//
// Notes:
//   - Every kernel converts non-Dense operands once (asDense) and then runs a
//     single flat row-major loop, so *Dense and wrapped inputs give identical bits.
//   - Errors are wrapped via matrixErrorf with the op* tag of the facade.

package matrix

import (
	"fmt"
	"math"
	"sort"
)

// ZeroSum is the initial value for accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul             = "Mul"
	opTranspose       = "Transpose"
	opMatVec          = "MatVec"
	opEigen           = "Eigen"
	opLeastSquares    = "LeastSquares"
	opRank            = "Rank"
	opSymmetricSolver = "SymmetricSolver"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The original matrix is never mutated.
//
// Errors:
//   - ErrNilMatrix (from ValidateNotNil).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the returned matrix.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(src.c, src.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	// data[i*cols + j] → res.data[j*rows + i]
	var i, j, base int
	for i = 0; i < src.r; i++ {
		base = i * src.c
		for j = 0; j < src.c; j++ {
			res.data[j*src.r+i] = src.data[base+j]
		}
	}

	return res, nil
}

// Mul computes C = A·B.
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate C (r × c).
//   - Stage 2: i→k→j loop over flat buffers, skipping zero A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed i→k→j order; zero-skipping never changes the rounding of other terms.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, k, j                            int
		rowOffsetA, rowOffsetB, rowOffsetR int
		av                                 float64
	)
	for i = 0; i < da.r; i++ {
		rowOffsetA = i * da.c
		rowOffsetR = i * db.c
		for k = 0; k < da.c; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue
			}
			rowOffsetB = k * db.c
			for j = 0; j < db.c; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, d.r)
	var i, j, base int
	var acc float64
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			if x[j] != 0 {
				acc += d.data[base+j] * x[j]
			}
		}
		y[i] = acc
	}

	return y, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Repeatedly pick (p,q) with the largest |A[p,q]| in i→j order and
//     apply a Jacobi rotation, accumulating it into Q.
//   - Stage 3: Sort eigenpairs by descending eigenvalue (stable on ties).
//
// Inputs:
//   - m: symmetric Matrix (within tol); n := m.Rows().
//   - tol: absolute convergence threshold on the largest off-diagonal magnitude.
//   - maxIter: cap on the number of rotations.
//
// Returns:
//   - []float64: eigenvalues, largest first.
//   - Matrix: Q whose column k is the unit eigenvector of eigenvalue k.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf (bad tol),
//     ErrAsymmetry (not symmetric within tol),
//     ErrMatrixEigenFailed (max off-diagonal > tol after maxIter rotations).
//
// Determinism:
//   - Fixed i→j pivot search and fixed update order produce stable results.
//
// Complexity:
//   - Time O(maxIter * n), plus O(n²) per pivot scan; Space O(n²).
//
// AI-Hints:
//   - Pass a tolerance scaled to the magnitude of m (see LeastSquares).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, Matrix, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	tol = math.Abs(tol)

	a, err := asDense(m.Clone()) // working copy; m is never mutated
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := a.r
	q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	var i int
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}

	var (
		iter, p, r     int
		maxOff         float64
		app, arr, apr  float64
		aip, air       float64
		theta, t, c, s float64
		converged      bool
	)
	for iter = 0; ; iter++ {
		maxOff, p, r = offDiagonalPivot(a)
		if maxOff <= tol {
			converged = true
			break
		}
		if iter >= maxIter {
			break
		}

		app = a.data[p*n+p]
		arr = a.data[r*n+r]
		apr = a.data[p*n+r]

		// θ = (arr−app)/(2·apr), t = sign(θ)/(|θ|+√(θ²+1)), c = 1/√(1+t²), s = t·c
		theta = (arr - app) / (2 * apr)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip = a.data[i*n+p]
			air = a.data[i*n+r]
			a.data[i*n+p] = c*aip - s*air
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+r] = s*aip + c*air
			a.data[r*n+i] = a.data[i*n+r]
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apr + s*s*arr
		a.data[r*n+r] = s*s*app + 2*c*s*apr + c*c*arr
		a.data[p*n+r], a.data[r*n+p] = 0, 0

		for i = 0; i < n; i++ {
			aip = q.data[i*n+p]
			air = q.data[i*n+r]
			q.data[i*n+p] = c*aip - s*air
			q.data[i*n+r] = s*aip + c*air
		}
	}
	if !converged {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	return sortedEigenpairs(a, q)
}

// offDiagonalPivot scans the strict upper triangle in i→j order and returns
// the largest magnitude with its position. Ties keep the first occurrence.
func offDiagonalPivot(a *Dense) (maxOff float64, p, q int) {
	n := a.r
	var i, j int
	var off float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			off = math.Abs(a.data[i*n+j])
			if off > maxOff {
				maxOff, p, q = off, i, j
			}
		}
	}

	return maxOff, p, q
}

// sortedEigenpairs extracts the diagonal of a and reorders the columns of q
// so that eigenvalues are descending.
func sortedEigenpairs(a, q *Dense) ([]float64, Matrix, error) {
	n := a.r
	order := make([]int, n)
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		order[i] = i
		vals[i] = a.data[i*n+i]
	}
	sort.SliceStable(order, func(x, y int) bool { return vals[order[x]] > vals[order[y]] })

	outVals := make([]float64, n)
	vecs, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for k, src := range order {
		outVals[k] = vals[src]
		for i := 0; i < n; i++ {
			vecs.data[i*n+k] = q.data[i*n+src]
		}
	}

	return outVals, vecs, nil
}
