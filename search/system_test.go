// SPDX-License-Identifier: MIT
package search_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hailstorm/ray"
	"github.com/katalvlaran/hailstorm/search"
)

func TestBuild(t *testing.T) {
	rays := mustRays(t, sampleInput)
	v := ray.NewVector3(-3, 1, 2)

	coeffs, results := search.Build(5, v, ray.AxisY, rays, 2)
	require.Len(t, coeffs, 2)
	assert.Equal(t, []float64{0, 1, 0, 1 - 1, 0}, coeffs[0])
	assert.Equal(t, []float64{0, 1, 0, 0, 1 - (-1)}, coeffs[1])
	assert.Equal(t, []float64{13, 19}, results)

	coeffs, results = search.Build(8, v, ray.AxisX, rays, 100) // limit saturates
	require.Len(t, coeffs, 5)
	require.Len(t, results, 5)
	assert.Equal(t, -3.0-1, coeffs[4][7])

	coeffs, results = search.Build(3, v, ray.AxisZ, rays, 0)
	assert.Empty(t, coeffs)
	assert.Empty(t, results)

	assert.Panics(t, func() { search.Build(4, v, ray.AxisX, rays, 2) })
	assert.Panics(t, func() { search.Build(5, v, 3, rays, 2) })
}

func TestNewSystemShape(t *testing.T) {
	rays := mustRays(t, sampleInput)[:3]
	sys, err := search.NewSystem(ray.NewVector3(-3, 1, 2), rays)
	require.NoError(t, err)
	r, c := sys.Coefficients.Shape()
	assert.Equal(t, 9, r)
	assert.Equal(t, 6, c)
	assert.Equal(t, []float64{19, 18, 20, 13, 19, 25, 30, 22, 34}, sys.Results)

	// z row of ray 2: start z coefficient 1, time column 3+2 = 2 - (-4)
	v, err := sys.Coefficients.At(8, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = sys.Coefficients.At(8, 5)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	_, err = search.NewSystem(ray.Vector3{}, rays[:1])
	require.ErrorIs(t, err, search.ErrUnderdetermined)
}

func TestComputeForTrueVelocity(t *testing.T) {
	rays := mustRays(t, sampleInput)
	x, err := search.ComputeFor(sampleVelocity, rays)
	require.NoError(t, err)
	want := []float64{24, 13, 10, 5, 3, 4, 6, 1}
	require.Len(t, x, len(want))
	for i := range want {
		assert.InDelta(t, want[i], x[i], 1e-6, "unknown %d", i)
	}
}

// TestComputeForTwoRays covers the smallest well-posed system: 6 equations
// against 5 unknowns stay consistent for the true velocity.
func TestComputeForTwoRays(t *testing.T) {
	rays := mustRays(t, syntheticInput)
	for i := range rays {
		for j := range rays {
			if i == j {
				continue
			}
			pair := []ray.Ray{rays[i], rays[j]}
			x, err := search.ComputeFor(syntheticVelocity, pair)
			require.NoError(t, err)
			require.Len(t, x, 5)
			assert.True(t, search.Verify(x, syntheticVelocity, pair, search.DefaultTolerance()), "pair %d,%d", i, j)
			assert.InDelta(t, 140, x[0], 1e-6)
			assert.InDelta(t, -65, x[1], 1e-6)
			assert.InDelta(t, 90, x[2], 1e-6)
		}
	}
}

func TestSystemSolveMatchesComputeFor(t *testing.T) {
	rays := mustRays(t, syntheticInput)[:4]
	sys, err := search.NewSystem(syntheticVelocity, rays)
	require.NoError(t, err)

	x, err := sys.Solve()
	require.NoError(t, err)
	y, err := search.ComputeFor(syntheticVelocity, rays)
	require.NoError(t, err)
	require.Len(t, y, len(x))

	want := []float64{140, -65, 90, 3, 7, 11, 4}
	for i := range want {
		assert.InDelta(t, want[i], x[i], 1e-6, "unknown %d", i)
		assert.InDelta(t, x[i], y[i], 1e-6, "unknown %d", i)
	}
}

// ComputeFor eliminates the times instead of solving the dense system; both
// must agree on wrong candidates too, including one equal to a hailstone's
// own velocity, whose time column is all zero.
func TestComputeForMatchesDenseSolve(t *testing.T) {
	rays := mustRays(t, syntheticInput)
	candidates := []ray.Vector3{
		syntheticVelocity,
		ray.NewVector3(0, 0, 0),
		ray.NewVector3(1, 2, -1),
		ray.NewVector3(-7, 3, 5),
		rays[0].Velocity,
	}
	for _, v := range candidates {
		sys, err := search.NewSystem(v, rays)
		require.NoError(t, err)
		dense, err := sys.Solve()
		require.NoError(t, err)
		fast, err := search.ComputeFor(v, rays)
		require.NoError(t, err)
		require.Len(t, fast, len(dense))
		for i := range dense {
			assert.InDelta(t, dense[i], fast[i], 1e-6*max(1, math.Abs(dense[i])), "velocity %s unknown %d", v, i)
		}
		assert.Equal(t, search.Verify(dense, v, rays, search.DefaultTolerance()),
			search.Verify(fast, v, rays, search.DefaultTolerance()), "velocity %s", v)
	}

	x, err := search.ComputeFor(rays[0].Velocity, rays)
	require.NoError(t, err)
	assert.Zero(t, x[3], "a zero time column gets the minimum-norm time")
}

// Hailstones moving parallel relative to the candidate leave the start
// underdetermined along that direction; ComputeFor then returns the dense
// minimum-norm solution.
func TestComputeForRankDeficient(t *testing.T) {
	rays := []ray.Ray{
		ray.New(ray.NewVector3(0, 0, 0), ray.NewVector3(1, 0, 0)),
		ray.New(ray.NewVector3(1, 1, 1), ray.NewVector3(2, 0, 0)),
	}
	v := ray.NewVector3(0, 0, 0)

	sys, err := search.NewSystem(v, rays)
	require.NoError(t, err)
	dense, err := sys.Solve()
	require.NoError(t, err)
	x, err := search.ComputeFor(v, rays)
	require.NoError(t, err)
	assert.Equal(t, dense, x)
	assert.InDelta(t, 0.5, x[1], 1e-9)
	assert.InDelta(t, 0.5, x[2], 1e-9)

	_, err = search.ComputeFor(v, rays[:1])
	require.ErrorIs(t, err, search.ErrUnderdetermined)
}
