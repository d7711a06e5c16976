// SPDX-License-Identifier: MIT
package search_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hailstorm/ray"
	"github.com/katalvlaran/hailstorm/velocity"
)

// sampleInput is the canonical five-hailstone example; the rock starts at
// 24, 13, 10 with velocity -3, 1, 2 and hits them at t = 5, 3, 4, 6, 1.
const sampleInput = `19, 13, 30 @ -2,  1, -2
18, 19, 22 @ -1, -1, -2
20, 25, 34 @ -2, -2, -4
12, 31, 28 @ -1, -2, -1
20, 19, 15 @  1, -5, -3
`

// syntheticInput is generated from the rock 140, -65, 90 @ 2, -1, 3 with
// pᵢ = s₀ + tᵢ·(v₀ − vᵢ) for t = 3, 7, 11, 4, 9, 13.
const syntheticInput = `131, -56, 96 @ 5, -4, 1
175, -86, 69 @ -3, 2, 6
151, -131, 145 @ 1, 5, -2
172, -57, 118 @ -6, -3, -4
122, -83, 54 @ 4, 1, 7
192, 0, 129 @ -2, -6, 0
`

// puzzleInput is at puzzle scale: the rock 191146615936494, 342596108503183,
// 131079628110881 @ -3, 4, 2 hits each hailstone at a time between 1e11
// and 6e11.
// Inside [-4,4]³ several wrong velocities still pass Verify for a five-ray
// sample; only the true one also snaps to a single integer start.
const puzzleInput = `190349537645370, 363320144072407, 114075291233569 @ 0, -74, 66
225075775651164, 289646056221198, 98692702928696 @ -69, 107, 65
175607973330414, 326115729981583, 144028496949281 @ 63, 74, -53
177852998696019, 317781356320963, 111582322824851 @ 42, 88, 68
194099462245148, 339911702768043, 113899431405985 @ -14, 14, 66
188047139335548, 334706531700775, 136433269512515 @ 19, 60, -36
157627569168854, 307161687634535, 83674119110933 @ 67, 78, 101
154357729430694, 312183962325055, 132551183571113 @ 72, 66, -1
153840588422889, 303719300883742, 113408351920226 @ 92, 103, 47
199605651638604, 329437608522123, 133362225046371 @ -66, 102, -15
`

var (
	sampleStart    = ray.NewVector3(24, 13, 10)
	sampleVelocity = ray.NewVector3(-3, 1, 2)
	sampleTimes    = []float64{5, 3, 4, 6, 1}

	syntheticStart    = ray.NewVector3(140, -65, 90)
	syntheticVelocity = ray.NewVector3(2, -1, 3)

	puzzleStart    = ray.NewVector3(191146615936494, 342596108503183, 131079628110881)
	puzzleVelocity = ray.NewVector3(-3, 4, 2)
)

const puzzleAnswer = 664822352550558

func mustRays(t testing.TB, input string) []ray.Ray {
	t.Helper()
	rays, err := ray.ReadRays(strings.NewReader(input))
	require.NoError(t, err)
	return rays
}

// smallBox is the range [-3,3]³; for the fixtures above only the true
// velocity verifies inside it.
func smallBox(t testing.TB) *velocity.Range {
	t.Helper()
	r, err := velocity.NewRange(ray.NewVector3(-3, -3, -3), ray.NewVector3(3, 3, 3))
	require.NoError(t, err)
	return r
}

// generateRays returns n puzzle-scale rays hit by the rock start @ vel, with
// hailstone velocities in [-100,100]³ and collision times in [1e11, 5e11).
func generateRays(n int, seed int64, start, vel ray.Vector3) []ray.Ray {
	rng := rand.New(rand.NewSource(seed))
	rays := make([]ray.Ray, n)
	for i := range rays {
		v := ray.NewVector3(rng.Int63n(201)-100, rng.Int63n(201)-100, rng.Int63n(201)-100)
		t := 100_000_000_000 + rng.Int63n(400_000_000_000)
		rays[i] = ray.New(start.Add(vel.Subtract(v).Scale(t)), v)
	}

	return rays
}
