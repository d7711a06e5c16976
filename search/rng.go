// SPDX-License-Identifier: MIT

// Package search - RNG utilities for ray sampling.
//
// Goals:
//   - Determinism: same seed ⇒ identical samples and results across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//   - Performance: sampling reuses one permutation buffer; O(k) per draw.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
//   - Use deriveRNG to create independent streams for parallel workers.
package search

import "math/rand"

// defaultRNGSeed is the fixed "zero" seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed with a SplitMix64 finalizer, so neighbouring stream ids give
// uncorrelated children.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// deriveRNG creates an independent deterministic stream from base and a
// stream id. base.Int63() is consumed once per derivation, so call it during
// setup, sequentially, never from the workers themselves.
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	parent := defaultRNGSeed
	if base != nil {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// sampler draws uniform k-subsets of {0..n-1} without replacement.
// The permutation buffer persists between draws; a partial Fisher–Yates pass
// over any permutation is still uniform.
type sampler struct {
	perm []int
	rng  *rand.Rand
}

func newSampler(n int, rng *rand.Rand) *sampler {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	return &sampler{perm: perm, rng: rng}
}

// draw returns a fresh slice of k distinct indices (k is clamped to n).
// Complexity: O(k) time, O(k) space for the result.
func (s *sampler) draw(k int) []int {
	n := len(s.perm)
	k = min(k, n)

	var i, j int
	for i = 0; i < k; i++ {
		j = i + s.rng.Intn(n-i)
		s.perm[i], s.perm[j] = s.perm[j], s.perm[i]
	}

	return append([]int(nil), s.perm[:k]...)
}
