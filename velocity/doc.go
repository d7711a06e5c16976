// SPDX-License-Identifier: MIT

// Package velocity enumerates candidate velocities for the rock search.
//
// Every enumerator is an explicit cursor: a small resumable state with a single
// Next operation. Nothing is pre-materialized, so infinite sequences cost O(1)
// memory and can be consumed indefinitely.
//
// Strategies:
//
//   - Shell: concentric cube shells of growing odd side length around the origin.
//     Each shell visits its top face (centre-out spiral), its side rings from top to
//     bottom, then its bottom face. Small velocities come first. Infinite.
//   - NewBoundedShell: the same order, stopping after a maximum shell size.
//   - Range: every point of an axis-aligned box in x→y→z lexicographic order. Finite.
//
// Combinators: Limit (candidate budget), Stride (disjoint share for one worker of a
// parallel search), Seq (range-over-func adapter), Take (materialize a prefix).
//
// Concurrency: cursors are not goroutine-safe; give each goroutine its own.
package velocity
