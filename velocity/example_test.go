// SPDX-License-Identifier: MIT

package velocity_test

import (
	"fmt"

	"github.com/katalvlaran/hailstorm/ray"
	"github.com/katalvlaran/hailstorm/velocity"
)

// ExampleNewShell prints the origin and the start of the first shell around it.
func ExampleNewShell() {
	for _, v := range velocity.Take(velocity.NewShell(1), 4) {
		fmt.Println(v)
	}
	// Output:
	// 0, 0, 0
	// 0, 1, 0
	// 0, 1, -1
	// 1, 1, -1
}

// ExampleNewRange walks a 1×2×2 box in lexicographic order.
func ExampleNewRange() {
	r, _ := velocity.NewRange(ray.NewVector3(-3, 1, 2), ray.NewVector3(-3, 2, 3))
	for v := range velocity.Seq(r) {
		fmt.Println(v)
	}
	// Output:
	// -3, 1, 2
	// -3, 1, 3
	// -3, 2, 2
	// -3, 2, 3
}
