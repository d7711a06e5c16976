// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/hailstorm/matrix"
)

// ExampleLeastSquares fits y = c0 + c1·x through three points that do not
// lie on one line.
func ExampleLeastSquares() {
	a, _ := matrix.NewDenseFromRows([][]float64{
		{1, 0},
		{1, 1},
		{1, 2},
	})
	x, err := matrix.LeastSquares(a, []float64{0, 1, 1})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("c0=%.4f c1=%.4f\n", x[0], x[1])
	// Output:
	// c0=0.1667 c1=0.5000
}

// ExampleLeastSquares_rankDeficient shows the minimum-norm answer when the
// columns are linearly dependent.
func ExampleLeastSquares_rankDeficient() {
	a, _ := matrix.NewDenseFromRows([][]float64{
		{1, 1},
		{1, 1},
	})
	x, _ := matrix.LeastSquares(a, []float64{2, 2})
	fmt.Printf("%.4f %.4f\n", x[0], x[1])
	// Output:
	// 1.0000 1.0000
}

func ExampleEigen() {
	m, _ := matrix.NewDenseFromRows([][]float64{
		{2, 1},
		{1, 2},
	})
	vals, _, _ := matrix.Eigen(m, 1e-12, 100)
	fmt.Printf("%.3f %.3f\n", vals[0], vals[1])
	// Output:
	// 3.000 1.000
}
