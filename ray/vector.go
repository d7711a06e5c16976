// SPDX-License-Identifier: MIT

package ray

import "fmt"

// Axis indices used by Coord and by the linear-system builder.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// Dimensions is the number of spatial components of a Vector3.
const Dimensions = 3

// Vector3 is an immutable integer triple (a point or a velocity).
type Vector3 struct {
	X, Y, Z int64
}

// NewVector3 returns Vector3{x, y, z}.
func NewVector3(x, y, z int64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Subtract returns v - o.
func (v Vector3) Subtract(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v*s.
func (v Vector3) Scale(s int64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// Sum returns X + Y + Z.
func (v Vector3) Sum() int64 { return v.X + v.Y + v.Z }

// Coords returns the components in axis order.
func (v Vector3) Coords() [Dimensions]int64 { return [Dimensions]int64{v.X, v.Y, v.Z} }

// Coord returns the component for axis i (AxisX, AxisY or AxisZ).
// It panics on any other index, like an out-of-range array access.
func (v Vector3) Coord(i int) int64 {
	switch i {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	panic(fmt.Sprintf("ray: axis %d out of range [0,%d)", i, Dimensions))
}

// ChebyshevNorm returns max(|X|, |Y|, |Z|).
func (v Vector3) ChebyshevNorm() int64 {
	return max(abs64(v.X), abs64(v.Y), abs64(v.Z))
}

// String renders "x, y, z".
func (v Vector3) String() string { return fmt.Sprintf("%d, %d, %d", v.X, v.Y, v.Z) }

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
