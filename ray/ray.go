// SPDX-License-Identifier: MIT

package ray

import "fmt"

// Ray is a point moving with constant velocity: position(t) = Start + Velocity*t.
type Ray struct {
	Start    Vector3
	Velocity Vector3
}

// New returns the ray starting at start and moving with velocity.
func New(start, velocity Vector3) Ray { return Ray{Start: start, Velocity: velocity} }

// At returns the position at integer time t.
func (r Ray) At(t int64) Vector3 { return r.Start.Add(r.Velocity.Scale(t)) }

// String renders the canonical input form "x, y, z @ vx, vy, vz".
// Parse(r.String()) == r for every ray.
func (r Ray) String() string { return fmt.Sprintf("%s %c %s", r.Start, groupSep, r.Velocity) }
