// SPDX-License-Identifier: MIT

package velocity

import (
	"fmt"

	"github.com/katalvlaran/hailstorm/ray"
)

// Range enumerates every integer point of the box [Min, Max] (inclusive on all
// axes) in lexicographic order: x outermost, z innermost. It always terminates,
// which makes it the enumerator of choice when bounds on the answer are known.
type Range struct {
	min, max ray.Vector3
	cur      ray.Vector3
	done     bool
}

// NewRange validates the box and returns a cursor positioned at min.
func NewRange(min, max ray.Vector3) (*Range, error) {
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return nil, fmt.Errorf("%w: min (%s) exceeds max (%s)", ErrEmptyRange, min, max)
	}
	return &Range{min: min, max: max, cur: min}, nil
}

// Len returns the number of points in the box.
func (r *Range) Len() int64 {
	return (r.max.X - r.min.X + 1) * (r.max.Y - r.min.Y + 1) * (r.max.Z - r.min.Z + 1)
}

// Next returns the current point and advances z, then y, then x.
func (r *Range) Next() (ray.Vector3, bool) {
	if r.done {
		return ray.Vector3{}, false
	}
	v := r.cur

	r.cur.Z++
	if r.cur.Z > r.max.Z {
		r.cur.Z = r.min.Z
		r.cur.Y++
		if r.cur.Y > r.max.Y {
			r.cur.Y = r.min.Y
			r.cur.X++
			if r.cur.X > r.max.X {
				r.done = true
			}
		}
	}

	return v, true
}
