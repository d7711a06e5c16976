// SPDX-License-Identifier: MIT

package velocity

import (
	"errors"
	"iter"

	"github.com/katalvlaran/hailstorm/ray"
)

// ErrEmptyRange is returned by NewRange when a minimum exceeds its maximum.
var ErrEmptyRange = errors.New("velocity: empty range")

// Enumerator yields candidate velocities one at a time.
// Next returns ok=false once the sequence is exhausted, and keeps doing so.
type Enumerator interface {
	Next() (v ray.Vector3, ok bool)
}

// Seq adapts e to a range-over-func sequence. The sequence shares e's cursor:
// breaking out of a loop leaves e positioned after the last yielded value.
func Seq(e Enumerator) iter.Seq[ray.Vector3] {
	return func(yield func(ray.Vector3) bool) {
		for {
			v, ok := e.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Take consumes and returns at most n values from e.
func Take(e Enumerator, n int) []ray.Vector3 {
	out := make([]ray.Vector3, 0, max(n, 0))
	for len(out) < n {
		v, ok := e.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// limited stops its source after a fixed number of values.
type limited struct {
	src  Enumerator
	left int
}

// Limit returns an enumerator yielding at most n values of e (n <= 0 yields none).
func Limit(e Enumerator, n int) Enumerator {
	return &limited{src: e, left: n}
}

func (l *limited) Next() (ray.Vector3, bool) {
	if l.left <= 0 {
		return ray.Vector3{}, false
	}
	l.left--
	return l.src.Next()
}

// strided keeps every step-th value of its source, starting at offset.
type strided struct {
	src     Enumerator
	step    int
	skip    int // values to discard before the next yield
	started bool
}

// Stride returns the values of e at indices offset, offset+step, offset+2*step, …
// Workers w = 0..W-1 calling Stride(newEnum(), w, W) on replicated enumerators
// together cover the sequence exactly once. It panics if step < 1 or offset is
// outside [0, step), both programmer errors.
func Stride(e Enumerator, offset, step int) Enumerator {
	if step < 1 || offset < 0 || offset >= step {
		panic("velocity: Stride: need 0 <= offset < step")
	}
	return &strided{src: e, step: step, skip: offset}
}

func (s *strided) Next() (ray.Vector3, bool) {
	if s.started {
		s.skip = s.step - 1
	}
	s.started = true
	for ; s.skip > 0; s.skip-- {
		if _, ok := s.src.Next(); !ok {
			return ray.Vector3{}, false
		}
	}
	return s.src.Next()
}
