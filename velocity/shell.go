// SPDX-License-Identifier: MIT

package velocity

import "github.com/katalvlaran/hailstorm/ray"

// shellPhase is the part of the current shell being walked.
type shellPhase uint8

const (
	phaseTop    shellPhase = iota // face y = +r
	phaseSides                    // rings y = r-1 … -(r-1)
	phaseBottom                   // face y = -r
)

// Shell enumerates integer velocities shell by shell. The shell of odd side length
// s is the set of points with max(|x|,|y|,|z|) = r, r = (s-1)/2, i.e. the boundary
// of the s×s×s cube centred at the origin. Every point of a shell is visited
// exactly once before the side length grows by 2.
//
// State is O(1): side length, phase, face spiral cursor, ring level and index.
type Shell struct {
	size    int // current odd side length
	maxSize int // last side length to visit; 0 means unbounded
	r       int64
	phase   shellPhase
	face    spiral
	level   int64 // current ring y during phaseSides
	ringIdx int64 // position on the current ring, [0, 8r)
	done    bool
}

// NewShell returns an infinite shell enumerator starting at side length startSize.
// startSize < 1 is treated as 1 (the origin alone); an even size is rounded up to
// the next odd one.
func NewShell(startSize int) *Shell {
	return NewBoundedShell(startSize, 0)
}

// NewBoundedShell is NewShell that stops after the shell of side length maxSize.
// maxSize <= 0 means unbounded. A maxSize below the normalized start size yields
// nothing.
func NewBoundedShell(startSize, maxSize int) *Shell {
	s := &Shell{maxSize: maxSize}
	s.enter(normalizeSize(startSize))
	return s
}

// normalizeSize maps any size to the smallest odd side length >= max(size, 1).
func normalizeSize(size int) int {
	if size < 1 {
		return 1
	}
	if size%2 == 0 {
		return size + 1
	}
	return size
}

// Size returns the side length of the shell currently being walked.
func (s *Shell) Size() int { return s.size }

// enter positions the cursor at the start of the shell with side length size.
func (s *Shell) enter(size int) {
	if s.maxSize > 0 && size > s.maxSize {
		s.done = true
		return
	}
	s.size = size
	s.r = int64((size - 1) / 2)
	s.phase = phaseTop
	s.face = newSpiral(s.r)
}

// Next returns the next velocity of the current shell, moving to the next shell
// when this one is complete.
func (s *Shell) Next() (ray.Vector3, bool) {
	for !s.done {
		switch s.phase {
		case phaseTop:
			if x, z, ok := s.face.next(); ok {
				return ray.Vector3{X: x, Y: s.r, Z: z}, true
			}
			s.phase, s.level, s.ringIdx = phaseSides, s.r-1, 0

		case phaseSides:
			if s.r == 0 || s.level <= -s.r {
				s.phase, s.face = phaseBottom, newSpiral(s.r)
				continue
			}
			if s.ringIdx < 8*s.r {
				x, z := ringPoint(s.r, s.ringIdx)
				s.ringIdx++
				return ray.Vector3{X: x, Y: s.level, Z: z}, true
			}
			s.level, s.ringIdx = s.level-1, 0

		case phaseBottom:
			// r == 0: the top face already was the whole shell.
			if s.r > 0 {
				if x, z, ok := s.face.next(); ok {
					return ray.Vector3{X: x, Y: -s.r, Z: z}, true
				}
			}
			s.enter(s.size + 2)
		}
	}

	return ray.Vector3{}, false
}

// ringPoint returns the k-th (x, z) point of the square ring max(|x|,|z|) = r,
// walking from the corner (r, r) towards -x, then -z, then +x, then +z.
// k must lie in [0, 8r).
func ringPoint(r, k int64) (x, z int64) {
	side, off := k/(2*r), k%(2*r)
	switch side {
	case 0:
		return r - off, r
	case 1:
		return -r, r - off
	case 2:
		return -r + off, -r
	default:
		return r, -r + off
	}
}

// spiral walks the (2r+1)×(2r+1) square face centre-out with legs of length
// 1,1,2,2,…,2r,2r,2r, turning back→right→forward→left. It visits each of the
// (2r+1)² cells exactly once.
type spiral struct {
	x, z      int64
	r         int64
	emitted   int64
	total     int64
	dir       int   // index into spiralDirs
	legLen    int64 // length of the current leg
	legStep   int64 // steps already taken on the current leg
	legsAtLen int   // completed legs of length legLen
}

// spiralDirs are (dx, dz) unit moves: back (-z), right (+x), forward (+z), left (-x).
var spiralDirs = [4][2]int64{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func newSpiral(r int64) spiral {
	side := 2*r + 1
	return spiral{r: r, total: side * side, legLen: 1}
}

func (sp *spiral) next() (x, z int64, ok bool) {
	if sp.emitted >= sp.total {
		return 0, 0, false
	}
	if sp.emitted > 0 {
		if sp.legStep == sp.legLen {
			sp.dir = (sp.dir + 1) % len(spiralDirs)
			sp.legStep = 0
			sp.legsAtLen++
			if sp.legsAtLen == 2 && sp.legLen < 2*sp.r {
				sp.legLen++
				sp.legsAtLen = 0
			}
		}
		sp.x += spiralDirs[sp.dir][0]
		sp.z += spiralDirs[sp.dir][1]
		sp.legStep++
	}
	sp.emitted++

	return sp.x, sp.z, true
}
