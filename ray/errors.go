// SPDX-License-Identifier: MIT

package ray

import (
	"errors"
	"fmt"
)

// ErrMalformedRay is matched (errors.Is) by every *ParseError.
var ErrMalformedRay = errors.New("ray: malformed ray description")

// ParseError reports a line that is not "x, y, z @ vx, vy, vz".
// Line is 1-based when produced by ReadRays and 0 for a single Parse call.
type ParseError struct {
	Line   int
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("ray: line %d: %s: %q", e.Line, e.Reason, e.Input)
	}
	return fmt.Sprintf("ray: %s: %q", e.Reason, e.Input)
}

// Unwrap exposes ErrMalformedRay to errors.Is.
func (e *ParseError) Unwrap() error { return ErrMalformedRay }
