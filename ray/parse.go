// SPDX-License-Identifier: MIT

package ray

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	groupSep = '@' // separates position from velocity
	coordSep = "," // separates the components of one group
)

// ParseVector3 parses "x, y, z" (whitespace around tokens is ignored).
func ParseVector3(s string) (Vector3, error) {
	parts := strings.Split(s, coordSep)
	if len(parts) != Dimensions {
		return Vector3{}, &ParseError{Input: s, Reason: fmt.Sprintf("want %d comma-separated integers, got %d", Dimensions, len(parts))}
	}

	var (
		c   [Dimensions]int64
		err error
	)
	for i, p := range parts {
		c[i], err = strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return Vector3{}, &ParseError{Input: s, Reason: fmt.Sprintf("component %d: %v", i, err)}
		}
	}

	return Vector3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// Parse converts one "x, y, z @ vx, vy, vz" line into a Ray.
// The line must split into exactly two '@' groups of exactly three integers each.
func Parse(line string) (Ray, error) {
	groups := strings.Split(line, string(groupSep))
	if len(groups) != 2 {
		return Ray{}, &ParseError{Input: line, Reason: fmt.Sprintf("want 2 %q-separated groups, got %d", groupSep, len(groups))}
	}

	start, err := ParseVector3(groups[0])
	if err != nil {
		return Ray{}, reparent(err, line, "start")
	}
	velocity, err := ParseVector3(groups[1])
	if err != nil {
		return Ray{}, reparent(err, line, "velocity")
	}

	return Ray{Start: start, Velocity: velocity}, nil
}

// reparent rewrites a group-level ParseError so it reports the whole line.
func reparent(err error, line, group string) error {
	pe, ok := err.(*ParseError)
	if !ok {
		return err
	}
	return &ParseError{Input: line, Reason: group + ": " + pe.Reason}
}

// ReadRays parses one ray per line from r. Blank and whitespace-only lines are
// skipped wherever they occur; the first malformed line aborts the read and is
// reported as a *ParseError carrying its 1-based line number.
func ReadRays(r io.Reader) ([]Ray, error) {
	var (
		rays []Ray
		line int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		rr, err := Parse(text)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = line
			}
			return nil, err
		}
		rays = append(rays, rr)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ray: read input: %w", err)
	}

	return rays, nil
}

// ReadFile opens path and delegates to ReadRays.
func ReadFile(path string) ([]Ray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ray: open input: %w", err)
	}
	defer f.Close()

	return ReadRays(f)
}
