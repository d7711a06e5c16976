// SPDX-License-Identifier: MIT

// Package config loads the hailstorm run configuration from YAML.
//
// A Config starts from Default(), is overlaid by a YAML file (Load) and then
// by command-line flags. Validate reports the first invalid field wrapped in
// ErrInvalidConfig.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Load and Validate for unusable values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Defaults for a run. The area defaults to the puzzle's test area.
const (
	DefaultStartSize  = 1
	DefaultSampleSize = 0
	DefaultWorkers    = 1
	DefaultTolerance  = 1e-3
	DefaultLogLevel   = "info"
	DefaultAreaMin    = 200000000000000
	DefaultAreaMax    = 400000000000000
)

// Config is the full set of run parameters.
type Config struct {
	Input         string  `yaml:"input"`
	StartSize     int     `yaml:"start_size"`
	MaxSize       int     `yaml:"max_size"`
	SampleSize    int     `yaml:"sample_size"`
	Seed          int64   `yaml:"seed"`
	MaxCandidates int     `yaml:"max_candidates"`
	Workers       int     `yaml:"workers"`
	RTol          float64 `yaml:"rtol"`
	ATol          float64 `yaml:"atol"`
	ForwardTime   bool    `yaml:"forward_time"`
	RequireExact  bool    `yaml:"require_exact"`
	LogLevel      string  `yaml:"log_level"`
	Range         *Range  `yaml:"range,omitempty"`
	Area          Area    `yaml:"area"`
}

// Range bounds a box of candidate velocities, inclusive on both ends.
type Range struct {
	Min [3]int64 `yaml:"min"`
	Max [3]int64 `yaml:"max"`
}

// Area is the inclusive XY test square for crossing counts.
type Area struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// Default returns the built-in configuration: every ray in each sample and
// only solutions that snap to one integer start.
// SampleSize 0 means "all rays"; StartSize 0 is the same as 1.
func Default() Config {
	return Config{
		StartSize:    DefaultStartSize,
		SampleSize:   DefaultSampleSize,
		Workers:      DefaultWorkers,
		RTol:         DefaultTolerance,
		ATol:         DefaultTolerance,
		RequireExact: true,
		LogLevel:     DefaultLogLevel,
		Area:         Area{Min: DefaultAreaMin, Max: DefaultAreaMax},
	}
}

// Load decodes YAML from r over Default() and validates the result.
// Keys absent from the document keep their default; unknown keys are rejected.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks ranges and enumerations of every field.
func (c Config) Validate() error {
	switch {
	case c.StartSize < 0:
		return invalid("start_size cannot be negative (got %d)", c.StartSize)
	case c.MaxSize < 0:
		return invalid("max_size cannot be negative (got %d)", c.MaxSize)
	case c.MaxSize > 0 && c.MaxSize < c.StartSize:
		return invalid("max_size %d is below start_size %d", c.MaxSize, c.StartSize)
	case c.SampleSize != 0 && c.SampleSize < 2:
		return invalid("sample_size must be 0 (all rays) or ≥ 2 (got %d)", c.SampleSize)
	case c.MaxCandidates < 0:
		return invalid("max_candidates cannot be negative (got %d)", c.MaxCandidates)
	case c.Workers < 1:
		return invalid("workers must be ≥ 1 (got %d)", c.Workers)
	case !nonNegative(c.RTol):
		return invalid("rtol must be finite and ≥ 0 (got %v)", c.RTol)
	case !nonNegative(c.ATol):
		return invalid("atol must be finite and ≥ 0 (got %v)", c.ATol)
	case c.Area.Min > c.Area.Max:
		return invalid("area min %d exceeds max %d", c.Area.Min, c.Area.Max)
	}
	if !validLevel(c.LogLevel) {
		return invalid("log_level must be one of %v (got %q)", LogLevels, c.LogLevel)
	}
	if c.Range != nil {
		for i := range c.Range.Min {
			if c.Range.Min[i] > c.Range.Max[i] {
				return invalid("range axis %d: min %d exceeds max %d", i, c.Range.Min[i], c.Range.Max[i])
			}
		}
	}

	return nil
}

// LogLevels lists the accepted log_level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

func validLevel(level string) bool {
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}

	return false
}

func nonNegative(x float64) bool {
	return x >= 0 && !math.IsInf(x, 0)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}
