package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid construction and lookups.
var (
	// ErrMalformedGrid indicates the input cannot form a rectangular cost grid.
	ErrMalformedGrid = errors.New("grid: malformed grid")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
)

// Coordinate is a 0-based cell position. X runs across columns, Y down rows.
type Coordinate struct {
	X, Y int
}

// Add returns c shifted by (dx,dy).
func (c Coordinate) Add(dx, dy int) Coordinate {
	return Coordinate{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns |c.X-o.X| + |c.Y-o.Y|.
func (c Coordinate) Manhattan(o Coordinate) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// String formats c as "(x,y)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// Format selects how Parse decodes a line into cells.
type Format int

const (
	// Digits treats every rune of a line as one decimal digit cell (0..9).
	Digits Format = iota
	// Fields treats a line as whitespace-separated unsigned integers.
	Fields
)

// String returns the lowercase name used by config files and flags.
func (f Format) String() string {
	switch f {
	case Digits:
		return "digits"
	case Fields:
		return "fields"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps "digits" or "fields" to a Format. Empty selects Digits.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "digits":
		return Digits, nil
	case "fields":
		return Fields, nil
	default:
		return Digits, fmt.Errorf("grid: unknown format %q", s)
	}
}

// ParseOptions tunes Parse.
type ParseOptions struct {
	// Format selects the cell encoding. Default Digits.
	Format Format
}

// ParseOption is a functional option for Parse.
type ParseOption func(*ParseOptions)

// WithFormat selects the cell encoding.
func WithFormat(f Format) ParseOption {
	return func(o *ParseOptions) {
		o.Format = f
	}
}

// DefaultParseOptions returns ParseOptions{Format: Digits}.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{Format: Digits}
}
