package grid

import (
	"fmt"
	"math"
)

// Grid is a rectangular matrix of traversal costs. It is immutable once
// built and safe for concurrent reads.
type Grid struct {
	width, height int
	cells         []uint32 // row-major: cells[y*width+x]
	minCost       uint32
}

// New constructs a Grid from a non-empty, rectangular 2D slice.
// It deep-copies the input so later changes to rows do not leak in.
// Returns ErrMalformedGrid (wrapped) for no rows, empty rows or ragged rows.
// Complexity: O(W×H) time and memory.
func New(rows [][]uint32) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}
	w := len(rows[0])
	if w == 0 {
		return nil, fmt.Errorf("%w: row 0 is empty", ErrMalformedGrid)
	}
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, y, len(row), w)
		}
	}

	g := &Grid{
		width:   w,
		height:  len(rows),
		cells:   make([]uint32, 0, w*len(rows)),
		minCost: math.MaxUint32,
	}
	for _, row := range rows {
		for _, v := range row {
			if v < g.minCost {
				g.minCost = v
			}
		}
		g.cells = append(g.cells, row...)
	}

	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// MinCost returns the smallest cell cost in the grid.
func (g *Grid) MinCost() uint32 { return g.minCost }

// InBounds reports whether c lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(c Coordinate) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Cost returns the traversal cost of c, or ErrOutOfBounds.
// Complexity: O(1).
func (g *Grid) Cost(c Coordinate) (uint32, error) {
	if !g.InBounds(c) {
		return 0, fmt.Errorf("%w: %s not in %dx%d", ErrOutOfBounds, c, g.width, g.height)
	}

	return g.cells[g.index(c)], nil
}

// Lookup returns the cost of c and whether c is in bounds.
// It is the allocation-free variant of Cost used on hot paths.
func (g *Grid) Lookup(c Coordinate) (uint32, bool) {
	if !g.InBounds(c) {
		return 0, false
	}

	return g.cells[g.index(c)], true
}

// TopLeft returns (0,0).
func (g *Grid) TopLeft() Coordinate { return Coordinate{} }

// BottomRight returns (W-1,H-1).
func (g *Grid) BottomRight() Coordinate {
	return Coordinate{X: g.width - 1, Y: g.height - 1}
}

// Border lists every edge cell exactly once, clockwise from (0,0).
// Complexity: O(W+H).
func (g *Grid) Border() []Coordinate {
	if g.width == 1 || g.height == 1 {
		out := make([]Coordinate, 0, len(g.cells))
		g.Each(func(c Coordinate, _ uint32) {
			out = append(out, c)
		})
		return out
	}

	out := make([]Coordinate, 0, 2*(g.width+g.height)-4)
	for x := 0; x < g.width; x++ {
		out = append(out, Coordinate{X: x, Y: 0})
	}
	for y := 1; y < g.height; y++ {
		out = append(out, Coordinate{X: g.width - 1, Y: y})
	}
	for x := g.width - 2; x >= 0; x-- {
		out = append(out, Coordinate{X: x, Y: g.height - 1})
	}
	for y := g.height - 2; y >= 1; y-- {
		out = append(out, Coordinate{X: 0, Y: y})
	}

	return out
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(c Coordinate, cost uint32)) {
	for i, v := range g.cells {
		fn(g.coordinate(i), v)
	}
}

// Rows returns a deep copy of the cost matrix.
func (g *Grid) Rows() [][]uint32 {
	out := make([][]uint32, g.height)
	for y := range out {
		out[y] = make([]uint32, g.width)
		copy(out[y], g.cells[y*g.width:(y+1)*g.width])
	}

	return out
}

// index maps c to its row-major index: y*Width + x.
func (g *Grid) index(c Coordinate) int {
	return c.Y*g.width + c.X
}

// coordinate converts a row-major index back to a Coordinate.
func (g *Grid) coordinate(i int) Coordinate {
	return Coordinate{X: i % g.width, Y: i / g.width}
}
