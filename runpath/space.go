package runpath

import (
	"fmt"

	"github.com/katalvlaran/crucible/grid"
)

// direction is one of the four unit steps, tagged with its axis.
type direction struct {
	dx, dy int
	axis   Axis
}

// directions are grouped by axis, positive step first.
var directions = [4]direction{
	{dx: 1, dy: 0, axis: Horizontal},
	{dx: -1, dy: 0, axis: Horizontal},
	{dx: 0, dy: 1, axis: Vertical},
	{dx: 0, dy: -1, axis: Vertical},
}

// Space enumerates legal runs over a grid for a fixed run-length window.
// It holds no per-search state and may be shared by concurrent searches.
type Space struct {
	g      *grid.Grid
	minRun int
	maxRun int
}

// NewSpace binds a grid to the inclusive run-length window [minRun, maxRun].
// Returns ErrNilGrid or ErrBadRunBounds.
func NewSpace(g *grid.Grid, minRun, maxRun int) (*Space, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if minRun < 1 || maxRun < minRun {
		return nil, fmt.Errorf("%w: got min=%d max=%d", ErrBadRunBounds, minRun, maxRun)
	}

	return &Space{g: g, minRun: minRun, maxRun: maxRun}, nil
}

// Grid returns the underlying grid.
func (s *Space) Grid() *grid.Grid { return s.g }

// RunBounds returns the inclusive run-length window.
func (s *Space) RunBounds() (minRun, maxRun int) { return s.minRun, s.maxRun }

// Successors appends to dst every legal move out of from, where cost is the
// accumulated cost at from, and returns the extended slice.
//
// Behavior:
//  1. Only the axis perpendicular to from.Axis is opened; AxisNone opens both.
//  2. Along each of the axis' two directions, cells d = 1..maxRun are walked
//     while keeping a running sum. A cell is bounds-checked before its cost
//     is added; the walk stops at the first cell off the grid.
//  3. A move is emitted only for d ≥ minRun: shorter runs are not legal
//     stopping points.
//  4. Moves whose resulting state satisfies skip (e.g. already finalized)
//     are dropped. skip may be nil.
//
// Complexity: O(maxRun) per direction, no allocation beyond growing dst.
func (s *Space) Successors(from State, cost uint64, skip func(State) bool, dst []Move) []Move {
	for _, dir := range directions {
		// 1) Turn: only the perpendicular axis, or both from the start
		if from.Axis != AxisNone && dir.axis != from.Axis.Perpendicular() {
			continue
		}

		sum := cost
		pos := from.Pos
		// 2) Walk the run, stopping at the edge; shorter runs only add cost
		for d := 1; d <= s.maxRun; d++ {
			pos = pos.Add(dir.dx, dir.dy)
			c, ok := s.g.Lookup(pos)
			if !ok {
				break
			}
			sum += uint64(c)
			if d < s.minRun {
				continue
			}

			// 3) Emit the run unless its landing state is already final
			m := Move{To: pos, Via: dir.axis, Cost: sum}
			if skip != nil && skip(m.State()) {
				continue
			}
			dst = append(dst, m)
		}
	}

	return dst
}
