package runpath

import "github.com/katalvlaran/crucible/grid"

// Heuristic estimates the remaining cost from a cell to the end cell.
// Search stays exact only for admissible, consistent heuristics.
type Heuristic func(from, to grid.Coordinate) uint64

// Zero always returns 0, which turns Search into plain Dijkstra.
func Zero(_, _ grid.Coordinate) uint64 { return 0 }

// Manhattan returns the Manhattan distance between from and to.
// It is admissible when every cell costs at least 1: each remaining cell
// must be entered once and costs at least one unit.
func Manhattan(from, to grid.Coordinate) uint64 {
	return uint64(from.Manhattan(to))
}

// ScaledManhattan returns Manhattan distance times the grid's cheapest cell.
// Unlike Manhattan it stays admissible on grids containing 0-cost cells.
func ScaledManhattan(g *grid.Grid) Heuristic {
	if g == nil {
		return Zero
	}
	unit := uint64(g.MinCost())

	return func(from, to grid.Coordinate) uint64 {
		return unit * uint64(from.Manhattan(to))
	}
}

// HeuristicByName maps "zero", "manhattan" and "scaled" to a Heuristic.
// "scaled" needs g. "manhattan" falls back to ScaledManhattan(g) when g has
// a 0-cost cell, so every named heuristic is admissible for g.
// Unknown names return ok=false.
func HeuristicByName(name string, g *grid.Grid) (h Heuristic, ok bool) {
	switch name {
	case "", "zero", "dijkstra":
		return Zero, true
	case "manhattan", "astar":
		if g != nil && g.MinCost() == 0 {
			return ScaledManhattan(g), true
		}
		return Manhattan, true
	case "scaled":
		return ScaledManhattan(g), true
	default:
		return nil, false
	}
}
