// Package runpath finds least-cost paths over a cost grid when movement is
// restricted to straight runs of bounded length with a turn between runs.
//
// Overview:
//
//   - A path is a sequence of axis-aligned runs. Each run covers between
//     MinRun and MaxRun cells and must be followed by a run on the
//     perpendicular axis: no reversals and no continuing straight.
//   - Entering a cell costs that cell's value; the start cell is free unless
//     WithStartCost is set.
//   - A path has at least one run. With start == end Search looks for the
//     cheapest loop back to the start cell.
//   - Search returns only the minimal total cost, never the path.
//
// How:
//
//   - Space generates successors as whole runs instead of single steps, so the
//     state is just (position, arrival axis) and never carries a step counter.
//     Per direction the run costs are accumulated in one pass, O(MaxRun).
//   - Frontier is an indexed min-heap with decrease-key (heap.Fix) and
//     insertion-order tie-breaking, so each state appears at most once.
//   - Search is Dijkstra with an optional A* heuristic. Zero (the default)
//     gives Dijkstra; Manhattan and ScaledManhattan give A*. Both variants
//     return the same cost for admissible, consistent heuristics.
//   - Sweep fans independent searches out over many start cells with an
//     errgroup and keeps the cheapest.
//
// Typical configurations:
//
//	runpath.Search(ctx, g, start, end, runpath.WithRunBounds(1, 3), runpath.WithManhattan())
//	runpath.Search(ctx, g, start, end, runpath.WithRunBounds(4, 10))
//
// Complexity:
//
//   - States:  S ≤ 2·W·H + 1 (two arrival axes per cell plus the start).
//   - Time:    O(S·MaxRun·log S).
//   - Space:   O(S).
//
// Errors (sentinel):
//
//   - ErrNilGrid:        nil *grid.Grid.
//   - ErrBadRunBounds:   bounds outside 1 ≤ MinRun ≤ MaxRun.
//   - ErrBadHeuristic:   nil heuristic.
//   - ErrNoStarts:       Sweep without start cells.
//   - grid.ErrOutOfBounds (wrapped): start or end off the grid.
//
// Unreachability is not an error: Result.Found is false.
//
// Observability:
//
//   - One slog record per search (Debug) or sweep (Info) via WithLogger.
//   - Prometheus counters/histograms registered on the default registry.
//   - An OpenTelemetry span per Search and Sweep on the global provider.
//
// Thread safety:
//
//   - Search and Sweep are safe to call concurrently on one shared Grid.
//   - A Frontier belongs to exactly one search and is not safe for sharing.
package runpath
