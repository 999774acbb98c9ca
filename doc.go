// Package crucible finds least-cost routes across cost grids when movement
// is restricted to straight runs of bounded length with a turn between runs.
//
// What is crucible?
//
//	A small search toolkit plus the surfaces around it:
//		• grid      – immutable, row-major cost grid; digit or field parsing
//		• runpath   – state space, indexed frontier, Dijkstra/A* and sweeps
//		• cmd/crucible – CLI: solve, sweep, run (HCL scenarios), serve
//
// Internal packages carry configuration (YAML + env), HCL scenario files,
// a BadgerDB result cache and the gin HTTP API.
//
// Quick example:
//
//	g, _ := grid.ParseString("241\n321\n325")
//	res, _ := runpath.Search(ctx, g, g.TopLeft(), g.BottomRight(),
//		runpath.WithRunBounds(1, 3), runpath.WithManhattan())
//	fmt.Println(res.Cost) // 11
//
// A search state is (cell, arrival axis). Each successor is a whole run of
// MinRun..MaxRun cells on the other axis, so no step counter is needed and
// the state space stays at 2·W·H + 1.
//
//	go install github.com/katalvlaran/crucible/cmd/crucible@latest
package crucible
