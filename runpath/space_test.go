package runpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crucible/grid"
	"github.com/katalvlaran/crucible/runpath"
)

func TestNewSpace_Errors(t *testing.T) {
	g := mustParse(t, "12\n34\n")

	_, err := runpath.NewSpace(nil, 1, 3)
	assert.ErrorIs(t, err, runpath.ErrNilGrid)

	for _, b := range [][2]int{{0, 3}, {-1, 2}, {4, 3}, {0, 0}} {
		_, err = runpath.NewSpace(g, b[0], b[1])
		assert.ErrorIs(t, err, runpath.ErrBadRunBounds, "bounds %v", b)
	}

	s, err := runpath.NewSpace(g, 2, 2)
	require.NoError(t, err)
	minRun, maxRun := s.RunBounds()
	assert.Equal(t, 2, minRun)
	assert.Equal(t, 2, maxRun)
	assert.Same(t, g, s.Grid())
}

// TestSuccessors_StartLongRuns checks the first expansion under (4,5) bounds:
// only runs of 4 or 5 cells are legal stopping points.
func TestSuccessors_StartLongRuns(t *testing.T) {
	s, err := runpath.NewSpace(mustParse(t, crucible), 4, 5)
	require.NoError(t, err)

	got := s.Successors(runpath.State{Pos: at(0, 0), Axis: runpath.AxisNone}, 0, nil, nil)
	want := []runpath.Move{
		{To: at(4, 0), Via: runpath.Horizontal, Cost: 12},
		{To: at(5, 0), Via: runpath.Horizontal, Cost: 15},
		{To: at(0, 4), Via: runpath.Vertical, Cost: 13},
		{To: at(0, 5), Via: runpath.Vertical, Cost: 14},
	}
	assert.ElementsMatch(t, want, got)
}

// TestSuccessors_StartCostCarried checks that the incoming cost is the base of
// every run and runs are cumulative.
func TestSuccessors_StartCostCarried(t *testing.T) {
	s, err := runpath.NewSpace(mustParse(t, crucible), 1, 3)
	require.NoError(t, err)

	got := s.Successors(runpath.State{Pos: at(0, 0), Axis: runpath.AxisNone}, 2, nil, nil)
	want := []runpath.Move{
		{To: at(1, 0), Via: runpath.Horizontal, Cost: 6},
		{To: at(2, 0), Via: runpath.Horizontal, Cost: 7},
		{To: at(3, 0), Via: runpath.Horizontal, Cost: 10},
		{To: at(0, 1), Via: runpath.Vertical, Cost: 5},
		{To: at(0, 2), Via: runpath.Vertical, Cost: 8},
		{To: at(0, 3), Via: runpath.Vertical, Cost: 11},
	}
	assert.ElementsMatch(t, want, got)
}

// TestSuccessors_ForcedTurn checks that an arrival axis closes itself.
func TestSuccessors_ForcedTurn(t *testing.T) {
	g := mustParse(t, "123\n456\n789\n")
	s, err := runpath.NewSpace(g, 1, 2)
	require.NoError(t, err)

	got := s.Successors(runpath.State{Pos: at(1, 1), Axis: runpath.Horizontal}, 10, nil, nil)
	want := []runpath.Move{
		{To: at(1, 2), Via: runpath.Vertical, Cost: 18},
		{To: at(1, 0), Via: runpath.Vertical, Cost: 12},
	}
	assert.ElementsMatch(t, want, got)

	got = s.Successors(runpath.State{Pos: at(1, 1), Axis: runpath.Vertical}, 0, nil, nil)
	want = []runpath.Move{
		{To: at(2, 1), Via: runpath.Horizontal, Cost: 6},
		{To: at(0, 1), Via: runpath.Horizontal, Cost: 4},
	}
	assert.ElementsMatch(t, want, got)
}

// TestSuccessors_Boundary checks that runs stop at the grid edge.
func TestSuccessors_Boundary(t *testing.T) {
	g := mustParse(t, "1111\n")
	s, err := runpath.NewSpace(g, 2, 10)
	require.NoError(t, err)

	got := s.Successors(runpath.State{Pos: at(1, 0), Axis: runpath.Vertical}, 0, nil, nil)
	assert.ElementsMatch(t, []runpath.Move{
		{To: at(3, 0), Via: runpath.Horizontal, Cost: 2},
	}, got, "left run of 1 is too short, right runs end at x=3")

	got = s.Successors(runpath.State{Pos: at(1, 0), Axis: runpath.Horizontal}, 0, nil, nil)
	assert.Empty(t, got, "a one-row grid has no vertical runs")
}

// TestSuccessors_Skip checks that finalized states are not generated.
func TestSuccessors_Skip(t *testing.T) {
	s, err := runpath.NewSpace(mustParse(t, crucible), 1, 3)
	require.NoError(t, err)

	skip := func(st runpath.State) bool { return st.Axis == runpath.Horizontal }
	got := s.Successors(runpath.State{Pos: at(0, 0)}, 0, skip, nil)
	require.Len(t, got, 3)
	for _, m := range got {
		assert.Equal(t, runpath.Vertical, m.Via)
	}
}

// TestSuccessors_Conformance enumerates every move from every state of a
// random-looking grid and checks run length, axis and cost against a naive
// recomputation.
func TestSuccessors_Conformance(t *testing.T) {
	g := mustParse(t, crucible)
	bounds := [][2]int{{1, 1}, {1, 3}, {2, 4}, {4, 10}, {13, 13}}

	for _, b := range bounds {
		s, err := runpath.NewSpace(g, b[0], b[1])
		require.NoError(t, err)

		g.Each(func(pos grid.Coordinate, _ uint32) {
			for _, axis := range []runpath.Axis{runpath.AxisNone, runpath.Horizontal, runpath.Vertical} {
				from := runpath.State{Pos: pos, Axis: axis}
				moves := s.Successors(from, 100, nil, nil)
				assert.Len(t, moves, naiveCount(g, from, b[0], b[1]), "count from %s bounds %v", from, b)

				for _, m := range moves {
					dx, dy := m.To.X-pos.X, m.To.Y-pos.Y
					require.True(t, dx == 0 || dy == 0, "diagonal move %v from %s", m, from)
					length := abs(dx) + abs(dy)
					assert.GreaterOrEqual(t, length, b[0])
					assert.LessOrEqual(t, length, b[1])
					assert.NotEqual(t, axis, m.Via, "continued along arrival axis from %s", from)
					if dy == 0 {
						assert.Equal(t, runpath.Horizontal, m.Via)
					} else {
						assert.Equal(t, runpath.Vertical, m.Via)
					}
					assert.Equal(t, 100+naiveRunCost(g, pos, m.To), m.Cost, "cost of %v from %s", m, from)
				}
			}
		})
	}
}

func naiveCount(g *grid.Grid, from runpath.State, minRun, maxRun int) int {
	n := 0
	for _, d := range [][3]int{{1, 0, 1}, {-1, 0, 1}, {0, 1, 2}, {0, -1, 2}} {
		axis := runpath.Axis(d[2])
		if from.Axis == axis {
			continue
		}
		for k := minRun; k <= maxRun; k++ {
			if g.InBounds(from.Pos.Add(d[0]*k, d[1]*k)) {
				n++
			}
		}
	}

	return n
}

// naiveRunCost sums the cells strictly after from up to and including to.
func naiveRunCost(g *grid.Grid, from, to grid.Coordinate) uint64 {
	dx, dy := sign(to.X-from.X), sign(to.Y-from.Y)
	var sum uint64
	for c := from; c != to; {
		c = c.Add(dx, dy)
		v, err := g.Cost(c)
		if err != nil {
			panic(err)
		}
		sum += uint64(v)
	}

	return sum
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

func TestAxis(t *testing.T) {
	assert.Equal(t, runpath.Vertical, runpath.Horizontal.Perpendicular())
	assert.Equal(t, runpath.Horizontal, runpath.Vertical.Perpendicular())
	assert.Equal(t, runpath.AxisNone, runpath.AxisNone.Perpendicular())
	assert.Equal(t, "horizontal", runpath.Horizontal.String())
	assert.Equal(t, "(1,2)/vertical", runpath.State{Pos: at(1, 2), Axis: runpath.Vertical}.String())
}
