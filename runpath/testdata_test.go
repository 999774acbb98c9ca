package runpath_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crucible/grid"
)

// crucible is the 13×13 example grid used throughout the tests.
const crucible = `2413432311323
3215453535623
3255245654254
3446585845452
4546657867536
1438598798454
4457876987766
3637877979653
4654967986887
4564679986453
1224686865563
2546548887735
4322674655533
`

// corridor punishes everything except the top row and right column.
const corridor = `111111111111
999999999991
999999999991
999999999991
999999999991
`

func mustParse(t testing.TB, s string) *grid.Grid {
	t.Helper()
	g, err := grid.ParseString(s)
	require.NoError(t, err)

	return g
}

func at(x, y int) grid.Coordinate { return grid.Coordinate{X: x, Y: y} }
