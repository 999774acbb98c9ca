package grid_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crucible/grid"
)

//----------------------------------------------------------------------------//
// New and InBounds Tests
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New rejects empty or ragged inputs.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name string
		rows [][]uint32
	}{
		{"NoRows", [][]uint32{}},
		{"NilRows", nil},
		{"EmptyCols", [][]uint32{{}}},
		{"NonRectangular", [][]uint32{{1, 2}, {3}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.New(tc.rows)
			if !errors.Is(err, grid.ErrMalformedGrid) {
				t.Errorf("New(%v) error = %v; want ErrMalformedGrid", tc.rows, err)
			}
		})
	}
}

// TestNew_DeepCopy ensures later mutation of the input does not leak into the grid.
func TestNew_DeepCopy(t *testing.T) {
	rows := [][]uint32{{1, 2}, {3, 4}}
	g, err := grid.New(rows)
	require.NoError(t, err)

	rows[0][0] = 99
	v, err := g.Cost(grid.Coordinate{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)

	out := g.Rows()
	out[1][1] = 42
	v, _ = g.Cost(grid.Coordinate{X: 1, Y: 1})
	assert.Equal(t, uint32(4), v, "Rows must return a copy")
}

// TestInBounds checks InBounds and Cost on a 3×2 grid.
func TestInBounds(t *testing.T) {
	g, err := grid.New([][]uint32{
		{0, 1, 2},
		{3, 4, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, 6, g.Len())

	valid := []grid.Coordinate{{X: 0, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}}
	for _, c := range valid {
		assert.True(t, g.InBounds(c), "InBounds%s", c)
	}
	invalid := []grid.Coordinate{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: -1}}
	for _, c := range invalid {
		assert.False(t, g.InBounds(c), "InBounds%s", c)
		_, err := g.Cost(c)
		assert.ErrorIs(t, err, grid.ErrOutOfBounds)
		_, ok := g.Lookup(c)
		assert.False(t, ok)
	}

	v, err := g.Cost(grid.Coordinate{X: 2, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, uint32(5), v)
}

// TestMinCost covers digit grids and costs above 9.
func TestMinCost(t *testing.T) {
	g, err := grid.New([][]uint32{{7, 1000}, {3, 4_000_000_000}})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), g.MinCost())

	v, ok := g.Lookup(grid.Coordinate{X: 1, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, uint32(4_000_000_000), v)
}

// TestBorder checks that every edge cell is listed once.
func TestBorder(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		want int
	}{
		{"1x1", 1, 1, 1},
		{"1x4", 1, 4, 4},
		{"5x1", 5, 1, 5},
		{"2x2", 2, 2, 4},
		{"4x3", 4, 3, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := make([][]uint32, tc.h)
			for y := range rows {
				rows[y] = make([]uint32, tc.w)
			}
			g, err := grid.New(rows)
			require.NoError(t, err)

			border := g.Border()
			assert.Len(t, border, tc.want)
			seen := make(map[grid.Coordinate]bool)
			for _, c := range border {
				assert.False(t, seen[c], "duplicate %s", c)
				seen[c] = true
				onEdge := c.X == 0 || c.Y == 0 || c.X == tc.w-1 || c.Y == tc.h-1
				assert.True(t, onEdge, "%s is not on the border", c)
			}
		})
	}
}

// TestCoordinate covers the small value helpers.
func TestCoordinate(t *testing.T) {
	c := grid.Coordinate{X: 2, Y: 5}
	assert.Equal(t, grid.Coordinate{X: 5, Y: 1}, c.Add(3, -4))
	assert.Equal(t, 7, c.Manhattan(grid.Coordinate{X: 0, Y: 0}))
	assert.Equal(t, 7, grid.Coordinate{}.Manhattan(c))
	assert.Equal(t, "(2,5)", c.String())
}

// TestConcurrentReads runs lookups from many goroutines; run with -race.
func TestConcurrentReads(t *testing.T) {
	g, err := grid.New([][]uint32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var sum uint32
			g.Each(func(_ grid.Coordinate, v uint32) { sum += v })
			assert.Equal(t, uint32(21), sum)
		}()
	}
	wg.Wait()
}
