package runpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crucible/runpath"
)

func st(x, y int, a runpath.Axis) runpath.State {
	return runpath.State{Pos: at(x, y), Axis: a}
}

func TestFrontier_PopOrder(t *testing.T) {
	f := runpath.NewFrontier(0)
	_, ok := f.PopMin()
	assert.False(t, ok, "empty frontier must report ok=false")

	f.PushOrImprove(st(0, 0, runpath.Horizontal), 5, 9)
	f.PushOrImprove(st(1, 0, runpath.Horizontal), 3, 3)
	f.PushOrImprove(st(2, 0, runpath.Vertical), 7, 7)
	require.Equal(t, 3, f.Len())

	var got []uint64
	for f.Len() > 0 {
		e, ok := f.PopMin()
		require.True(t, ok)
		got = append(got, e.Priority)
	}
	assert.Equal(t, []uint64{3, 7, 9}, got)
}

func TestFrontier_TieBreakByInsertion(t *testing.T) {
	f := runpath.NewFrontier(4)
	order := []runpath.State{
		st(3, 3, runpath.Vertical),
		st(0, 0, runpath.Horizontal),
		st(2, 1, runpath.Vertical),
		st(1, 2, runpath.Horizontal),
	}
	for _, s := range order {
		f.PushOrImprove(s, 4, 4)
	}

	for _, want := range order {
		e, ok := f.PopMin()
		require.True(t, ok)
		assert.Equal(t, want, e.State)
	}
}

func TestFrontier_DecreaseKeyOnly(t *testing.T) {
	f := runpath.NewFrontier(0)
	s := st(1, 1, runpath.Vertical)

	inserted, changed := f.PushOrImprove(s, 10, 12)
	assert.True(t, inserted)
	assert.True(t, changed)

	// Worse and equal priorities are ignored.
	inserted, changed = f.PushOrImprove(s, 20, 22)
	assert.False(t, inserted)
	assert.False(t, changed)
	inserted, changed = f.PushOrImprove(s, 9, 12)
	assert.False(t, inserted)
	assert.False(t, changed)

	// Strictly better priority replaces in place.
	f.PushOrImprove(st(0, 0, runpath.Horizontal), 8, 8)
	inserted, changed = f.PushOrImprove(s, 5, 7)
	assert.False(t, inserted)
	assert.True(t, changed)
	assert.Equal(t, 2, f.Len(), "improvement must not duplicate the entry")
	assert.True(t, f.Contains(s))

	e, ok := f.PopMin()
	require.True(t, ok)
	assert.Equal(t, s, e.State)
	assert.Equal(t, uint64(5), e.Cost)
	assert.Equal(t, uint64(7), e.Priority)
	assert.False(t, f.Contains(s), "popped state must leave the index")
}

// TestFrontier_SameCellDifferentAxis checks that arrival axis is part of identity.
func TestFrontier_SameCellDifferentAxis(t *testing.T) {
	f := runpath.NewFrontier(0)
	f.PushOrImprove(st(2, 2, runpath.Horizontal), 4, 4)
	inserted, _ := f.PushOrImprove(st(2, 2, runpath.Vertical), 6, 6)
	assert.True(t, inserted)
	assert.Equal(t, 2, f.Len())
}

// TestFrontier_HeapInvariantUnderChurn interleaves pushes, improvements and
// pops and checks pops never go backwards while nothing smaller is pushed.
func TestFrontier_HeapInvariantUnderChurn(t *testing.T) {
	f := runpath.NewFrontier(0)
	for i := 0; i < 200; i++ {
		p := uint64((i*7919)%101 + 50)
		f.PushOrImprove(st(i%20, i/20, runpath.Axis(1+i%2)), p, p)
	}
	for i := 0; i < 200; i += 3 {
		f.PushOrImprove(st(i%20, i/20, runpath.Axis(1+i%2)), 49, 49-uint64(i%7))
	}

	var last uint64
	for f.Len() > 0 {
		e, _ := f.PopMin()
		assert.GreaterOrEqual(t, e.Priority, last)
		last = e.Priority
	}
}
