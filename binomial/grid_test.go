package binomial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSetAndRow(t *testing.T) {
	g := NewGrid(3)
	require.Equal(t, 3, g.MaxTime())

	counter := 0.0
	for timeIndex := 0; timeIndex <= 3; timeIndex++ {
		for downs := 0; downs <= timeIndex; downs++ {
			g.Set(timeIndex, downs, counter)
			counter++
		}
	}

	assert.Equal(t, []float64{0}, g.Row(0))
	assert.Equal(t, []float64{1, 2}, g.Row(1))
	assert.Equal(t, []float64{3, 4, 5}, g.Row(2))
	assert.Equal(t, []float64{6, 7, 8, 9}, g.Row(3))
	assert.Equal(t, 4.0, g.At(2, 1))

	fresh := g.RowCopy(2)
	fresh[0] = -1
	assert.Equal(t, 3.0, g.At(2, 0), "RowCopy must not alias the grid")
}

func TestGridPanicsOutOfRange(t *testing.T) {
	g := NewGrid(2)
	assert.Panics(t, func() { g.At(3, 0) })
	assert.Panics(t, func() { g.At(-1, 0) })
	assert.Panics(t, func() { g.At(1, 2) })
	assert.Panics(t, func() { g.Set(2, -1, 0) })
	assert.Panics(t, func() { g.Row(3) })
	assert.Panics(t, func() { NewGrid(-1) })
}

func TestBoolGrid(t *testing.T) {
	g := NewBoolGrid(2)
	assert.False(t, g.At(2, 1))
	g.Set(2, 1, true)
	assert.True(t, g.At(2, 1))
	assert.False(t, g.At(2, 0))
	assert.Panics(t, func() { g.At(1, 2) })
}
