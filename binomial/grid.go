package binomial

import "fmt"

// Grid is a triangular table indexed by (timeIndex, downs), where row t has
// t+1 cells ordered from all ups (index 0) to all downs (index t). Rows are
// packed into a single flat buffer with computed offsets, so no
// uninitialized cell is addressable. Like gonum's mat types, Grid panics on
// an out-of-range index; callers that receive indices from outside validate
// them first.
type Grid struct {
	maxTime int
	cells   []float64
}

// NewGrid returns a zeroed triangular grid with rows 0..maxTime.
func NewGrid(maxTime int) *Grid {
	if maxTime < 0 {
		panic(fmt.Sprintf("binomial: negative grid size %d", maxTime))
	}
	return &Grid{
		maxTime: maxTime,
		cells:   make([]float64, rowOffset(maxTime+1)),
	}
}

// rowOffset returns the index of the first cell of row t.
func rowOffset(t int) int { return t * (t + 1) / 2 }

// MaxTime returns the index of the last row.
func (g *Grid) MaxTime() int { return g.maxTime }

// At returns the cell at (timeIndex, downs).
func (g *Grid) At(timeIndex, downs int) float64 {
	g.checkIndex(timeIndex, downs)
	return g.cells[rowOffset(timeIndex)+downs]
}

// Set stores v at (timeIndex, downs).
func (g *Grid) Set(timeIndex, downs int, v float64) {
	g.checkIndex(timeIndex, downs)
	g.cells[rowOffset(timeIndex)+downs] = v
}

// Row returns the row at timeIndex as a view into the grid's buffer. The
// returned slice must not be modified by readers of a shared grid.
func (g *Grid) Row(timeIndex int) []float64 {
	if timeIndex < 0 || timeIndex > g.maxTime {
		panic(fmt.Sprintf("binomial: row %d out of range [0, %d]", timeIndex, g.maxTime))
	}
	return g.cells[rowOffset(timeIndex) : rowOffset(timeIndex)+timeIndex+1]
}

// RowCopy returns a fresh copy of the row at timeIndex.
func (g *Grid) RowCopy(timeIndex int) []float64 {
	row := g.Row(timeIndex)
	out := make([]float64, len(row))
	copy(out, row)
	return out
}

func (g *Grid) checkIndex(timeIndex, downs int) {
	if timeIndex < 0 || timeIndex > g.maxTime {
		panic(fmt.Sprintf("binomial: row %d out of range [0, %d]", timeIndex, g.maxTime))
	}
	if downs < 0 || downs > timeIndex {
		panic(fmt.Sprintf("binomial: column %d out of range [0, %d]", downs, timeIndex))
	}
}

// BoolGrid is the boolean companion of Grid, used for exercise and
// alive/knocked flags.
type BoolGrid struct {
	maxTime int
	cells   []bool
}

// NewBoolGrid returns a false-initialized triangular flag grid with rows
// 0..maxTime.
func NewBoolGrid(maxTime int) *BoolGrid {
	if maxTime < 0 {
		panic(fmt.Sprintf("binomial: negative grid size %d", maxTime))
	}
	return &BoolGrid{
		maxTime: maxTime,
		cells:   make([]bool, rowOffset(maxTime+1)),
	}
}

// MaxTime returns the index of the last row.
func (g *BoolGrid) MaxTime() int { return g.maxTime }

// At returns the flag at (timeIndex, downs).
func (g *BoolGrid) At(timeIndex, downs int) bool {
	g.checkIndex(timeIndex, downs)
	return g.cells[rowOffset(timeIndex)+downs]
}

// Set stores v at (timeIndex, downs).
func (g *BoolGrid) Set(timeIndex, downs int, v bool) {
	g.checkIndex(timeIndex, downs)
	g.cells[rowOffset(timeIndex)+downs] = v
}

func (g *BoolGrid) checkIndex(timeIndex, downs int) {
	if timeIndex < 0 || timeIndex > g.maxTime {
		panic(fmt.Sprintf("binomial: row %d out of range [0, %d]", timeIndex, g.maxTime))
	}
	if downs < 0 || downs > timeIndex {
		panic(fmt.Sprintf("binomial: column %d out of range [0, %d]", downs, timeIndex))
	}
}
