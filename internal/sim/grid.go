package sim

import (
	"math"

	"github.com/vovakirdan/tui-roids/internal/core"
	"github.com/vovakirdan/tui-roids/internal/world"
)

// grid is a uniform broad-phase grid over the world. Cell size must be at
// least the largest sum of two collision radii so every overlap is found in
// the 3x3 neighbourhood. Neighbourhoods wrap at the world edges and bodies
// outside the bounds are clamped into the border cells.
type grid struct {
	originX, originY float64
	invCellSize      float64
	cols, rows       int
	cells            [][]int

	// stamp[i] == query id marks item i as already reported in a query
	stamp   []uint32
	queryID uint32
}

func newGrid(w world.World, cellSize float64) *grid {
	cols := max(int(math.Ceil(w.Width/cellSize)), 1)
	rows := max(int(math.Ceil(w.Height/cellSize)), 1)
	return &grid{
		originX:     w.MinX(),
		originY:     w.MinY(),
		invCellSize: 1 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

func (g *grid) clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *grid) insert(p core.Vec2, item int) {
	col, row := g.cellOf(p)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], item)
	if item >= len(g.stamp) {
		g.stamp = append(g.stamp, make([]uint32, item-len(g.stamp)+1)...)
	}
}

// around calls fn once for each item in the wrapped 3x3 neighbourhood of p.
func (g *grid) around(p core.Vec2, fn func(item int)) {
	g.queryID++
	if g.queryID == 0 {
		clear(g.stamp)
		g.queryID = 1
	}
	col, row := g.cellOf(p)
	for dr := -1; dr <= 1; dr++ {
		r := (row + dr + g.rows) % g.rows
		for dc := -1; dc <= 1; dc++ {
			c := (col + dc + g.cols) % g.cols
			for _, item := range g.cells[r*g.cols+c] {
				if g.stamp[item] == g.queryID {
					continue
				}
				g.stamp[item] = g.queryID
				fn(item)
			}
		}
	}
}

func (g *grid) cellOf(p core.Vec2) (col, row int) {
	col = core.Clamp(int((p.X-g.originX)*g.invCellSize), 0, g.cols-1)
	row = core.Clamp(int((p.Y-g.originY)*g.invCellSize), 0, g.rows-1)
	return col, row
}
