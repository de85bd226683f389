package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/pkg/dem"
)

// Build partitions the raster into a grid of cells of roughly size samples
// and emits two triangles per cell:
//
//	 ___
//	|B /|
//	| / |
//	|/ A|
//	 ---
//
// Sizes outside (0, min(width-1, length-1)] are clamped, so every positive
// size yields a valid mesh. With useHeight false all elevations are zero.
func Build(m *dem.Map, size int, useHeight bool, opts Options) (*Mesh, error) {
	if m.Width < 2 || m.Length < 2 {
		return nil, fmt.Errorf("%w: %dx%d", dem.ErrInvalidDimensions, m.Width, m.Length)
	}

	size = clampCellSize(size, m.Width-1, m.Length-1)
	cols, cellWidth := gridDimension(m.Width-1, size)
	rows, cellLength := gridDimension(m.Length-1, size)

	msh := newMesh(m, opts)
	msh.rows, msh.cols = rows, cols

	// Corner coordinates are computed from grid indices so adjacent cells
	// produce bit-identical shared vertices.
	stepX := cellWidth * m.CellWidth
	stepY := cellLength * m.CellLength
	xs := make([]float64, cols+1)
	for c := range xs {
		xs[c] = m.WestBorder + float64(c)*stepX
	}
	ys := make([]float64, rows+1)
	for r := range ys {
		ys[r] = m.NorthBorder - float64(r)*stepY
	}

	for r := range rows {
		for c := range cols {
			if err := msh.generateCell(r, c, xs, ys, useHeight); err != nil {
				return nil, err
			}
		}
	}

	msh.log.Debug("initial mesh built",
		zap.Int("cell_size", size),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Float64("cell_width", stepX),
		zap.Float64("cell_length", stepY),
		zap.Int("triangles", msh.Len()))

	if opts.Verify {
		if err := msh.Verify(); err != nil {
			return nil, err
		}
	}
	return msh, nil
}

// clampCellSize limits size to the smaller interior extent.
func clampCellSize(size, extentX, extentY int) int {
	if size > extentX || size > extentY {
		size = min(extentX, extentY)
	}
	if size < 1 {
		size = 1
	}
	return size
}

// gridDimension returns the cell count along one axis and the resulting
// cell size in samples. A remainder of more than half a cell adds a cell;
// a smaller one is absorbed.
func gridDimension(extent, size int) (int, float64) {
	count := extent / size
	if rem := extent % size; rem != 0 && float64(rem)/float64(size) > 0.5 {
		count++
	}
	return count, float64(extent) / float64(count)
}

// generateCell allocates triangles A (slot 2n) and B (slot 2n+1) of cell
// n = r*cols + c and links them to the neighbouring cells.
func (m *Mesh) generateCell(r, c int, xs, ys []float64, useHeight bool) error {
	n := r*m.cols + c
	west, east := xs[c], xs[c+1]
	north, south := ys[r], ys[r+1]

	ai, err := m.store.Allocate()
	if err != nil {
		return err
	}
	bi, err := m.store.Allocate()
	if err != nil {
		return err
	}

	a := m.store.Get(ai)
	a.Vertices = [3]Point{
		m.vertex(west, south, useHeight),
		m.vertex(east, south, useHeight),
		m.vertex(east, north, useHeight),
	}
	a.Neighbours[0] = None
	if r != m.rows-1 {
		a.Neighbours[0] = RefTo((n+m.cols)*2 + 1)
	}
	a.Neighbours[1] = None
	if c != m.cols-1 {
		a.Neighbours[1] = RefTo((n+1)*2 + 1)
	}
	a.Neighbours[2] = RefTo(bi)

	b := m.store.Get(bi)
	b.Vertices = [3]Point{
		m.vertex(east, north, useHeight),
		m.vertex(west, north, useHeight),
		m.vertex(west, south, useHeight),
	}
	b.Neighbours[0] = None
	if r != 0 {
		b.Neighbours[0] = RefTo((n - m.cols) * 2)
	}
	b.Neighbours[1] = None
	if c != 0 {
		b.Neighbours[1] = RefTo((n - 1) * 2)
	}
	b.Neighbours[2] = RefTo(ai)

	markBorderPoints(a, b, r, c, m.rows, m.cols)
	return nil
}

func (m *Mesh) vertex(x, y float64, useHeight bool) Point {
	p := Point{X: x, Y: y}
	if useHeight {
		p.Z = m.raster.Interpolate(x, y)
	}
	return p
}
