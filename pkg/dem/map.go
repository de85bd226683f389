// Package dem provides digital elevation rasters and the readers that load
// them.
package dem

import (
	"errors"
	"fmt"
)

// Map errors.
var (
	ErrInvalidDimensions = errors.New("invalid raster dimensions")
	ErrSampleCount       = errors.New("sample count does not match raster dimensions")
)

// Hemisphere markers.
const (
	North byte = 'N'
	South byte = 'S'
)

// Corner indices of a raster cell, matching the order of GAT-style corner
// tables: [0]=south-west, [1]=south-east, [2]=north-west, [3]=north-east.
const (
	CornerSW = iota
	CornerSE
	CornerNW
	CornerNE
)

// Map is an elevation raster with its georeference.
//
// Samples are stored row-major starting from the northern row. Sample
// (col, row) sits at planar position
// (WestBorder + col*CellWidth, NorthBorder - row*CellLength).
type Map struct {
	Name string

	Width  int // samples per row (x axis)
	Length int // rows (y axis)

	CellWidth  float64 // map units between adjacent columns
	CellLength float64 // map units between adjacent rows

	NorthBorder float64
	WestBorder  float64

	Zone       int
	Hemisphere byte

	// UTM records whether mesh coordinates derived from this map have been
	// projected. It starts false for every freshly built mesh.
	UTM bool

	Samples []float64
	Voids   int // samples that were missing in the source and set to 0
}

// NewMap creates a map over the given samples with unit cell sizes and the
// origin at (0, length-1) so sample positions match grid coordinates.
func NewMap(width, length int, samples []float64) (*Map, error) {
	if width < 2 || length < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, length)
	}
	if len(samples) != width*length {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSampleCount, len(samples), width*length)
	}
	return &Map{
		Width:       width,
		Length:      length,
		CellWidth:   1,
		CellLength:  1,
		NorthBorder: float64(length - 1),
		WestBorder:  0,
		Hemisphere:  North,
		Samples:     samples,
	}, nil
}

// At returns the raw sample at (col, row), clamping to the raster.
func (m *Map) At(col, row int) float64 {
	col = clampi(col, 0, m.Width-1)
	row = clampi(row, 0, m.Length-1)
	return m.Samples[row*m.Width+col]
}

// Corner returns one corner sample of the raster cell whose north-west
// sample is (col, row).
func (m *Map) Corner(col, row, corner int) float64 {
	switch corner {
	case CornerSW:
		return m.At(col, row+1)
	case CornerSE:
		return m.At(col+1, row+1)
	case CornerNW:
		return m.At(col, row)
	case CornerNE:
		return m.At(col+1, row)
	}
	return 0
}

// Interpolate returns the bilinearly interpolated elevation at a planar
// position. Positions outside the raster are clamped to its edge.
func (m *Map) Interpolate(x, y float64) float64 {
	fcol := clampf((x-m.WestBorder)/m.CellWidth, 0, float64(m.Width-1))
	frow := clampf((m.NorthBorder-y)/m.CellLength, 0, float64(m.Length-1))

	col := int(fcol)
	row := int(frow)
	if col >= m.Width-1 {
		col = m.Width - 2
	}
	if row >= m.Length-1 {
		row = m.Length - 2
	}

	fx := fcol - float64(col)
	fy := frow - float64(row)

	sw := m.Corner(col, row, CornerSW)
	se := m.Corner(col, row, CornerSE)
	nw := m.Corner(col, row, CornerNW)
	ne := m.Corner(col, row, CornerNE)

	// Written as a + (b-a)*t so constant patches interpolate exactly.
	north := nw + (ne-nw)*fx
	south := sw + (se-sw)*fx
	return north + (south-north)*fy
}

// AltitudeRange returns the minimum and maximum sample.
func (m *Map) AltitudeRange() (min, max float64) {
	if len(m.Samples) == 0 {
		return 0, 0
	}
	min, max = m.Samples[0], m.Samples[0]
	for _, s := range m.Samples {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return min, max
}

// Extent returns the planar bounds covered by the samples.
func (m *Map) Extent() (west, south, east, north float64) {
	west = m.WestBorder
	north = m.NorthBorder
	east = m.WestBorder + float64(m.Width-1)*m.CellWidth
	south = m.NorthBorder - float64(m.Length-1)*m.CellLength
	return west, south, east, north
}

// Center returns the planar centre of the raster.
func (m *Map) Center() (x, y float64) {
	west, south, east, north := m.Extent()
	return (west + east) / 2, (south + north) / 2
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
