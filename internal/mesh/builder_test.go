package mesh

import (
	"errors"
	"math/bits"
	"testing"

	"github.com/Faultbox/terramesh/pkg/dem"
)

func TestBuild_GridDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, length int
		size          int
		rows, cols    int
	}{
		{"unit cells", 3, 3, 1, 2, 2},
		{"remainder absorbed", 11, 6, 3, 2, 3},
		{"half remainder absorbed", 8, 8, 2, 3, 3},
		{"oversize clamped", 5, 3, 10, 1, 2},
		{"zero size", 4, 4, 0, 3, 3},
		{"negative size", 4, 4, -5, 3, 3},
		{"single cell", 9, 9, 8, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msh := mustBuild(t, flatMap(t, tt.width, tt.length, 0), tt.size, true, Options{})

			rows, cols := msh.Grid()
			if rows != tt.rows || cols != tt.cols {
				t.Errorf("Grid() = (%d, %d), want (%d, %d)", rows, cols, tt.rows, tt.cols)
			}
			if msh.Len() != tt.rows*tt.cols*2 {
				t.Errorf("expected %d triangles, got %d", tt.rows*tt.cols*2, msh.Len())
			}
		})
	}
}

func TestGridDimension(t *testing.T) {
	tests := []struct {
		extent, size int
		count        int
		cell         float64
	}{
		{10, 3, 3, 10.0 / 3},
		{5, 3, 2, 2.5},
		{7, 2, 3, 7.0 / 3},
		{6, 2, 3, 2},
		{1, 1, 1, 1},
	}
	for _, tt := range tests {
		count, cell := gridDimension(tt.extent, tt.size)
		if count != tt.count || cell != tt.cell {
			t.Errorf("gridDimension(%d, %d) = (%d, %v), want (%d, %v)",
				tt.extent, tt.size, count, cell, tt.count, tt.cell)
		}
	}
}

func TestBuild_ThreeByThreeNeighbours(t *testing.T) {
	msh := mustBuild(t, flatMap(t, 3, 3, 0), 1, true, Options{})

	// Slot 2n is triangle A of cell n, slot 2n+1 is triangle B.
	want := [8][3]Ref{
		{RefTo(5), RefTo(3), RefTo(1)}, // cell 0 A
		{None, None, RefTo(0)},         // cell 0 B
		{RefTo(7), None, RefTo(3)},     // cell 1 A
		{None, RefTo(0), RefTo(2)},     // cell 1 B
		{None, RefTo(7), RefTo(5)},     // cell 2 A
		{RefTo(0), None, RefTo(4)},     // cell 2 B
		{None, None, RefTo(7)},         // cell 3 A
		{RefTo(2), RefTo(4), RefTo(6)}, // cell 3 B
	}

	for i, tri := range msh.All() {
		if tri.Index != i {
			t.Errorf("slot %d stamped %d", i, tri.Index)
		}
		if tri.Neighbours != want[i] {
			t.Errorf("triangle %d neighbours %v, want %v", i, tri.Neighbours, want[i])
		}
	}
	assertConsistent(t, msh)
}

func TestBuild_CellGeometry(t *testing.T) {
	m := mockMap(t, 3, 3, func(col, row int) float64 { return float64(10*col + row) })
	msh := mustBuild(t, m, 1, true, Options{})

	// Cell 0 is the north-west cell: x in [0, 1], y in [1, 2].
	a, b := msh.Triangle(0), msh.Triangle(1)
	wantA := [3][2]float64{{0, 1}, {1, 1}, {1, 2}}
	wantB := [3][2]float64{{1, 2}, {0, 2}, {0, 1}}
	for k := range 3 {
		if a.Vertices[k].X != wantA[k][0] || a.Vertices[k].Y != wantA[k][1] {
			t.Errorf("A vertex %d = (%v, %v), want %v", k, a.Vertices[k].X, a.Vertices[k].Y, wantA[k])
		}
		if b.Vertices[k].X != wantB[k][0] || b.Vertices[k].Y != wantB[k][1] {
			t.Errorf("B vertex %d = (%v, %v), want %v", k, b.Vertices[k].X, b.Vertices[k].Y, wantB[k])
		}
	}

	// Elevation at (1, 1) is the sample at column 1, row 1.
	if a.Vertices[1].Z != 11 {
		t.Errorf("expected z 11 at (1, 1), got %v", a.Vertices[1].Z)
	}
	if a.Orientation() <= 0 || b.Orientation() <= 0 {
		t.Error("cell triangles must be counter-clockwise")
	}
}

func TestBuild_WithoutHeight(t *testing.T) {
	msh := mustBuild(t, coneMap(t, 9, 50, 10), 2, false, Options{})
	for i, tri := range msh.All() {
		for _, v := range tri.Vertices {
			if v.Z != 0 {
				t.Fatalf("triangle %d has z %v with height disabled", i, v.Z)
			}
		}
	}
}

func TestBuild_BorderPoints(t *testing.T) {
	tests := []struct {
		name          string
		width, length int
		size          int
	}{
		{"single cell", 2, 2, 1},
		{"square", 5, 5, 1},
		{"wide", 11, 4, 2},
		{"absorbed remainder", 11, 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msh := mustBuild(t, flatMap(t, tt.width, tt.length, 1), tt.size, true, Options{})
			assertBorders(t, msh)

			corners := 0
			for _, tri := range msh.All() {
				for _, v := range tri.Vertices {
					sides := bits.OnesCount(uint(v.Border))
					if sides > 2 {
						t.Fatalf("vertex (%v, %v) on %d sides", v.X, v.Y, sides)
					}
					if sides == 2 {
						corners++
					}
				}
			}
			if corners == 0 {
				t.Error("expected corner vertices")
			}
		})
	}
}

func TestBuild_RasterOrigin(t *testing.T) {
	m := flatMap(t, 4, 4, 0)
	m.WestBorder = 500
	m.NorthBorder = 1000
	m.CellWidth = 30
	m.CellLength = 30

	msh := mustBuild(t, m, 1, true, Options{Verify: true})
	b := msh.Triangle(1)
	if b.Vertices[1].X != 500 || b.Vertices[1].Y != 1000 {
		t.Errorf("north-west vertex = (%v, %v), want (500, 1000)", b.Vertices[1].X, b.Vertices[1].Y)
	}
	if msh.MinEdge() != 15 {
		t.Errorf("expected default min edge 15, got %v", msh.MinEdge())
	}
}

func TestBuild_ResetsProjectionFlag(t *testing.T) {
	m := flatMap(t, 3, 3, 0)
	m.UTM = true

	msh := mustBuild(t, m, 1, true, Options{})
	if msh.UTM() {
		t.Error("a new mesh must start in raster coordinates")
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Run("too small", func(t *testing.T) {
		m := &dem.Map{Width: 1, Length: 5, CellWidth: 1, CellLength: 1, Samples: make([]float64, 5)}
		_, err := Build(m, 1, true, Options{})
		if !errors.Is(err, dem.ErrInvalidDimensions) {
			t.Errorf("expected ErrInvalidDimensions, got %v", err)
		}
	})

	t.Run("store limit", func(t *testing.T) {
		_, err := Build(flatMap(t, 3, 3, 0), 1, true, Options{MaxTriangles: 4})
		if !errors.Is(err, ErrResourceExhausted) {
			t.Errorf("expected ErrResourceExhausted, got %v", err)
		}
	})
}
