package mesh

import (
	"math"
	"testing"

	"github.com/Faultbox/terramesh/pkg/dem"
)

// mockMap creates a width x length raster with unit cells whose samples
// come from f(col, row).
func mockMap(t *testing.T, width, length int, f func(col, row int) float64) *dem.Map {
	t.Helper()
	samples := make([]float64, width*length)
	for row := 0; row < length; row++ {
		for col := 0; col < width; col++ {
			samples[row*width+col] = f(col, row)
		}
	}
	m, err := dem.NewMap(width, length, samples)
	if err != nil {
		t.Fatalf("NewMap failed: %v", err)
	}
	return m
}

// flatMap creates a raster of constant elevation.
func flatMap(t *testing.T, width, length int, z float64) *dem.Map {
	return mockMap(t, width, length, func(int, int) float64 { return z })
}

// coneMap creates a raster with a cone of the given height centred on the
// middle sample.
func coneMap(t *testing.T, side int, height, slope float64) *dem.Map {
	c := float64(side-1) / 2
	return mockMap(t, side, side, func(col, row int) float64 {
		d := math.Hypot(float64(col)-c, float64(row)-c)
		return math.Max(0, height-slope*d)
	})
}

// mustBuild builds a mesh or fails the test.
func mustBuild(t *testing.T, m *dem.Map, size int, useHeight bool, opts Options) *Mesh {
	t.Helper()
	msh, err := Build(m, size, useHeight, opts)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return msh
}

// assertConsistent fails the test on any invariant violation.
func assertConsistent(t *testing.T, msh *Mesh) {
	t.Helper()
	if err := msh.Verify(); err != nil {
		t.Fatalf("mesh inconsistent: %v", err)
	}
}

// assertBorders checks every vertex's border bits against its position on
// the outer ring of the mesh.
func assertBorders(t *testing.T, msh *Mesh) {
	t.Helper()

	west, east := math.Inf(1), math.Inf(-1)
	south, north := math.Inf(1), math.Inf(-1)
	for _, tri := range msh.All() {
		for _, v := range tri.Vertices {
			west, east = math.Min(west, v.X), math.Max(east, v.X)
			south, north = math.Min(south, v.Y), math.Max(north, v.Y)
		}
	}

	for i, tri := range msh.All() {
		for k, v := range tri.Vertices {
			var want Border
			if v.Y == south {
				want |= BorderSouth
			}
			if v.X == east {
				want |= BorderEast
			}
			if v.Y == north {
				want |= BorderNorth
			}
			if v.X == west {
				want |= BorderWest
			}
			if v.Border != want {
				t.Fatalf("triangle %d vertex %d at (%v, %v): border %v, want %v", i, k, v.X, v.Y, v.Border, want)
			}
		}
	}
}
