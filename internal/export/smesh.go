package export

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/Faultbox/terramesh/internal/mesh"
)

// Facet boundary markers.
const (
	markerSurface = 1
	markerSouth   = 2
	markerEast    = 3
	markerNorth   = 4
	markerWest    = 5
	markerBottom  = 6
)

// WriteSMESH writes a TetGen surface mesh closing the terrain into a solid:
// the surface triangles, one vertical wall per side down to a flat bottom
// baseDepth below the lowest point, and the bottom itself. Hole and region
// lists are empty. Node ids are 1-based.
func WriteSMESH(w io.Writer, m *mesh.Mesh, baseDepth float64) error {
	if m.Len() == 0 {
		return ErrEmptyMesh
	}
	if !(baseDepth > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidBaseDepth, baseDepth)
	}
	pt, cells := indexMesh(m)

	minZ := math.Inf(1)
	for _, p := range pt.points {
		minZ = math.Min(minZ, p.Z)
	}
	base := minZ - baseDepth

	// Each side runs counter-clockwise around the solid seen from above.
	sides := []struct {
		bit    mesh.Border
		marker int
		less   func(a, b mesh.Point) int
	}{
		{mesh.BorderSouth, markerSouth, func(a, b mesh.Point) int { return cmp.Compare(a.X, b.X) }},
		{mesh.BorderEast, markerEast, func(a, b mesh.Point) int { return cmp.Compare(a.Y, b.Y) }},
		{mesh.BorderNorth, markerNorth, func(a, b mesh.Point) int { return cmp.Compare(b.X, a.X) }},
		{mesh.BorderWest, markerWest, func(a, b mesh.Point) int { return cmp.Compare(b.Y, a.Y) }},
	}

	type facet struct {
		corners []int
		marker  int
	}
	facets := make([]facet, 0, len(cells)+5)
	for _, c := range cells {
		facets = append(facets, facet{corners: []int{c[0], c[1], c[2]}, marker: markerSurface})
	}

	// bottom holds the below-ground copy of each side's first corner.
	var bottom []int
	for _, side := range sides {
		var idx []int
		for i, p := range pt.points {
			if p.Border.Has(side.bit) {
				idx = append(idx, i)
			}
		}
		if len(idx) < 2 {
			return fmt.Errorf("side %v has %d border points", side.bit, len(idx))
		}
		slices.SortFunc(idx, func(a, b int) int { return side.less(pt.points[a], pt.points[b]) })

		first, last := pt.points[idx[0]], pt.points[idx[len(idx)-1]]
		lastBase := pt.add(mesh.Point{X: last.X, Y: last.Y, Z: base})
		firstBase := pt.add(mesh.Point{X: first.X, Y: first.Y, Z: base})
		bottom = append(bottom, firstBase)

		corners := slices.Clone(idx)
		corners = append(corners, lastBase, firstBase)
		facets = append(facets, facet{corners: corners, marker: side.marker})
	}
	// Seen from below the bottom runs clockwise.
	slices.Reverse(bottom)
	facets = append(facets, facet{corners: bottom, marker: markerBottom})

	bw := bufio.NewWriter(w)
	bw.WriteString("# part 1: node list\n")
	fmt.Fprintf(bw, "%d 3 0 0\n", len(pt.points))
	for i, p := range pt.points {
		fmt.Fprintf(bw, "%d ", i+1)
		writePoint(bw, p)
		bw.WriteByte('\n')
	}

	bw.WriteString("# part 2: facet list\n")
	fmt.Fprintf(bw, "%d 1\n", len(facets))
	for _, f := range facets {
		fmt.Fprintf(bw, "%d", len(f.corners))
		for _, c := range f.corners {
			fmt.Fprintf(bw, " %d", c+1)
		}
		fmt.Fprintf(bw, " %d\n", f.marker)
	}

	bw.WriteString("# part 3: hole list\n0\n")
	bw.WriteString("# part 4: region list\n0\n")
	return bw.Flush()
}
