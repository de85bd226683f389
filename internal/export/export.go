// Package export writes meshes in finite-element, tetrahedralization,
// terrain and GIS file formats.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/Faultbox/terramesh/internal/mesh"
)

// Export errors.
var (
	ErrUnknownFormat    = errors.New("unknown export format")
	ErrEmptyMesh        = errors.New("mesh has no triangles")
	ErrInvalidBaseDepth = errors.New("smesh base depth must be positive")
)

// Options tunes the writers that need more than the mesh.
type Options struct {
	// BaseDepth is how far below the lowest surface point the smesh
	// bottom facet sits.
	BaseDepth float64
}

// Writer serialises a mesh.
type Writer func(w io.Writer, m *mesh.Mesh, opts Options) error

// Format is a named output format.
type Format struct {
	Name  string
	Ext   string
	Write Writer
}

// Formats lists the available writers by name.
var Formats = map[string]Format{
	"inp": {Name: "inp", Ext: ".inp", Write: func(w io.Writer, m *mesh.Mesh, _ Options) error {
		return WriteINP(w, m)
	}},
	"smesh": {Name: "smesh", Ext: ".smesh", Write: func(w io.Writer, m *mesh.Mesh, opts Options) error {
		return WriteSMESH(w, m, opts.BaseDepth)
	}},
	"dtm": {Name: "dtm", Ext: ".dtm", Write: func(w io.Writer, m *mesh.Mesh, _ Options) error {
		return WriteDTM(w, m)
	}},
	"edges": {Name: "edges", Ext: ".edges", Write: func(w io.Writer, m *mesh.Mesh, _ Options) error {
		return WriteEdges(w, m)
	}},
	"geojson": {Name: "geojson", Ext: ".geojson", Write: func(w io.Writer, m *mesh.Mesh, _ Options) error {
		return WriteGeoJSON(w, m)
	}},
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := Formats[name]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Names returns the registered format names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(Formats))
}

// pointTable assigns each distinct vertex an index in first-seen order.
type pointTable struct {
	index  map[[3]float64]int
	points []mesh.Point
}

func newPointTable() *pointTable {
	return &pointTable{index: make(map[[3]float64]int)}
}

// add returns the 0-based index of p, inserting it when new.
func (pt *pointTable) add(p mesh.Point) int {
	key := [3]float64{p.X, p.Y, p.Z}
	if i, ok := pt.index[key]; ok {
		return i
	}
	i := len(pt.points)
	pt.index[key] = i
	pt.points = append(pt.points, p)
	return i
}

// indexMesh builds the shared point table and each triangle's corner
// indices.
func indexMesh(m *mesh.Mesh) (*pointTable, [][3]int) {
	pt := newPointTable()
	cells := make([][3]int, 0, m.Len())
	for _, t := range m.All() {
		var c [3]int
		for k, v := range t.Vertices {
			c[k] = pt.add(v)
		}
		cells = append(cells, c)
	}
	return pt, cells
}

// formatFloat renders v with the fewest digits that read back exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writePoint(bw *bufio.Writer, p mesh.Point) {
	bw.WriteString(formatFloat(p.X))
	bw.WriteByte(' ')
	bw.WriteString(formatFloat(p.Y))
	bw.WriteByte(' ')
	bw.WriteString(formatFloat(p.Z))
}
