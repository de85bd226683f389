package mesh

import (
	"iter"

	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/pkg/dem"
)

// Options configures mesh construction and refinement.
type Options struct {
	// MaxTriangles caps the store; 0 means unlimited.
	MaxTriangles int

	// MinEdge is the shortest edge refinement may create, in map units.
	// Zero picks half of the smaller raster sample spacing.
	MinEdge float64

	// Verify checks every touched triangle after each mutation.
	Verify bool

	Logger *zap.Logger
}

// Mesh is a triangulated surface over a Map. It exclusively owns its store
// and holds the only reference to its Map.
type Mesh struct {
	store   *Store
	raster  *dem.Map
	opts    Options
	log     *zap.Logger
	minEdge float64

	rows, cols int
}

func newMesh(m *dem.Map, opts Options) *Mesh {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	minEdge := opts.MinEdge
	if minEdge <= 0 {
		minEdge = min(m.CellWidth, m.CellLength) / 2
	}
	m.UTM = false
	return &Mesh{
		store:   NewStore(opts.MaxTriangles),
		raster:  m,
		opts:    opts,
		log:     log,
		minEdge: minEdge,
	}
}

// Len returns the number of triangles in use.
func (m *Mesh) Len() int {
	return m.store.Len()
}

// Triangle returns the triangle in slot i. The pointer must not be kept
// across a refinement sweep.
func (m *Mesh) Triangle(i int) *Triangle {
	return m.store.Get(i)
}

// Neighbour resolves edge e of triangle i; nil on a boundary edge.
func (m *Mesh) Neighbour(i, e int) *Triangle {
	return m.store.Lookup(m.store.Get(i).Neighbours[e])
}

// All iterates over the triangles in slot order.
func (m *Mesh) All() iter.Seq2[int, *Triangle] {
	return m.store.All()
}

// Map returns the raster the mesh was built from.
func (m *Mesh) Map() *dem.Map {
	return m.raster
}

// UTM reports whether the vertex coordinates have been projected.
func (m *Mesh) UTM() bool {
	return m.raster != nil && m.raster.UTM
}

// Grid returns the rows and columns of the initial cell grid.
func (m *Mesh) Grid() (rows, cols int) {
	return m.rows, m.cols
}

// MinEdge returns the refinement floor in map units.
func (m *Mesh) MinEdge() float64 {
	return m.minEdge
}
