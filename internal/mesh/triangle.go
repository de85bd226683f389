package mesh

import (
	vmath "github.com/Faultbox/terramesh/pkg/math"
)

// Triangle is one face of the mesh. Neighbours[i] shares the edge
// (Vertices[i], Vertices[(i+1)%3]); vertices are counter-clockwise.
type Triangle struct {
	Index      int
	Vertices   [3]Point
	Neighbours [3]Ref
}

// Edge returns the endpoints of edge i.
func (t *Triangle) Edge(i int) (Point, Point) {
	return t.Vertices[i], t.Vertices[(i+1)%3]
}

// EdgeLength returns the planar length of edge i.
func (t *Triangle) EdgeLength(i int) float64 {
	a, b := t.Edge(i)
	return a.XY().Distance(b.XY())
}

// LongestEdge returns the index of the longest edge; ties go to the lower
// index.
func (t *Triangle) LongestEdge() int {
	best, bestLen := 0, t.EdgeLength(0)
	for i := 1; i < 3; i++ {
		if l := t.EdgeLength(i); l > bestLen*(1+lengthEpsilon) {
			best, bestLen = i, l
		}
	}
	return best
}

// IsLongestEdge reports whether edge i is as long as the longest edge,
// within rounding.
func (t *Triangle) IsLongestEdge(i int) bool {
	l := t.EdgeLength(i)
	for j := 0; j < 3; j++ {
		if j != i && t.EdgeLength(j) > l*(1+lengthEpsilon) {
			return false
		}
	}
	return true
}

// NeighbourSlot returns the edge of t whose neighbour is slot i, or -1.
func (t *Triangle) NeighbourSlot(i int) int {
	for e, n := range t.Neighbours {
		if n.Is(i) {
			return e
		}
	}
	return -1
}

// HasVertex reports whether p is one of t's vertices.
func (t *Triangle) HasVertex(p Point) bool {
	return t.Vertices[0].Equal(p) || t.Vertices[1].Equal(p) || t.Vertices[2].Equal(p)
}

// Centroid returns the planar centroid.
func (t *Triangle) Centroid() vmath.Vec2 {
	return t.Vertices[0].XY().Add(t.Vertices[1].XY()).Add(t.Vertices[2].XY()).Scale(1.0 / 3)
}

// Orientation returns twice the signed planar area; positive means
// counter-clockwise.
func (t *Triangle) Orientation() float64 {
	return vmath.Orient2D(t.Vertices[0].XY(), t.Vertices[1].XY(), t.Vertices[2].XY())
}

// Area returns the surface area including elevation.
func (t *Triangle) Area() float64 {
	return vmath.TriangleArea(t.Vertices[0].Vec(), t.Vertices[1].Vec(), t.Vertices[2].Vec())
}

// Normal returns the unit surface normal.
func (t *Triangle) Normal() vmath.Vec3 {
	return vmath.TriangleNormal(t.Vertices[0].Vec(), t.Vertices[1].Vec(), t.Vertices[2].Vec())
}

// axisDegenerate reports whether all vertices share an x or a y coordinate.
func (t *Triangle) axisDegenerate() bool {
	v := t.Vertices
	return (v[0].X == v[1].X && v[0].X == v[2].X) ||
		(v[0].Y == v[1].Y && v[0].Y == v[2].Y)
}

// lengthEpsilon is the relative slack when comparing edge lengths.
const lengthEpsilon = 1e-9
