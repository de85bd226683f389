// Package mesh builds and refines triangulated surface meshes over
// elevation rasters.
//
// Triangles live in an index-addressed Store. Neighbour links are Refs into
// that store, so a triangle's identity is its slot and never changes once
// allocated. All operations are single-threaded.
package mesh

import (
	"strings"

	vmath "github.com/Faultbox/terramesh/pkg/math"
)

// Border is a bitmask of the outer sides of the mesh a point lies on.
type Border uint8

// Border bits. Values match the exported file formats.
const (
	BorderSouth Border = 1 << 2
	BorderEast  Border = 1 << 3
	BorderNorth Border = 1 << 4
	BorderWest  Border = 1 << 5
)

// Has reports whether all bits of side are set.
func (b Border) Has(side Border) bool {
	return b&side == side
}

// String returns the sides as "S|E|N|W" style text.
func (b Border) String() string {
	if b == 0 {
		return "-"
	}
	var parts []string
	for _, s := range []struct {
		bit  Border
		name string
	}{{BorderSouth, "S"}, {BorderEast, "E"}, {BorderNorth, "N"}, {BorderWest, "W"}} {
		if b.Has(s.bit) {
			parts = append(parts, s.name)
		}
	}
	return strings.Join(parts, "|")
}

// Point is a mesh vertex. Points are stored by value in each triangle;
// equal coordinates identify the same vertex.
type Point struct {
	X, Y   float64
	Z      float64
	Border Border
}

// Equal reports whether p and o have identical coordinates.
func (p Point) Equal(o Point) bool {
	return p.X == o.X && p.Y == o.Y && p.Z == o.Z
}

// XY returns the planar position.
func (p Point) XY() vmath.Vec2 {
	return vmath.Vec2{X: p.X, Y: p.Y}
}

// Vec returns the position with elevation.
func (p Point) Vec() vmath.Vec3 {
	return vmath.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}
