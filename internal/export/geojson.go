package export

import (
	"io"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Faultbox/terramesh/internal/mesh"
	vmath "github.com/Faultbox/terramesh/pkg/math"
)

var up = vmath.Vec3{Z: 1}

// FeatureCollection converts the mesh to one polygon feature per triangle.
// Properties carry the slot index, the combined border bits of the
// vertices, the vertex elevations, the surface area and the slope in
// degrees.
func FeatureCollection(m *mesh.Mesh) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	var bound orb.Bound

	for i, t := range m.All() {
		v := t.Vertices
		ring := orb.Ring{
			{v[0].X, v[0].Y},
			{v[1].X, v[1].Y},
			{v[2].X, v[2].Y},
			{v[0].X, v[0].Y},
		}
		if i == 0 {
			bound = ring.Bound()
		} else {
			bound = bound.Union(ring.Bound())
		}

		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties["index"] = i
		f.Properties["border"] = int(v[0].Border | v[1].Border | v[2].Border)
		f.Properties["elevation"] = []float64{v[0].Z, v[1].Z, v[2].Z}
		f.Properties["area"] = t.Area()
		f.Properties["slope"] = math.Acos(t.Normal().Dot(up)) * 180 / math.Pi
		fc.Append(f)
	}

	if len(fc.Features) > 0 {
		fc.BBox = geojson.NewBBox(bound)
	}
	return fc
}

// WriteGeoJSON writes the mesh as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, m *mesh.Mesh) error {
	if m.Len() == 0 {
		return ErrEmptyMesh
	}
	data, err := FeatureCollection(m).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
