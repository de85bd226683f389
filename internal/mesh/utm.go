package mesh

import (
	"go.uber.org/zap"
)

// Projector maps geographic coordinates in degrees to planar ones.
type Projector interface {
	Forward(lon, lat float64) (x, y float64)
}

// ConvertToUTM projects every vertex with p and marks the map as projected.
// Projection is not idempotent, so a second call returns ErrAlreadyUTM and
// leaves the coordinates untouched.
func (m *Mesh) ConvertToUTM(p Projector) error {
	if m.UTM() {
		return ErrAlreadyUTM
	}

	for _, t := range m.store.All() {
		for k := range t.Vertices {
			v := &t.Vertices[k]
			v.X, v.Y = p.Forward(v.X, v.Y)
		}
	}
	m.raster.UTM = true

	m.log.Debug("mesh projected to UTM",
		zap.Int("zone", m.raster.Zone),
		zap.String("hemisphere", string(m.raster.Hemisphere)),
		zap.Int("triangles", m.Len()))
	return nil
}
