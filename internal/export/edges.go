package export

import (
	"bufio"
	"io"

	"github.com/Faultbox/terramesh/internal/mesh"
)

// WriteEdges writes every distinct edge once as "x1 y1 z1 x2 y2 z2". A
// shared edge is written by the lower-indexed of its two triangles.
func WriteEdges(w io.Writer, m *mesh.Mesh) error {
	if m.Len() == 0 {
		return ErrEmptyMesh
	}

	bw := bufio.NewWriter(w)
	for i, t := range m.All() {
		for e := range 3 {
			if n, ok := t.Neighbours[e].Index(); ok && n < i {
				continue
			}
			a, b := t.Edge(e)
			writePoint(bw, a)
			bw.WriteByte(' ')
			writePoint(bw, b)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
