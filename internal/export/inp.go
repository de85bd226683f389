package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/terramesh/internal/mesh"
)

// WriteINP writes an AVS UCD file: a header with node and cell counts,
// one "id x y z" line per node and one "id material tri a b c" line per
// triangle. Ids are 1-based.
func WriteINP(w io.Writer, m *mesh.Mesh) error {
	if m.Len() == 0 {
		return ErrEmptyMesh
	}
	pt, cells := indexMesh(m)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d 0 0 0\n", len(pt.points), len(cells))
	for i, p := range pt.points {
		fmt.Fprintf(bw, "%d ", i+1)
		writePoint(bw, p)
		bw.WriteByte('\n')
	}
	for i, c := range cells {
		fmt.Fprintf(bw, "%d 0 tri %d %d %d\n", i+1, c[0]+1, c[1]+1, c[2]+1)
	}
	return bw.Flush()
}
