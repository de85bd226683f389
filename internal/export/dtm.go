package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/terramesh/internal/mesh"
)

// WriteDTM writes one line per triangle with its slot index and the three
// vertex coordinates. The header carries the triangle count and the
// coordinate system.
func WriteDTM(w io.Writer, m *mesh.Mesh) error {
	if m.Len() == 0 {
		return ErrEmptyMesh
	}

	bw := bufio.NewWriter(w)
	if m.UTM() {
		raster := m.Map()
		fmt.Fprintf(bw, "%d utm %d %c\n", m.Len(), raster.Zone, raster.Hemisphere)
	} else {
		fmt.Fprintf(bw, "%d geographic\n", m.Len())
	}

	for i, t := range m.All() {
		bw.WriteString(strconv.Itoa(i))
		for _, v := range t.Vertices {
			bw.WriteByte(' ')
			writePoint(bw, v)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
