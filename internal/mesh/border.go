package mesh

// markBorderPoints tags the vertices of a cell's triangles that lie on the
// outer ring of the grid. Corner cells collect two sides.
func markBorderPoints(a, b *Triangle, row, col, rows, cols int) {
	if row == rows-1 {
		a.Vertices[0].Border |= BorderSouth
		a.Vertices[1].Border |= BorderSouth
		b.Vertices[2].Border |= BorderSouth
	}
	if col == cols-1 {
		a.Vertices[1].Border |= BorderEast
		a.Vertices[2].Border |= BorderEast
		b.Vertices[0].Border |= BorderEast
	}
	if row == 0 {
		a.Vertices[2].Border |= BorderNorth
		b.Vertices[0].Border |= BorderNorth
		b.Vertices[1].Border |= BorderNorth
	}
	if col == 0 {
		a.Vertices[0].Border |= BorderWest
		b.Vertices[1].Border |= BorderWest
		b.Vertices[2].Border |= BorderWest
	}
}

// edgeBorder returns the sides shared by both endpoints of a boundary
// edge; a point inserted on that edge lies on exactly those sides.
func edgeBorder(a, b Point) Border {
	return a.Border & b.Border
}
