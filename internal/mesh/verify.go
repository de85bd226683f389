package mesh

import (
	"go.uber.org/multierr"
)

// VerifyTriangle checks triangle i against the mesh invariants: it must
// carry its own slot index, be counter-clockwise and not collapse onto one
// x or one y, and every neighbour must hold both endpoints of the shared
// edge and link back exactly once.
func (m *Mesh) VerifyTriangle(i int) error {
	t := m.store.Get(i)
	if t.Index != i {
		return &Error{Kind: KindIndexMismatch, Triangle: i, Neighbour: -1, Edge: -1}
	}
	if t.axisDegenerate() || t.Orientation() <= 0 {
		return &Error{Kind: KindDegenerate, Triangle: i, Neighbour: -1, Edge: -1}
	}

	for e := range 3 {
		ni, ok := t.Neighbours[e].Index()
		if !ok {
			continue
		}
		u := m.store.Lookup(t.Neighbours[e])
		if u == nil || ni == i {
			return &Error{Kind: KindAsymmetric, Triangle: i, Neighbour: ni, Edge: e}
		}

		a, b := t.Edge(e)
		if !u.HasVertex(a) || !u.HasVertex(b) {
			return &Error{Kind: KindEdgeMismatch, Triangle: i, Neighbour: ni, Edge: e}
		}

		back := 0
		for _, r := range u.Neighbours {
			if r.Is(i) {
				back++
			}
		}
		if back != 1 {
			return &Error{Kind: KindAsymmetric, Triangle: i, Neighbour: ni, Edge: e}
		}
	}
	return nil
}

// Verify checks every triangle and returns all violations combined.
func (m *Mesh) Verify() error {
	var errs error
	for i := range m.store.Len() {
		errs = multierr.Append(errs, m.VerifyTriangle(i))
	}
	return errs
}
