package mesh

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	vmath "github.com/Faultbox/terramesh/pkg/math"
)

// maxPropagation bounds how many times a split waits on its neighbour
// being split first before bisecting the shared edge anyway.
const maxPropagation = 64

// RefineStats summarises a refinement run.
type RefineStats struct {
	Sweeps    int
	Splits    int   // edge bisections, including propagated ones
	Refined   int   // triangles that failed the tolerance test
	Triangles int   // triangles after the last sweep
	Counts    []int // triangle count after each sweep
}

// Refine repeats sweeps until one changes nothing. The true surface is
// always the raster sampler; useHeight only controls whether new vertices
// carry elevation.
func (m *Mesh) Refine(tolerance float64, useHeight bool) (RefineStats, error) {
	var stats RefineStats
	for {
		refined, err := m.sweep(tolerance, useHeight, &stats)
		if err != nil {
			return stats, err
		}
		stats.Sweeps++
		stats.Counts = append(stats.Counts, m.Len())

		m.log.Debug("refinement sweep",
			zap.Int("sweep", stats.Sweeps),
			zap.Int("refined", refined),
			zap.Int("triangles", m.Len()))

		if refined == 0 {
			break
		}
	}
	stats.Triangles = m.Len()
	return stats, nil
}

// Sweep performs one pass over the mesh and returns how many triangles were
// refined.
func (m *Mesh) Sweep(tolerance float64, useHeight bool) (int, error) {
	var stats RefineStats
	return m.sweep(tolerance, useHeight, &stats)
}

func (m *Mesh) sweep(tolerance float64, useHeight bool, stats *RefineStats) (int, error) {
	if !(tolerance > 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTolerance, tolerance)
	}
	if m.UTM() {
		return 0, fmt.Errorf("refining projected mesh: %w", ErrAlreadyUTM)
	}

	refined := 0
	// The bound is re-read every step: triangles appended during this sweep
	// are visited in this same sweep.
	for i := 0; i < m.store.Len(); i++ {
		changed, err := m.refineIfRequired(i, tolerance, useHeight, stats)
		if err != nil {
			return refined, err
		}
		if changed {
			refined++
		}
	}
	return refined, nil
}

// refineIfRequired splits triangle i along its longest edge when its plane
// deviates from the sampled surface by more than tolerance.
func (m *Mesh) refineIfRequired(i int, tolerance float64, useHeight bool, stats *RefineStats) (bool, error) {
	t := m.store.Get(i)
	if m.deviation(t) <= tolerance {
		return false, nil
	}

	edge := t.LongestEdge()
	if t.EdgeLength(edge) < 2*m.minEdge {
		return false, nil
	}

	stats.Refined++
	if err := m.splitEdge(i, edge, useHeight, stats); err != nil {
		return false, err
	}
	return true, nil
}

// deviation returns the largest difference between the sampled surface and
// the triangle's linear interpolant, checked at the edge midpoints and the
// centroid. The interpolant uses sampled vertex heights, independent of the
// stored elevations.
func (m *Mesh) deviation(t *Triangle) float64 {
	var z [3]float64
	for k, v := range t.Vertices {
		z[k] = m.raster.Interpolate(v.X, v.Y)
	}

	worst := 0.0
	check := func(p vmath.Vec2, linear float64) {
		d := math.Abs(m.raster.Interpolate(p.X, p.Y) - linear)
		if d > worst {
			worst = d
		}
	}

	for k := 0; k < 3; k++ {
		a, b := t.Vertices[k].XY(), t.Vertices[(k+1)%3].XY()
		check(a.Midpoint(b), (z[k]+z[(k+1)%3])/2)
	}
	check(t.Centroid(), (z[0]+z[1]+z[2])/3)

	return worst
}

// splitEdge bisects edge e of triangle i. When the neighbour across e has a
// longer edge, that neighbour is split along it first so the shared edge
// becomes one of its longest; this keeps the angles of the refined mesh
// bounded.
func (m *Mesh) splitEdge(i, e int, useHeight bool, stats *RefineStats) error {
	for attempt := 0; ; attempt++ {
		t := m.store.Get(i)
		ui, ok := t.Neighbours[e].Index()
		if !ok {
			return m.bisect(i, e, -1, -1, useHeight, stats)
		}

		u := m.store.Get(ui)
		ue := u.NeighbourSlot(i)
		if ue < 0 {
			return &Error{Kind: KindAsymmetric, Triangle: i, Neighbour: ui, Edge: e}
		}
		if u.IsLongestEdge(ue) || attempt >= maxPropagation {
			return m.bisect(i, e, ui, ue, useHeight, stats)
		}

		// The recursion only visits strictly longer edges, so it never
		// reaches triangle i again.
		if err := m.splitEdge(ui, u.LongestEdge(), useHeight, stats); err != nil {
			return err
		}
	}
}

// bisect splits edge te of triangle ti at its midpoint, together with edge
// ue of neighbour ui when ui >= 0. Each split triangle keeps its slot for
// one child and gets one new slot for the other:
//
//	t (a, b, c) -> t (a, m, c) + t2 (m, b, c)
//	u (b, a, d) -> u (b, m, d) + u2 (m, a, d)
func (m *Mesh) bisect(ti, te, ui, ue int, useHeight bool, stats *RefineStats) error {
	need := 1
	if ui >= 0 {
		need = 2
	}
	// Both slots are checked up front so a failed split leaves no
	// half-initialised triangle behind.
	if err := m.store.reserve(need); err != nil {
		return err
	}

	t2, err := m.store.Allocate()
	if err != nil {
		return err
	}
	u2 := -1
	if ui >= 0 {
		if u2, err = m.store.Allocate(); err != nil {
			return err
		}
	}

	t := m.store.Get(ti)
	a, b, c := t.Vertices[te], t.Vertices[(te+1)%3], t.Vertices[(te+2)%3]
	nBC, nCA := t.Neighbours[(te+1)%3], t.Neighbours[(te+2)%3]
	mid := m.midpoint(a, b, ui < 0, useHeight)

	tOuter, t2Outer := None, None
	if ui >= 0 {
		tOuter, t2Outer = RefTo(u2), RefTo(ui)
	}

	*t = Triangle{
		Index:      ti,
		Vertices:   [3]Point{a, mid, c},
		Neighbours: [3]Ref{tOuter, RefTo(t2), nCA},
	}
	*m.store.Get(t2) = Triangle{
		Index:      t2,
		Vertices:   [3]Point{mid, b, c},
		Neighbours: [3]Ref{t2Outer, nBC, RefTo(ti)},
	}
	m.relink(nBC, ti, t2)

	if ui >= 0 {
		u := m.store.Get(ui)
		d := u.Vertices[(ue+2)%3]
		uBC, uCA := u.Neighbours[(ue+1)%3], u.Neighbours[(ue+2)%3]

		*u = Triangle{
			Index:      ui,
			Vertices:   [3]Point{b, mid, d},
			Neighbours: [3]Ref{RefTo(t2), RefTo(u2), uCA},
		}
		*m.store.Get(u2) = Triangle{
			Index:      u2,
			Vertices:   [3]Point{mid, a, d},
			Neighbours: [3]Ref{RefTo(ti), uBC, RefTo(ui)},
		}
		m.relink(uBC, ui, u2)
	}

	stats.Splits++

	if m.opts.Verify {
		return m.verifyTouched(ti, t2, ui, u2, nBC)
	}
	return nil
}

// midpoint creates the vertex inserted on edge (a, b).
func (m *Mesh) midpoint(a, b Point, boundary, useHeight bool) Point {
	c := a.XY().Midpoint(b.XY())
	p := Point{X: c.X, Y: c.Y}
	if useHeight {
		p.Z = m.raster.Interpolate(p.X, p.Y)
	}
	if boundary {
		p.Border = edgeBorder(a, b)
	}
	return p
}

// relink points the back-reference of neighbour r from slot from to slot to.
func (m *Mesh) relink(r Ref, from, to int) {
	n := m.store.Lookup(r)
	if n == nil {
		return
	}
	if e := n.NeighbourSlot(from); e >= 0 {
		n.Neighbours[e] = RefTo(to)
	}
}

// verifyTouched checks the triangles changed by one bisection and the
// outer neighbours whose links moved.
func (m *Mesh) verifyTouched(ti, t2, ui, u2 int, nBC Ref) error {
	touched := []int{ti, t2}
	if ui >= 0 {
		touched = append(touched, ui, u2)
		u := m.store.Get(u2)
		if n, ok := u.Neighbours[1].Index(); ok {
			touched = append(touched, n)
		}
	}
	if n, ok := nBC.Index(); ok {
		touched = append(touched, n)
	}
	for _, i := range touched {
		if err := m.VerifyTriangle(i); err != nil {
			return err
		}
	}
	return nil
}
