package mesh

import "strconv"

// Ref is an optional reference to a triangle slot. The zero value is None.
type Ref struct {
	index int
	valid bool
}

// None is the absent reference used for boundary edges.
var None = Ref{}

// RefTo returns a reference to slot i.
func RefTo(i int) Ref {
	return Ref{index: i, valid: true}
}

// Index returns the referenced slot and whether the reference is set.
func (r Ref) Index() (int, bool) {
	return r.index, r.valid
}

// IsNone reports whether r references nothing.
func (r Ref) IsNone() bool {
	return !r.valid
}

// Is reports whether r references slot i.
func (r Ref) Is(i int) bool {
	return r.valid && r.index == i
}

func (r Ref) String() string {
	if !r.valid {
		return "none"
	}
	return strconv.Itoa(r.index)
}
