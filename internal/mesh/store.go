package mesh

import "iter"

// initialStoreSize is the starting capacity of a Store.
const initialStoreSize = 1024

// Store owns the triangles of one mesh. Slots are appended and never
// removed, so an index stays a valid reference for the life of the store.
//
// Pointers returned by Get are invalidated by the next Allocate.
type Store struct {
	triangles []Triangle
	limit     int
}

// NewStore creates an empty store. A positive limit caps the number of
// triangles it will hold.
func NewStore(limit int) *Store {
	return &Store{
		triangles: make([]Triangle, 0, initialStoreSize),
		limit:     limit,
	}
}

// Allocate appends a zeroed triangle stamped with its slot index.
// Capacity doubles when exhausted.
func (s *Store) Allocate() (int, error) {
	n := len(s.triangles)
	if s.limit > 0 && n >= s.limit {
		return -1, &Error{Kind: KindResourceExhausted, Triangle: n, Neighbour: -1, Edge: -1}
	}
	if n == cap(s.triangles) {
		grown := make([]Triangle, n, max(2*cap(s.triangles), initialStoreSize))
		copy(grown, s.triangles)
		s.triangles = grown
	}
	s.triangles = append(s.triangles, Triangle{Index: n})
	return n, nil
}

// reserve fails when n more triangles would exceed the limit.
func (s *Store) reserve(n int) error {
	if s.limit > 0 && len(s.triangles)+n > s.limit {
		return &Error{Kind: KindResourceExhausted, Triangle: s.limit, Neighbour: -1, Edge: -1}
	}
	return nil
}

// Len returns the number of triangles in use.
func (s *Store) Len() int {
	return len(s.triangles)
}

// Cap returns the current backing capacity.
func (s *Store) Cap() int {
	return cap(s.triangles)
}

// Get returns the triangle in slot i.
func (s *Store) Get(i int) *Triangle {
	return &s.triangles[i]
}

// Lookup resolves a neighbour reference; None resolves to nil.
func (s *Store) Lookup(r Ref) *Triangle {
	i, ok := r.Index()
	if !ok || i < 0 || i >= len(s.triangles) {
		return nil
	}
	return &s.triangles[i]
}

// All iterates over the live triangles in slot order.
func (s *Store) All() iter.Seq2[int, *Triangle] {
	return func(yield func(int, *Triangle) bool) {
		for i := range s.triangles {
			if !yield(i, &s.triangles[i]) {
				return
			}
		}
	}
}
