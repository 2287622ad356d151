// Package indexset provides dense, array-backed collections keyed by a
// compact integer index, the hand-rolled replacement for hash-map lookups
// the spec explicitly calls for (§4.1): CFG and automaton construction
// creates and discards millions of small per-state/per-edge records, and a
// slice indexed by key.Index() is far cheaper than a map keyed by a boxed
// integer.
//
// The shape mirrors core.Graph's map-of-maps adjacency model (teacher
// package core/adjacency_list.go) generalized from string vertex IDs to
// dense integer indices.
package indexset

// NodeIndex identifies a node in some graph-shaped structure (DFA, NFA,
// VASS, LSG subgraph) by its position in that structure's backing array.
type NodeIndex int

// Index returns i itself; NodeIndex is its own dense key.
func (i NodeIndex) Index() int { return int(i) }

// EdgeIndex identifies an edge the same way NodeIndex identifies a node.
type EdgeIndex int

// Index returns i itself.
func (i EdgeIndex) Index() int { return int(i) }

// Keyed is any type usable as a dense key into an IndexMap.
type Keyed interface {
	Index() int
}

// IndexMap is a dense map keyed by a Keyed index, backed by a slice. Unset
// entries read back as the zero value of T; use Get2 to distinguish unset
// from a legitimately zero-valued entry.
type IndexMap[K Keyed, T any] struct {
	data []T
	set  []bool
}

// New returns an IndexMap with pre-allocated capacity for `capacity` keys.
func New[K Keyed, T any](capacity int) *IndexMap[K, T] {
	return &IndexMap[K, T]{
		data: make([]T, capacity),
		set:  make([]bool, capacity),
	}
}

func (m *IndexMap[K, T]) growTo(n int) {
	if n <= len(m.data) {
		return
	}
	grown := make([]T, n)
	copy(grown, m.data)
	m.data = grown
	grownSet := make([]bool, n)
	copy(grownSet, m.set)
	m.set = grownSet
}

// Insert stores value at key, growing the backing array if needed.
func (m *IndexMap[K, T]) Insert(key K, value T) {
	idx := key.Index()
	m.growTo(idx + 1)
	m.data[idx] = value
	m.set[idx] = true
}

// Get returns the value stored at key, or the zero value if unset or out
// of range.
func (m *IndexMap[K, T]) Get(key K) T {
	idx := key.Index()
	if idx < 0 || idx >= len(m.data) {
		var zero T
		return zero
	}
	return m.data[idx]
}

// GetOption returns the value at key and whether it was explicitly set.
func (m *IndexMap[K, T]) GetOption(key K) (T, bool) {
	idx := key.Index()
	if idx < 0 || idx >= len(m.set) || !m.set[idx] {
		var zero T
		return zero, false
	}
	return m.data[idx], true
}

// Delete clears the entry at key, leaving the zero value in its place.
func (m *IndexMap[K, T]) Delete(key K) {
	idx := key.Index()
	if idx < 0 || idx >= len(m.data) {
		return
	}
	var zero T
	m.data[idx] = zero
	m.set[idx] = false
}

// Len returns the backing capacity (not the count of set entries).
func (m *IndexMap[K, T]) Len() int { return len(m.data) }

// Iter calls fn for every set entry, in ascending index order.
func (m *IndexMap[K, T]) Iter(fn func(idx int, value T)) {
	for i, wasSet := range m.set {
		if wasSet {
			fn(i, m.data[i])
		}
	}
}

// Map returns a new IndexMap with fn applied to every set entry.
func Map[K Keyed, T any, U any](m *IndexMap[K, T], fn func(T) U) *IndexMap[K, U] {
	out := New[K, U](m.Len())
	m.Iter(func(idx int, value T) {
		out.data[idx] = fn(value)
		out.set[idx] = true
	})
	return out
}

// IndexSet is the boolean specialization of IndexMap: a dense set of keys.
type IndexSet[K Keyed] struct {
	present []bool
	count   int
}

// NewSet returns an empty IndexSet with pre-allocated capacity.
func NewSet[K Keyed](capacity int) *IndexSet[K] {
	return &IndexSet[K]{present: make([]bool, capacity)}
}

func (s *IndexSet[K]) growTo(n int) {
	if n <= len(s.present) {
		return
	}
	grown := make([]bool, n)
	copy(grown, s.present)
	s.present = grown
}

// Add inserts key into the set; returns true if it was newly added.
func (s *IndexSet[K]) Add(key K) bool {
	idx := key.Index()
	s.growTo(idx + 1)
	if s.present[idx] {
		return false
	}
	s.present[idx] = true
	s.count++
	return true
}

// Contains reports whether key is in the set.
func (s *IndexSet[K]) Contains(key K) bool {
	idx := key.Index()
	if idx < 0 || idx >= len(s.present) {
		return false
	}
	return s.present[idx]
}

// Remove deletes key from the set; returns true if it had been present.
func (s *IndexSet[K]) Remove(key K) bool {
	idx := key.Index()
	if idx < 0 || idx >= len(s.present) || !s.present[idx] {
		return false
	}
	s.present[idx] = false
	s.count--
	return true
}

// Len returns the number of keys currently in the set.
func (s *IndexSet[K]) Len() int { return s.count }

// Iter calls fn for every member, in ascending index order.
func (s *IndexSet[K]) Iter(fn func(idx int)) {
	for i, present := range s.present {
		if present {
			fn(i)
		}
	}
}
