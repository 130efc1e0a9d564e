// Package sparse provides a sparse set for visited tracking over dense
// indices.
//
// A sparse set supports O(1) insertion, membership testing and clearing
// while keeping a dense list of members in insertion order. The ancestor
// walk of class predicates uses it as its visited set: pool indices form a
// small known universe, and a set cleared in O(1) can be reused for every
// candidate of a traversal.
package sparse

// SparseSet is a set of ints in [0, capacity).
//
// The sparse array maps a value to its position in the dense array; a value
// is present only when that position is in range and points back at it, so
// stale sparse entries left by Clear are harmless.
type SparseSet struct {
	sparse []int32
	dense  []int32
}

// NewSparseSet creates a set able to hold values in [0, capacity).
func NewSparseSet(capacity int) *SparseSet {
	if capacity < 0 {
		capacity = 0
	}
	return &SparseSet{
		sparse: make([]int32, capacity),
		dense:  make([]int32, 0, capacity),
	}
}

// Capacity returns the exclusive upper bound of storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Insert adds value to the set. It returns true when value was not present.
// Panics if value is outside [0, Capacity()).
func (s *SparseSet) Insert(value int) bool {
	if value < 0 || value >= len(s.sparse) {
		panic("sparse: value out of range")
	}
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = int32(len(s.dense))
	s.dense = append(s.dense, int32(value))
	return true
}

// Contains reports whether value is in the set. Out-of-range values are
// never contained.
func (s *SparseSet) Contains(value int) bool {
	if value < 0 || value >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == int32(value)
}

// Clear removes all elements in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no elements.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the elements in insertion order.
func (s *SparseSet) Values() []int {
	out := make([]int, len(s.dense))
	for i, v := range s.dense {
		out[i] = int(v)
	}
	return out
}
