package sparse

import (
	"testing"
)

func TestSparseSet_Basic(t *testing.T) {
	s := NewSparseSet(100)

	if !s.IsEmpty() {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	if !s.Insert(5) {
		t.Error("first insert should return true")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should return false")
	}
	if s.Len() != 1 {
		t.Errorf("len should be 1, got %d", s.Len())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Len() != 4 {
		t.Errorf("len should be 4, got %d", s.Len())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("set should be empty after clear")
	}
	if s.Contains(5) {
		t.Error("cleared set should not contain 5")
	}
}

func TestSparseSet_InsertionOrder(t *testing.T) {
	s := NewSparseSet(100)
	s.Insert(5)
	s.Insert(2)
	s.Insert(8)
	s.Insert(1)

	expected := []int{5, 2, 8, 1}
	values := s.Values()
	if len(values) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(values))
	}
	for i, v := range values {
		if v != expected[i] {
			t.Errorf("at index %d: expected %d, got %d", i, expected[i], v)
		}
	}
}

func TestSparseSet_StaleEntriesAfterClear(t *testing.T) {
	s := NewSparseSet(8)
	s.Insert(3)
	s.Insert(4)
	s.Clear()
	s.Insert(4)

	// sparse[3] still points at dense slot 0, which now holds 4.
	if s.Contains(3) {
		t.Error("stale sparse entry must not report membership")
	}
	if !s.Contains(4) {
		t.Error("set should contain 4")
	}
}

func TestSparseSet_OutOfRange(t *testing.T) {
	s := NewSparseSet(4)
	if s.Contains(-1) || s.Contains(4) {
		t.Error("out-of-range values are never contained")
	}

	defer func() {
		if recover() == nil {
			t.Error("Insert out of range should panic")
		}
	}()
	s.Insert(4)
}

func TestSparseSet_ZeroCapacity(t *testing.T) {
	s := NewSparseSet(0)
	if s.Capacity() != 0 || s.Contains(0) {
		t.Error("zero-capacity set holds nothing")
	}
}
