// Package literal provides types and operations for the literal text runs
// of wildcard patterns.
//
// The primary use case is prefiltering: a class-name pattern such as
// "com/example/**Activity" can only match names that contain both
// "com/example/" and "Activity", so a cheap substring search can reject most
// candidates before the backtracking matcher runs.
//
// Key concepts:
//   - A Literal is a run of literal text taken from a pattern
//   - A Seq is a list of literals with either all-of or any-of meaning,
//     decided by the caller
//   - Longest and Minimize pick the literals worth searching for
package literal

import (
	"bytes"
	"sort"
)

// Literal is a run of literal text extracted from a pattern. Complete is
// true when the run is the whole pattern, in which case an exact string
// comparison replaces pattern matching.
//
// Example:
//   - Pattern "com/example/Foo" → Literal{"com/example/Foo", true}
//   - Pattern "com/example/*"   → Literal{"com/example/", false}
type Literal struct {
	// Bytes contains the literal text.
	Bytes []byte

	// Complete indicates whether this literal is the entire pattern.
	Complete bool
}

// NewLiteral creates a Literal from b.
//
// Example:
//
//	lit := literal.NewLiteral([]byte("Activity"), false)
//	fmt.Println(lit.Len()) // Output: 8
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a debugging representation.
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a sequence of literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("com/example/"), false),
//	    literal.NewLiteral([]byte("Activity"), false),
//	)
//	lit, _ := seq.Longest()
//	fmt.Println(string(lit.Bytes)) // Output: com/example/
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals. A nil Seq is empty.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i. Panics if i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// Add appends lit to the sequence. Empty literals are ignored.
func (s *Seq) Add(lit Literal) {
	if lit.Len() == 0 {
		return
	}
	s.literals = append(s.literals, lit)
}

// Longest returns the longest literal. Ties go to the earliest literal.
// The second result is false for an empty sequence.
func (s *Seq) Longest() (Literal, bool) {
	if s.IsEmpty() {
		return Literal{}, false
	}
	best := s.literals[0]
	for _, lit := range s.literals[1:] {
		if lit.Len() > best.Len() {
			best = lit
		}
	}
	return best, true
}

// Minimize removes literals that are redundant for "contains any of"
// searches: duplicates, and any literal that contains another literal of
// the sequence. A name that contains "Foo" already satisfies a search for
// {"Foo", "FooBar"}, so "FooBar" adds nothing.
//
// The relative order of the surviving literals is preserved.
//
// Time complexity: O(n² * m) where n = number of literals, m = average length.
func (s *Seq) Minimize() {
	if s.Len() < 2 {
		return
	}
	order := make([]int, len(s.literals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.literals[order[a]].Len() < s.literals[order[b]].Len()
	})

	keep := make([]bool, len(s.literals))
	var kept [][]byte
	for _, i := range order {
		lit := s.literals[i].Bytes
		redundant := false
		for _, k := range kept {
			if bytes.Contains(lit, k) {
				redundant = true
				break
			}
		}
		if !redundant {
			keep[i] = true
			kept = append(kept, lit)
		}
	}

	out := s.literals[:0]
	for i, lit := range s.literals {
		if keep[i] {
			out = append(out, lit)
		}
	}
	s.literals = out
}

// MinLen returns the length of the shortest literal, or 0 when empty.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	n := s.literals[0].Len()
	for _, lit := range s.literals[1:] {
		if lit.Len() < n {
			n = lit.Len()
		}
	}
	return n
}
