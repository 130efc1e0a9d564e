// Package prefilter provides cheap candidate rejection for wildcard name
// matching using literals extracted from the patterns.
//
// A prefilter answers one question: can this name possibly match? A false
// answer is final; a true answer means the full pattern matcher must still
// run. Prefilters therefore never change match results, they only skip work.
//
// The package selects the prefilter from the literal sequence it is given:
//   - No usable literal → no prefilter (nil)
//   - One literal → Substring (single substring search)
//   - Several literals → AhoCorasick (one automaton pass over the name)
//
// Example usage:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("Activity"), false),
//	    literal.NewLiteral([]byte("Fragment"), false),
//	)
//	pf := prefilter.NewBuilder(seq).Build()
//	pf.MayMatch("com/example/MainActivity") // true
//	pf.MayMatch("com/example/Util")         // false
package prefilter

import (
	"strings"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/keepmatch/literal"
)

// Prefilter rejects names that cannot match.
//
// The literals of a prefilter have any-of meaning: MayMatch is true when
// the name contains at least one of them.
type Prefilter interface {
	// MayMatch reports whether name contains one of the prefilter literals.
	// A false result guarantees that no pattern behind the prefilter matches.
	MayMatch(name string) bool

	// LiteralCount returns the number of literals searched for.
	LiteralCount() int
}

// Builder selects and builds a Prefilter.
type Builder struct {
	seq           *literal.Seq
	minLiteralLen int
}

// NewBuilder creates a builder over seq. The sequence is minimized in place
// when Build runs.
func NewBuilder(seq *literal.Seq) *Builder {
	return &Builder{seq: seq, minLiteralLen: 1}
}

// WithMinLiteralLen sets the shortest literal worth searching for. A
// sequence whose shortest literal is below the limit yields no prefilter,
// because any-of searches are only as selective as their weakest literal.
func (b *Builder) WithMinLiteralLen(n int) *Builder {
	b.minLiteralLen = n
	return b
}

// Build returns the selected prefilter, or nil when none is worthwhile.
func (b *Builder) Build() Prefilter {
	if b.seq.IsEmpty() {
		return nil
	}
	b.seq.Minimize()
	if b.seq.MinLen() < b.minLiteralLen {
		return nil
	}
	if b.seq.Len() == 1 {
		return &Substring{needle: string(b.seq.Get(0).Bytes)}
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < b.seq.Len(); i++ {
		builder.AddPattern(b.seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &AhoCorasick{auto: auto, count: b.seq.Len()}
}

// Substring is a prefilter over a single literal.
type Substring struct {
	needle string
}

// NewSubstring returns a prefilter that requires needle.
func NewSubstring(needle string) *Substring {
	return &Substring{needle: needle}
}

// MayMatch implements Prefilter.
func (s *Substring) MayMatch(name string) bool {
	return strings.Contains(name, s.needle)
}

// LiteralCount implements Prefilter.
func (s *Substring) LiteralCount() int {
	return 1
}

// Needle returns the literal searched for.
func (s *Substring) Needle() string {
	return s.needle
}

// AhoCorasick is a prefilter over several literals backed by one automaton.
type AhoCorasick struct {
	auto  *ahocorasick.Automaton
	count int
}

// MayMatch implements Prefilter.
func (a *AhoCorasick) MayMatch(name string) bool {
	return a.auto.IsMatch([]byte(name))
}

// LiteralCount implements Prefilter.
func (a *AhoCorasick) LiteralCount() int {
	return a.count
}
