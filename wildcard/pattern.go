// Package wildcard compiles wildcarded name patterns into matchers with
// capture and backreference support.
//
// Pattern syntax:
//   - "?" matches exactly one character other than the package separator '/'
//   - "*" matches any run of characters other than '/'
//   - "**" (or more stars) matches any run of characters, '/' included
//   - "<n>" is a backreference: it matches exactly the text captured by
//     wildcard number n (1-based) earlier in the same rule
//   - every other character is literal; compilation never fails
//
// Wildcards compiled through an Indexer capture the text they matched. The
// indexer numbers wildcards across all pattern fields of one rule, so a
// method-name pattern "get<1>" can refer to the text matched by the "*" of
// the class-name pattern "com/example/*":
//
//	ix := wildcard.NewIndexer()
//	class := ix.Compile("com/example/*")
//	method := ix.Compile("get<1>")
//
//	m := wildcard.NewManager()
//	class.Matches("com/example/Widget", m) // true, capture 1 = "Widget"
//	method.Matches("getWidget", m)         // true
//	method.Matches("getGadget", m)         // false
//
// Wildcards match the shortest text first, so "*_*" against "a_b_c"
// captures "a" and "b_c".
package wildcard

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coregx/keepmatch/literal"
)

// Separator is the package separator that single-segment wildcards never cross.
const Separator = '/'

type tokenKind uint8

const (
	tokLiteral tokenKind = iota
	tokChar              // ?
	tokSegment           // *
	tokAny               // **
	tokBackref           // <n>
)

type token struct {
	kind tokenKind
	text string

	// index is the capture index of a wildcard (0 when not capturing) or
	// the referenced capture index of a backreference.
	index int

	// slot is the position of the capture in Pattern-local storage, or the
	// slot a local backreference reads; -1 when unused.
	slot int
}

// Pattern is a compiled wildcard pattern. A Pattern is immutable and safe
// for concurrent use; capture state lives in the Manager passed to Matches.
type Pattern struct {
	source  string
	tokens  []token
	first   int // first capture index owned by this pattern
	count   int // number of capturing wildcards
	literal bool
	backref bool

	// memo is set when failed (token, position) pairs can be remembered:
	// the pattern has two or more star wildcards and no backreference to
	// its own captures.
	memo bool
}

// Compile compiles a pattern whose wildcards do not capture. Backreferences
// still resolve against the Manager passed to Matches.
//
// Compile never fails: any string is a valid pattern.
func Compile(pattern string) *Pattern {
	return compile(pattern, nil)
}

// Indexer assigns global capture indices to the wildcards of the patterns
// of one rule, in compilation order.
type Indexer struct {
	next int
}

// NewIndexer returns an indexer whose first capture index is 1.
func NewIndexer() *Indexer {
	return &Indexer{next: 1}
}

// Compile compiles pattern and numbers its wildcards.
func (ix *Indexer) Compile(pattern string) *Pattern {
	return compile(pattern, ix)
}

// Next returns the index the next capturing wildcard will receive.
func (ix *Indexer) Next() int {
	return ix.next
}

func compile(src string, ix *Indexer) *Pattern {
	p := &Pattern{source: src, literal: true}
	if ix != nil {
		p.first = ix.next
	}

	var (
		lit          strings.Builder
		stars        int
		localBackref bool
	)
	flush := func() {
		if lit.Len() > 0 {
			p.tokens = append(p.tokens, token{kind: tokLiteral, text: lit.String(), slot: -1})
			lit.Reset()
		}
	}
	addWildcard := func(kind tokenKind) {
		flush()
		t := token{kind: kind, slot: -1}
		if ix != nil {
			t.index = ix.next
			t.slot = p.count
			ix.next++
			p.count++
		}
		p.tokens = append(p.tokens, t)
		p.literal = false
	}

	for i := 0; i < len(src); {
		switch c := src[i]; c {
		case '*':
			j := i
			for j < len(src) && src[j] == '*' {
				j++
			}
			stars++
			if j-i == 1 {
				addWildcard(tokSegment)
			} else {
				addWildcard(tokAny)
			}
			i = j
		case '?':
			addWildcard(tokChar)
			i++
		case '<':
			n, width := parseBackref(src[i:])
			if width == 0 {
				lit.WriteByte(c)
				i++
				continue
			}
			flush()
			t := token{kind: tokBackref, index: n, slot: -1}
			if ix != nil && n >= p.first && n < p.first+p.count {
				t.slot = n - p.first
				localBackref = true
			}
			p.tokens = append(p.tokens, t)
			p.literal = false
			p.backref = true
			i += width
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	p.memo = stars > 1 && !localBackref
	return p
}

// parseBackref parses "<n>" at the start of s and returns n and the width of
// the reference, or width 0 when s does not start with a valid reference.
func parseBackref(s string) (int, int) {
	end := strings.IndexByte(s, '>')
	if end < 2 {
		return 0, 0
	}
	digits := s[1:end]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, 0
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, 0
	}
	return n, end + 1
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.source
}

// IsLiteral reports whether the pattern has no wildcards and no
// backreferences, so that it matches exactly one string.
func (p *Pattern) IsLiteral() bool {
	return p.literal
}

// Literal returns the only string a literal pattern matches. The result is
// meaningful only when IsLiteral is true.
func (p *Pattern) Literal() string {
	return p.source
}

// HasBackrefs reports whether the pattern contains a backreference.
func (p *Pattern) HasBackrefs() bool {
	return p.backref
}

// CaptureRange returns the first capture index owned by the pattern and the
// number of capturing wildcards. Non-capturing patterns report (0, 0).
func (p *Pattern) CaptureRange() (first, count int) {
	if p.count == 0 {
		return 0, 0
	}
	return p.first, p.count
}

// RequiredLiterals returns the literal runs every matching string contains,
// in pattern order.
func (p *Pattern) RequiredLiterals() *literal.Seq {
	seq := literal.NewSeq()
	for _, t := range p.tokens {
		if t.kind == tokLiteral {
			seq.Add(literal.NewLiteral([]byte(t.text), p.literal))
		}
	}
	return seq
}

// Matches reports whether s matches the pattern.
//
// On success every capturing wildcard writes the text it matched into m,
// overwriting earlier values. On failure m is left untouched. A
// backreference to a capture of an earlier pattern is resolved through m
// and fails when that capture is unset. m may be nil, in which case
// captures are discarded and such backreferences fail.
func (p *Pattern) Matches(s string, m *Manager) bool {
	if p.literal {
		return s == p.source
	}
	st := matchState{p: p, s: s, m: m}
	if p.count > 0 {
		st.caps = make([]string, p.count)
	}
	if p.memo {
		st.failed = make([]uint64, ((len(p.tokens)+1)*(len(s)+1)+63)/64)
	}
	if !st.match(0, 0) {
		return false
	}
	if m != nil {
		for i, v := range st.caps {
			m.Capture(p.first+i, v)
		}
	}
	return true
}

type matchState struct {
	p    *Pattern
	s    string
	m    *Manager
	caps []string

	// failed is a bit set of (token, position) pairs known not to match,
	// indexed by ti*(len(s)+1)+pos. Without local backreferences the
	// outcome of a pair does not depend on the captures made before it, so
	// each pair is explored at most once and matching stays
	// O(len(tokens)*len(s)) steps of search.
	failed []uint64
}

func (st *matchState) match(ti, pos int) bool {
	if st.failed == nil {
		return st.step(ti, pos)
	}
	k := ti*(len(st.s)+1) + pos
	if st.failed[k/64]&(1<<(k%64)) != 0 {
		return false
	}
	if st.step(ti, pos) {
		return true
	}
	st.failed[k/64] |= 1 << (k % 64)
	return false
}

// step matches the tokens from ti on against s from pos on.
func (st *matchState) step(ti, pos int) bool {
	toks := st.p.tokens
	s := st.s
	for ti < len(toks) {
		t := &toks[ti]
		switch t.kind {
		case tokLiteral:
			if !strings.HasPrefix(s[pos:], t.text) {
				return false
			}
			pos += len(t.text)

		case tokBackref:
			v, ok := st.resolve(t)
			if !ok || !strings.HasPrefix(s[pos:], v) {
				return false
			}
			pos += len(v)

		case tokChar:
			if pos >= len(s) {
				return false
			}
			r, size := utf8.DecodeRuneInString(s[pos:])
			if r == Separator {
				return false
			}
			st.capture(t, s[pos:pos+size])
			pos += size

		case tokSegment, tokAny:
			if ti == len(toks)-1 {
				rest := s[pos:]
				if t.kind == tokSegment && strings.IndexByte(rest, Separator) >= 0 {
					return false
				}
				st.capture(t, rest)
				return true
			}
			for end := pos; end <= len(s); end++ {
				if t.kind == tokSegment && end > pos && s[end-1] == Separator {
					return false
				}
				st.capture(t, s[pos:end])
				if st.match(ti+1, end) {
					return true
				}
			}
			return false
		}
		ti++
	}
	return pos == len(s)
}

func (st *matchState) capture(t *token, v string) {
	if t.slot >= 0 {
		st.caps[t.slot] = v
	}
}

// resolve returns the text a backreference stands for. Local references
// read the capture of an earlier wildcard of the same pattern; a reference
// to a later wildcard of the same pattern never resolves.
func (st *matchState) resolve(t *token) (string, bool) {
	if t.slot >= 0 {
		return st.caps[t.slot], true
	}
	first, count := st.p.CaptureRange()
	if count > 0 && t.index >= first && t.index < first+count {
		return "", false
	}
	if st.m == nil {
		return "", false
	}
	return st.m.Resolve(t.index)
}
