package wildcard

import (
	"strings"

	"github.com/coregx/keepmatch/literal"
	"github.com/coregx/keepmatch/prefilter"
)

// minPrefilterEntries is the number of positive entries from which a filter
// builds a literal prefilter. Below it, trying the entries directly is
// cheaper than an extra pass over the name.
const minPrefilterEntries = 2

// Filter is an ordered list of patterns, each optionally negated with a
// leading '!'. Entries are tried in order and the first one whose pattern
// matches decides: a negated entry rejects, a plain entry accepts. A name
// no entry matches is rejected.
//
// A nil *Filter is an absent filter and accepts everything.
//
// Example:
//
//	f := wildcard.ParseFilter("!**Test,com/example/**")
//	f.Accepts("com/example/Foo")     // true
//	f.Accepts("com/example/FooTest") // false, rejected by the first entry
//	f.Accepts("org/other/Bar")       // false, no entry matches
type Filter struct {
	entries []filterEntry
	pf      prefilter.Prefilter
}

type filterEntry struct {
	negated bool
	pattern *Pattern
}

// NewFilter compiles patterns into a filter. An empty list yields nil, the
// absent filter.
func NewFilter(patterns []string) *Filter {
	if len(patterns) == 0 {
		return nil
	}
	f := &Filter{entries: make([]filterEntry, 0, len(patterns))}
	for _, p := range patterns {
		negated := strings.HasPrefix(p, "!")
		f.entries = append(f.entries, filterEntry{
			negated: negated,
			pattern: Compile(strings.TrimPrefix(p, "!")),
		})
	}
	f.pf = f.buildPrefilter()
	return f
}

// ParseFilter splits a comma-separated filter such as "!**.txt,**" and
// compiles it. Blank entries are dropped; an all-blank string yields nil.
func ParseFilter(s string) *Filter {
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return NewFilter(patterns)
}

// buildPrefilter collects the longest required literal of every positive
// entry. A name that contains none of them can only reach a negated entry or
// the end of the list, and both reject.
func (f *Filter) buildPrefilter() prefilter.Prefilter {
	seq := literal.NewSeq()
	positives := 0
	for _, e := range f.entries {
		if e.negated {
			continue
		}
		positives++
		lit, ok := e.pattern.RequiredLiterals().Longest()
		if !ok {
			return nil
		}
		seq.Add(lit)
	}
	if positives < minPrefilterEntries {
		return nil
	}
	return prefilter.NewBuilder(seq).Build()
}

// Accepts evaluates the filter against name.
func (f *Filter) Accepts(name string) bool {
	if f == nil {
		return true
	}
	if f.pf != nil && !f.pf.MayMatch(name) {
		return false
	}
	return f.decide(name)
}

func (f *Filter) decide(name string) bool {
	for _, e := range f.entries {
		if e.pattern.Matches(name, nil) {
			return !e.negated
		}
	}
	return false
}

// Len returns the number of entries.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.entries)
}

// Patterns returns the entries in source form, negation prefix included.
func (f *Filter) Patterns() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.pattern.String()
		if e.negated {
			out[i] = "!" + out[i]
		}
	}
	return out
}
