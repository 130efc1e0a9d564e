package predicate

import (
	"github.com/coregx/keepmatch/classpool"
	"github.com/coregx/keepmatch/spec"
	"github.com/coregx/keepmatch/wildcard"
)

// Member is a compiled MemberSpecification.
type Member struct {
	access     AccessFlags
	annotation *wildcard.Pattern
	name       *wildcard.Pattern
	descriptor *wildcard.Pattern
	attributes *wildcard.Filter
}

// NewMember compiles s. Name and descriptor wildcards take capture indices
// from ix, in that order; a nil ix compiles them without captures.
func NewMember(s *spec.MemberSpecification, ix *wildcard.Indexer) *Member {
	return &Member{
		access: AccessFlags{
			Set:   s.RequiredSetAccessFlags(),
			Unset: s.RequiredUnsetAccessFlags(),
		},
		annotation: compileOptional(s.AnnotationType(), nil),
		name:       compileOptional(s.Name(), ix),
		descriptor: compileOptional(s.Descriptor(), ix),
		attributes: wildcard.NewFilter(s.AttributeNames()),
	}
}

// Test reports whether member of owner satisfies the predicate. Captures
// made by the name and descriptor patterns are written to m.
//
// Panics with an *ArgumentError if pool, owner or member is nil.
func (p *Member) Test(pool *classpool.Pool, owner *classpool.Class, member *classpool.Member, m *wildcard.Manager) bool {
	mustNotBeNil("Member.Test", "pool", pool == nil)
	mustNotBeNil("Member.Test", "owner", owner == nil)
	mustNotBeNil("Member.Test", "member", member == nil)

	if !p.access.Test(member.AccessFlags) {
		return false
	}
	if p.name != nil && !p.name.Matches(member.Name, m) {
		return false
	}
	if p.descriptor != nil && !p.descriptor.Matches(member.Descriptor, m) {
		return false
	}
	return p.annotation == nil || anyMatches(p.annotation, member.Annotations, m)
}

// AcceptsAttribute reports whether the attribute filter lets name through.
// A member predicate without a filter accepts every attribute.
func (p *Member) AcceptsAttribute(name string) bool {
	return p.attributes.Accepts(name)
}

// compileOptional returns nil for an absent pattern.
func compileOptional(pattern string, ix *wildcard.Indexer) *wildcard.Pattern {
	if pattern == "" {
		return nil
	}
	if ix == nil {
		return wildcard.Compile(pattern)
	}
	return ix.Compile(pattern)
}

func anyMatches(p *wildcard.Pattern, names []string, m *wildcard.Manager) bool {
	for _, n := range names {
		if p.Matches(n, m) {
			return true
		}
	}
	return false
}
