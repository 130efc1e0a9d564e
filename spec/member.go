// Package spec defines the rule values that the matcher compiler consumes:
// ClassSpecification, MemberSpecification and KeepClassSpecification.
//
// Specifications are immutable once built. They are assembled through
// builders, normally by a configuration parser:
//
//	getter := spec.NewMember().
//	    Name("get*").
//	    Descriptor("()I").
//	    Build()
//
//	class := spec.NewClass().
//	    ClassName("com/example/*").
//	    AddMethod(getter).
//	    Build()
//
// An empty pattern string means the field is absent and matches anything.
// Every list-valued setter normalizes an empty list to nil, so "set to
// nothing" and "never set" are the same value. Equal and Hash compare
// lists element by element.
package spec

import (
	"github.com/coregx/keepmatch/classpool"
)

// MemberSpecification constrains one field or method.
type MemberSpecification struct {
	requiredSetAccessFlags   classpool.AccessFlags
	requiredUnsetAccessFlags classpool.AccessFlags
	annotationType           string
	name                     string
	descriptor               string
	attributeNames           []string
}

// RequiredSetAccessFlags returns the flags a matching member must have.
func (s *MemberSpecification) RequiredSetAccessFlags() classpool.AccessFlags {
	return s.requiredSetAccessFlags
}

// RequiredUnsetAccessFlags returns the flags a matching member must not have.
func (s *MemberSpecification) RequiredUnsetAccessFlags() classpool.AccessFlags {
	return s.requiredUnsetAccessFlags
}

// AnnotationType returns the annotation type pattern, or "" when absent.
func (s *MemberSpecification) AnnotationType() string { return s.annotationType }

// Name returns the member name pattern, or "" when absent.
func (s *MemberSpecification) Name() string { return s.name }

// Descriptor returns the descriptor pattern, or "" when absent.
func (s *MemberSpecification) Descriptor() string { return s.descriptor }

// AttributeNames returns the attribute-name filter, or nil when absent.
func (s *MemberSpecification) AttributeNames() []string { return s.attributeNames }

// Equal reports whether s and o describe the same constraint.
func (s *MemberSpecification) Equal(o *MemberSpecification) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.requiredSetAccessFlags == o.requiredSetAccessFlags &&
		s.requiredUnsetAccessFlags == o.requiredUnsetAccessFlags &&
		s.annotationType == o.annotationType &&
		s.name == o.name &&
		s.descriptor == o.descriptor &&
		equalStrings(s.attributeNames, o.attributeNames)
}

// Hash returns a hash consistent with Equal.
func (s *MemberSpecification) Hash() uint64 {
	if s == nil {
		return 0
	}
	h := newHasher()
	h.uint(uint64(s.requiredSetAccessFlags))
	h.uint(uint64(s.requiredUnsetAccessFlags))
	h.str(s.annotationType)
	h.str(s.name)
	h.str(s.descriptor)
	h.strs(s.attributeNames)
	return h.sum()
}

// MemberBuilder assembles a MemberSpecification.
type MemberBuilder struct {
	s MemberSpecification
}

// NewMember returns a builder for an unconstrained member specification.
func NewMember() *MemberBuilder {
	return &MemberBuilder{}
}

// Access sets the required-set and required-unset flag masks.
func (b *MemberBuilder) Access(set, unset classpool.AccessFlags) *MemberBuilder {
	b.s.requiredSetAccessFlags = set
	b.s.requiredUnsetAccessFlags = unset
	return b
}

// AnnotationType sets the annotation type pattern.
func (b *MemberBuilder) AnnotationType(pattern string) *MemberBuilder {
	b.s.annotationType = pattern
	return b
}

// Name sets the member name pattern.
func (b *MemberBuilder) Name(pattern string) *MemberBuilder {
	b.s.name = pattern
	return b
}

// Descriptor sets the descriptor pattern.
func (b *MemberBuilder) Descriptor(pattern string) *MemberBuilder {
	b.s.descriptor = pattern
	return b
}

// AttributeNames sets the attribute-name filter. An empty list clears it.
func (b *MemberBuilder) AttributeNames(names []string) *MemberBuilder {
	b.s.attributeNames = normalize(names)
	return b
}

// Build returns the specification. The builder may be reused; later
// changes do not affect specifications already built.
func (b *MemberBuilder) Build() *MemberSpecification {
	s := b.s
	return &s
}
