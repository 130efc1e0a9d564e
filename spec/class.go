package spec

import (
	"github.com/coregx/keepmatch/classpool"
)

// ClassSpecification constrains a class and, through its field and method
// lists, the members the class must have.
type ClassSpecification struct {
	comments                 string
	requiredSetAccessFlags   classpool.AccessFlags
	requiredUnsetAccessFlags classpool.AccessFlags
	annotationType           string
	className                string
	extendsAnnotationType    string
	extendsClassName         string
	attributeNames           []string
	fieldSpecifications      []*MemberSpecification
	methodSpecifications     []*MemberSpecification
}

// Comments returns free text carried along for reports. It takes no part in
// matching.
func (s *ClassSpecification) Comments() string { return s.comments }

// RequiredSetAccessFlags returns the flags a matching class must have.
func (s *ClassSpecification) RequiredSetAccessFlags() classpool.AccessFlags {
	return s.requiredSetAccessFlags
}

// RequiredUnsetAccessFlags returns the flags a matching class must not have.
func (s *ClassSpecification) RequiredUnsetAccessFlags() classpool.AccessFlags {
	return s.requiredUnsetAccessFlags
}

// AnnotationType returns the annotation type pattern, or "" when absent.
func (s *ClassSpecification) AnnotationType() string { return s.annotationType }

// ClassName returns the class name pattern, or "" when absent.
func (s *ClassSpecification) ClassName() string { return s.className }

// ExtendsAnnotationType returns the pattern an ancestor's annotation must
// match, or "" when absent.
func (s *ClassSpecification) ExtendsAnnotationType() string { return s.extendsAnnotationType }

// ExtendsClassName returns the pattern an ancestor's name must match, or ""
// when absent.
func (s *ClassSpecification) ExtendsClassName() string { return s.extendsClassName }

// HasExtends reports whether the specification constrains ancestors.
func (s *ClassSpecification) HasExtends() bool {
	return s.extendsClassName != "" || s.extendsAnnotationType != ""
}

// AttributeNames returns the class attribute-name filter, or nil.
func (s *ClassSpecification) AttributeNames() []string { return s.attributeNames }

// FieldSpecifications returns the field constraints, or nil.
func (s *ClassSpecification) FieldSpecifications() []*MemberSpecification {
	return s.fieldSpecifications
}

// MethodSpecifications returns the method constraints, or nil.
func (s *ClassSpecification) MethodSpecifications() []*MemberSpecification {
	return s.methodSpecifications
}

// Equal reports whether s and o describe the same constraint. Comments are
// ignored.
func (s *ClassSpecification) Equal(o *ClassSpecification) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.requiredSetAccessFlags == o.requiredSetAccessFlags &&
		s.requiredUnsetAccessFlags == o.requiredUnsetAccessFlags &&
		s.annotationType == o.annotationType &&
		s.className == o.className &&
		s.extendsAnnotationType == o.extendsAnnotationType &&
		s.extendsClassName == o.extendsClassName &&
		equalStrings(s.attributeNames, o.attributeNames) &&
		equalMembers(s.fieldSpecifications, o.fieldSpecifications) &&
		equalMembers(s.methodSpecifications, o.methodSpecifications)
}

// Hash returns a hash consistent with Equal.
func (s *ClassSpecification) Hash() uint64 {
	if s == nil {
		return 0
	}
	h := newHasher()
	s.write(h)
	return h.sum()
}

func (s *ClassSpecification) write(h *hasher) {
	h.uint(uint64(s.requiredSetAccessFlags))
	h.uint(uint64(s.requiredUnsetAccessFlags))
	h.str(s.annotationType)
	h.str(s.className)
	h.str(s.extendsAnnotationType)
	h.str(s.extendsClassName)
	h.strs(s.attributeNames)
	writeMembers(h, s.fieldSpecifications)
	writeMembers(h, s.methodSpecifications)
}

func writeMembers(h *hasher, list []*MemberSpecification) {
	if list == nil {
		h.uint(^uint64(0))
		return
	}
	h.uint(uint64(len(list)))
	for _, m := range list {
		h.uint(m.Hash())
	}
}

// ShallowCopy returns a new specification that shares the attribute, field
// and method lists of s.
func (s *ClassSpecification) ShallowCopy() *ClassSpecification {
	c := *s
	return &c
}

// ClassBuilder assembles a ClassSpecification.
type ClassBuilder struct {
	s ClassSpecification
}

// NewClass returns a builder for an unconstrained class specification.
func NewClass() *ClassBuilder {
	return &ClassBuilder{}
}

// Comments sets the free-text comment.
func (b *ClassBuilder) Comments(text string) *ClassBuilder {
	b.s.comments = text
	return b
}

// Access sets the required-set and required-unset flag masks.
func (b *ClassBuilder) Access(set, unset classpool.AccessFlags) *ClassBuilder {
	b.s.requiredSetAccessFlags = set
	b.s.requiredUnsetAccessFlags = unset
	return b
}

// AnnotationType sets the annotation type pattern.
func (b *ClassBuilder) AnnotationType(pattern string) *ClassBuilder {
	b.s.annotationType = pattern
	return b
}

// ClassName sets the class name pattern.
func (b *ClassBuilder) ClassName(pattern string) *ClassBuilder {
	b.s.className = pattern
	return b
}

// ExtendsAnnotationType sets the ancestor annotation pattern.
func (b *ClassBuilder) ExtendsAnnotationType(pattern string) *ClassBuilder {
	b.s.extendsAnnotationType = pattern
	return b
}

// ExtendsClassName sets the ancestor name pattern.
func (b *ClassBuilder) ExtendsClassName(pattern string) *ClassBuilder {
	b.s.extendsClassName = pattern
	return b
}

// AttributeNames sets the class attribute-name filter. An empty list clears
// it.
func (b *ClassBuilder) AttributeNames(names []string) *ClassBuilder {
	b.s.attributeNames = normalize(names)
	return b
}

// Fields replaces the field constraints. An empty list clears them.
func (b *ClassBuilder) Fields(specs []*MemberSpecification) *ClassBuilder {
	b.s.fieldSpecifications = normalizeMembers(specs)
	return b
}

// Methods replaces the method constraints. An empty list clears them.
func (b *ClassBuilder) Methods(specs []*MemberSpecification) *ClassBuilder {
	b.s.methodSpecifications = normalizeMembers(specs)
	return b
}

// AddField appends a field constraint.
func (b *ClassBuilder) AddField(m *MemberSpecification) *ClassBuilder {
	b.s.fieldSpecifications = append(b.s.fieldSpecifications, m)
	return b
}

// AddMethod appends a method constraint.
func (b *ClassBuilder) AddMethod(m *MemberSpecification) *ClassBuilder {
	b.s.methodSpecifications = append(b.s.methodSpecifications, m)
	return b
}

// Build returns the specification.
func (b *ClassBuilder) Build() *ClassSpecification {
	s := b.s
	return &s
}

// AddField appends a field constraint to s in place. The list is shared with
// any shallow copy whose backing array has room for it, so callers should
// finish mutating before handing s to a compiler.
func (s *ClassSpecification) AddField(m *MemberSpecification) {
	s.fieldSpecifications = append(s.fieldSpecifications, m)
}

// AddMethod appends a method constraint to s in place.
func (s *ClassSpecification) AddMethod(m *MemberSpecification) {
	s.methodSpecifications = append(s.methodSpecifications, m)
}

func normalizeMembers(list []*MemberSpecification) []*MemberSpecification {
	if len(list) == 0 {
		return nil
	}
	return list
}
