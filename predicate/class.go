package predicate

import (
	"github.com/coregx/keepmatch/classpool"
	"github.com/coregx/keepmatch/internal/sparse"
	"github.com/coregx/keepmatch/spec"
	"github.com/coregx/keepmatch/wildcard"
)

// Class is a compiled ClassSpecification.
//
// A Class keeps scratch state for the ancestor walk, so one value must not
// be tested from several goroutines at once.
type Class struct {
	access            AccessFlags
	annotation        *wildcard.Pattern
	className         *wildcard.Pattern
	extendsAnnotation *wildcard.Pattern
	extendsName       *wildcard.Pattern
	hasExtends        bool
	attributes        *wildcard.Filter
	fields            []*Member
	methods           []*Member

	visited *sparse.SparseSet
	stack   []string
}

// NewClass compiles s with a fresh capture numbering: the class name
// captures first, then the name and descriptor of every field specification
// and then of every method specification, in declaration order.
func NewClass(s *spec.ClassSpecification) *Class {
	return NewClassWithIndexer(s, wildcard.NewIndexer())
}

// NewClassWithIndexer compiles s taking capture indices from ix.
func NewClassWithIndexer(s *spec.ClassSpecification, ix *wildcard.Indexer) *Class {
	p := &Class{
		access: AccessFlags{
			Set:   s.RequiredSetAccessFlags(),
			Unset: s.RequiredUnsetAccessFlags(),
		},
		annotation:        compileOptional(s.AnnotationType(), nil),
		className:         compileOptional(s.ClassName(), ix),
		extendsAnnotation: compileOptional(s.ExtendsAnnotationType(), nil),
		extendsName:       compileOptional(s.ExtendsClassName(), nil),
		hasExtends:        s.HasExtends(),
		attributes:        wildcard.NewFilter(s.AttributeNames()),
	}
	for _, f := range s.FieldSpecifications() {
		p.fields = append(p.fields, NewMember(f, ix))
	}
	for _, mth := range s.MethodSpecifications() {
		p.methods = append(p.methods, NewMember(mth, ix))
	}
	return p
}

// ClassName returns the compiled class name pattern, or nil when the
// specification matches any name.
func (p *Class) ClassName() *wildcard.Pattern { return p.className }

// Fields returns the compiled field predicates.
func (p *Class) Fields() []*Member { return p.fields }

// Methods returns the compiled method predicates.
func (p *Class) Methods() []*Member { return p.methods }

// Attributes returns the class attribute filter, or nil.
func (p *Class) Attributes() *wildcard.Filter { return p.attributes }

// Test reports whether candidate satisfies the predicate. The class name
// capture and the captures of the member patterns are written to m.
//
// Panics with an *ArgumentError if pool or candidate is nil.
func (p *Class) Test(pool *classpool.Pool, candidate *classpool.Class, m *wildcard.Manager) bool {
	mustNotBeNil("Class.Test", "pool", pool == nil)
	mustNotBeNil("Class.Test", "candidate", candidate == nil)

	if !p.access.Test(candidate.AccessFlags) {
		return false
	}
	// The name goes first so annotation and extends patterns can refer back
	// to its captures.
	if p.className != nil && !p.className.Matches(candidate.Name, m) {
		return false
	}
	if p.annotation != nil && !anyMatches(p.annotation, candidate.Annotations, m) {
		return false
	}
	if p.hasExtends && !p.hasMatchingAncestor(pool, candidate, m) {
		return false
	}
	return p.membersSatisfied(pool, candidate, p.fields, candidate.Fields, m) &&
		p.membersSatisfied(pool, candidate, p.methods, candidate.Methods, m)
}

// membersSatisfied requires every predicate to hold for at least one member.
func (p *Class) membersSatisfied(pool *classpool.Pool, owner *classpool.Class, preds []*Member, members []*classpool.Member, m *wildcard.Manager) bool {
	for _, pred := range preds {
		found := false
		for _, member := range members {
			if pred.Test(pool, owner, member, m) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// hasMatchingAncestor walks the strict ancestors of candidate breadth-first,
// superclass before interfaces. Classes of the pool are visited at most
// once, so cyclic hierarchies end in "not found". A supertype missing from
// the pool can match by name but has no annotations and no ancestors of
// its own.
func (p *Class) hasMatchingAncestor(pool *classpool.Pool, candidate *classpool.Class, m *wildcard.Manager) bool {
	if p.visited == nil || p.visited.Capacity() < pool.Len() {
		p.visited = sparse.NewSparseSet(pool.Len())
	}
	p.visited.Clear()
	if idx := pool.Index(candidate.Name); idx >= 0 {
		p.visited.Insert(idx)
	}

	queue := append(p.stack[:0], candidate.Supertypes()...)
	defer func() { p.stack = queue[:0] }()

	for i := 0; i < len(queue); i++ {
		name := queue[i]
		ancestor := pool.Lookup(name)
		if ancestor != nil {
			if !p.visited.Insert(pool.Index(name)) {
				continue
			}
		}
		if p.ancestorMatches(name, ancestor, m) {
			return true
		}
		if ancestor != nil {
			queue = append(queue, ancestor.Supertypes()...)
		}
	}
	return false
}

func (p *Class) ancestorMatches(name string, ancestor *classpool.Class, m *wildcard.Manager) bool {
	if p.extendsName != nil && !p.extendsName.Matches(name, m) {
		return false
	}
	if p.extendsAnnotation != nil {
		if ancestor == nil || !anyMatches(p.extendsAnnotation, ancestor.Annotations, m) {
			return false
		}
	}
	return true
}
