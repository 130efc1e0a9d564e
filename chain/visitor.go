package chain

import (
	"github.com/coregx/keepmatch/classpool"
)

// ClassVisitor receives matched classes.
type ClassVisitor interface {
	VisitClass(c *classpool.Class)
}

// MemberVisitor receives matched fields or methods together with the class
// that declares them.
type MemberVisitor interface {
	VisitMember(owner *classpool.Class, m *classpool.Member)
}

// AttributeVisitor receives matched attributes. member is nil for class
// attributes.
type AttributeVisitor interface {
	VisitAttribute(owner *classpool.Class, member *classpool.Member, a *classpool.Attribute)
}

// PoolVisitor drives a traversal over a whole pool.
type PoolVisitor interface {
	VisitPool(pool *classpool.Pool)
}

// ClassVisitorFunc adapts a function to ClassVisitor.
type ClassVisitorFunc func(c *classpool.Class)

// VisitClass calls f(c).
func (f ClassVisitorFunc) VisitClass(c *classpool.Class) { f(c) }

// MemberVisitorFunc adapts a function to MemberVisitor.
type MemberVisitorFunc func(owner *classpool.Class, m *classpool.Member)

// VisitMember calls f(owner, m).
func (f MemberVisitorFunc) VisitMember(owner *classpool.Class, m *classpool.Member) { f(owner, m) }

// AttributeVisitorFunc adapts a function to AttributeVisitor.
type AttributeVisitorFunc func(owner *classpool.Class, member *classpool.Member, a *classpool.Attribute)

// VisitAttribute calls f(owner, member, a).
func (f AttributeVisitorFunc) VisitAttribute(owner *classpool.Class, member *classpool.Member, a *classpool.Attribute) {
	f(owner, member, a)
}

// PoolVisitorFunc adapts a function to PoolVisitor.
type PoolVisitorFunc func(pool *classpool.Pool)

// VisitPool calls f(pool).
func (f PoolVisitorFunc) VisitPool(pool *classpool.Pool) { f(pool) }

// SymbolVisitor receives every kind of match as a classpool.Symbol. Use
// sym.Kind() to tell classes, fields, methods and attributes apart. owner
// is nil for classes; member is set only for member attributes.
//
// A SymbolVisitor can be passed for any of the callbacks of CompilePool:
//
//	var v chain.SymbolVisitor = func(owner *classpool.Class, member *classpool.Member, sym classpool.Symbol) {
//	    fmt.Println(sym.Kind(), sym.SymbolName())
//	}
//	visitor := compiler.CompilePool(specs, v, v, v, v)
type SymbolVisitor func(owner *classpool.Class, member *classpool.Member, sym classpool.Symbol)

// VisitClass implements ClassVisitor.
func (f SymbolVisitor) VisitClass(c *classpool.Class) { f(nil, nil, c) }

// VisitMember implements MemberVisitor.
func (f SymbolVisitor) VisitMember(owner *classpool.Class, m *classpool.Member) { f(owner, nil, m) }

// VisitAttribute implements AttributeVisitor.
func (f SymbolVisitor) VisitAttribute(owner *classpool.Class, member *classpool.Member, a *classpool.Attribute) {
	f(owner, member, a)
}

// multiPoolVisitor runs its visitors in order.
type multiPoolVisitor []PoolVisitor

func (vs multiPoolVisitor) VisitPool(pool *classpool.Pool) {
	for _, v := range vs {
		v.VisitPool(pool)
	}
}

// Multi returns a PoolVisitor that runs visitors in order. Nil entries are
// skipped.
func Multi(visitors ...PoolVisitor) PoolVisitor {
	out := make(multiPoolVisitor, 0, len(visitors))
	for _, v := range visitors {
		if v != nil {
			out = append(out, v)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}
