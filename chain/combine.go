package chain

import (
	"github.com/coregx/keepmatch/classpool"
	"github.com/coregx/keepmatch/predicate"
	"github.com/coregx/keepmatch/spec"
	"github.com/coregx/keepmatch/wildcard"
)

// poolBinder is implemented by class visitors that test members and so need
// the pool of the traversal driving them.
type poolBinder interface {
	bindPool(pool *classpool.Pool)
}

// CompileCombined returns a class visitor that calls onClass and then
// visits the class attributes named by attributeNames and the members
// satisfying fieldSpecs and methodSpecs.
//
// When attributeNames, fieldSpecs and methodSpecs are all empty, onClass
// itself is returned.
//
// Member patterns compiled here do not capture. Their backreferences read
// captures from m, which the caller shares with its class matcher.
func CompileCombined(
	attributeNames []string,
	fieldSpecs, methodSpecs []*spec.MemberSpecification,
	onClass ClassVisitor,
	onField, onMethod MemberVisitor,
	onAttribute AttributeVisitor,
	m *wildcard.Manager,
) ClassVisitor {
	if len(attributeNames) == 0 && len(fieldSpecs) == 0 && len(methodSpecs) == 0 {
		return onClass
	}
	return combine(
		wildcard.NewFilter(attributeNames),
		compileMembers(fieldSpecs),
		compileMembers(methodSpecs),
		onClass, onField, onMethod, onAttribute,
		m,
	)
}

// CompileMemberPass returns a class visitor that calls onMember for every
// field (isField) or method of the class satisfying memberSpec, and
// onAttribute for the attributes of each such member that pass the
// specification's attribute filter.
//
// The returned visitor also implements PoolVisitor, applying the pass to
// every class of a pool.
func CompileMemberPass(memberSpec *spec.MemberSpecification, isField bool, onMember MemberVisitor, onAttribute AttributeVisitor, m *wildcard.Manager) ClassVisitor {
	return newMemberPass(predicate.NewMember(memberSpec, nil), isField, onMember, onAttribute, m)
}

func compileMembers(specs []*spec.MemberSpecification) []*predicate.Member {
	out := make([]*predicate.Member, 0, len(specs))
	for _, s := range specs {
		out = append(out, predicate.NewMember(s, nil))
	}
	return out
}

// combine builds the visitor run after a class matched. Member passes
// without any callback are dropped; when nothing is left to do besides
// onClass, onClass is returned as is.
func combine(
	attributes *wildcard.Filter,
	fields, methods []*predicate.Member,
	onClass ClassVisitor,
	onField, onMethod MemberVisitor,
	onAttribute AttributeVisitor,
	m *wildcard.Manager,
) ClassVisitor {
	cv := &combinedVisitor{onClass: onClass}
	if attributes != nil && onAttribute != nil {
		cv.attributes = attributes
		cv.onAttribute = onAttribute
	}
	if onField != nil || onAttribute != nil {
		for _, f := range fields {
			cv.passes = append(cv.passes, newMemberPass(f, true, onField, onAttribute, m))
		}
	}
	if onMethod != nil || onAttribute != nil {
		for _, mth := range methods {
			cv.passes = append(cv.passes, newMemberPass(mth, false, onMethod, onAttribute, m))
		}
	}
	if cv.attributes == nil && len(cv.passes) == 0 {
		return onClass
	}
	return cv
}

// combinedVisitor runs onClass, the class attribute pass and the member
// passes, in that order.
type combinedVisitor struct {
	onClass     ClassVisitor
	attributes  *wildcard.Filter
	onAttribute AttributeVisitor
	passes      []*MemberPass
}

func (v *combinedVisitor) VisitClass(c *classpool.Class) {
	if v.onClass != nil {
		v.onClass.VisitClass(c)
	}
	if v.attributes != nil {
		for _, a := range c.Attributes {
			if v.attributes.Accepts(a.Name) {
				v.onAttribute.VisitAttribute(c, nil, a)
			}
		}
	}
	for _, p := range v.passes {
		p.VisitClass(c)
	}
}

func (v *combinedVisitor) bindPool(pool *classpool.Pool) {
	for _, p := range v.passes {
		p.bindPool(pool)
	}
	if b, ok := v.onClass.(poolBinder); ok {
		b.bindPool(pool)
	}
}

// MemberPass visits the fields or the methods of a class that satisfy one
// member predicate.
type MemberPass struct {
	pred        *predicate.Member
	kind        classpool.Kind
	onMember    MemberVisitor
	onAttribute AttributeVisitor
	m           *wildcard.Manager
	pool        *classpool.Pool

	// saved holds the captures of the class match while members are tried.
	saved *wildcard.Manager
}

func newMemberPass(pred *predicate.Member, isField bool, onMember MemberVisitor, onAttribute AttributeVisitor, m *wildcard.Manager) *MemberPass {
	kind := classpool.KindMethod
	if isField {
		kind = classpool.KindField
	}
	if m == nil {
		m = wildcard.NewManager()
	}
	return &MemberPass{
		pred:        pred,
		kind:        kind,
		onMember:    onMember,
		onAttribute: onAttribute,
		m:           m,
		saved:       wildcard.NewManager(),
	}
}

// VisitClass visits the matching members of c. Outside a pool traversal the
// members are tested against a pool holding only c.
//
// Every member is tested against the captures m held when the pass started,
// and m holds them again when the pass returns, so captures made for one
// member never reach the next member or the next pass.
func (p *MemberPass) VisitClass(c *classpool.Class) {
	pool := p.pool
	if pool == nil {
		pool = classpool.NewPool(c)
	}
	p.saved.CopyFrom(p.m)
	defer p.m.CopyFrom(p.saved)

	for _, member := range c.Members(p.kind) {
		p.m.CopyFrom(p.saved)
		if !p.pred.Test(pool, c, member, p.m) {
			continue
		}
		if p.onMember != nil {
			p.onMember.VisitMember(c, member)
		}
		if p.onAttribute != nil {
			for _, a := range member.Attributes {
				if p.pred.AcceptsAttribute(a.Name) {
					p.onAttribute.VisitAttribute(c, member, a)
				}
			}
		}
	}
}

// VisitPool applies the pass to every class of pool.
func (p *MemberPass) VisitPool(pool *classpool.Pool) {
	p.bindPool(pool)
	for _, c := range pool.Classes() {
		p.VisitClass(c)
	}
}

func (p *MemberPass) bindPool(pool *classpool.Pool) {
	p.pool = pool
}
