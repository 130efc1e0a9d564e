package spec

// KeepClassSpecification is a ClassSpecification plus instructions for what
// to preserve when it matches.
type KeepClassSpecification struct {
	ClassSpecification

	markClasses           bool
	markClassMembers      bool
	markConditionally     bool
	markDescriptorClasses bool
	markCodeAttributes    bool
	allowShrinking        bool
	allowOptimization     bool
	allowObfuscation      bool
	condition             *ClassSpecification
}

// MarkClasses reports whether matching classes are kept.
func (k *KeepClassSpecification) MarkClasses() bool { return k.markClasses }

// MarkClassMembers reports whether matching members are kept.
func (k *KeepClassSpecification) MarkClassMembers() bool { return k.markClassMembers }

// MarkConditionally reports whether the rule only applies when its
// condition matches something in the pool.
func (k *KeepClassSpecification) MarkConditionally() bool { return k.markConditionally }

// MarkDescriptorClasses reports whether classes named in the descriptors of
// kept members are kept too.
func (k *KeepClassSpecification) MarkDescriptorClasses() bool { return k.markDescriptorClasses }

// MarkCodeAttributes reports whether the code of kept methods is kept.
func (k *KeepClassSpecification) MarkCodeAttributes() bool { return k.markCodeAttributes }

// AllowShrinking reports whether kept items may still be removed.
func (k *KeepClassSpecification) AllowShrinking() bool { return k.allowShrinking }

// AllowOptimization reports whether kept items may still be optimized.
func (k *KeepClassSpecification) AllowOptimization() bool { return k.allowOptimization }

// AllowObfuscation reports whether kept items may still be renamed.
func (k *KeepClassSpecification) AllowObfuscation() bool { return k.allowObfuscation }

// Condition returns the condition specification, or nil.
func (k *KeepClassSpecification) Condition() *ClassSpecification { return k.condition }

// Class returns the embedded class specification.
func (k *KeepClassSpecification) Class() *ClassSpecification { return &k.ClassSpecification }

// Equal reports whether k and o describe the same rule.
func (k *KeepClassSpecification) Equal(o *KeepClassSpecification) bool {
	if k == nil || o == nil {
		return k == o
	}
	return k.ClassSpecification.Equal(&o.ClassSpecification) &&
		k.markClasses == o.markClasses &&
		k.markClassMembers == o.markClassMembers &&
		k.markConditionally == o.markConditionally &&
		k.markDescriptorClasses == o.markDescriptorClasses &&
		k.markCodeAttributes == o.markCodeAttributes &&
		k.allowShrinking == o.allowShrinking &&
		k.allowOptimization == o.allowOptimization &&
		k.allowObfuscation == o.allowObfuscation &&
		k.condition.Equal(o.condition)
}

// Hash returns a hash consistent with Equal.
func (k *KeepClassSpecification) Hash() uint64 {
	if k == nil {
		return 0
	}
	h := newHasher()
	k.ClassSpecification.write(h)
	for _, b := range []bool{
		k.markClasses,
		k.markClassMembers,
		k.markConditionally,
		k.markDescriptorClasses,
		k.markCodeAttributes,
		k.allowShrinking,
		k.allowOptimization,
		k.allowObfuscation,
	} {
		h.bool(b)
	}
	h.uint(k.condition.Hash())
	return h.sum()
}

// ShallowCopy returns a new rule that shares lists and the condition with k.
func (k *KeepClassSpecification) ShallowCopy() *KeepClassSpecification {
	c := *k
	return &c
}

// KeepBuilder assembles a KeepClassSpecification.
type KeepBuilder struct {
	k KeepClassSpecification
}

// NewKeep returns a builder for a rule over class. A nil class means any
// class.
func NewKeep(class *ClassSpecification) *KeepBuilder {
	b := &KeepBuilder{}
	if class != nil {
		b.k.ClassSpecification = *class
	}
	return b
}

// MarkClasses sets whether matching classes are kept.
func (b *KeepBuilder) MarkClasses(v bool) *KeepBuilder {
	b.k.markClasses = v
	return b
}

// MarkClassMembers sets whether matching members are kept.
func (b *KeepBuilder) MarkClassMembers(v bool) *KeepBuilder {
	b.k.markClassMembers = v
	return b
}

// MarkConditionally sets whether the rule is gated on its condition.
func (b *KeepBuilder) MarkConditionally(v bool) *KeepBuilder {
	b.k.markConditionally = v
	return b
}

// MarkDescriptorClasses sets whether descriptor classes are kept.
func (b *KeepBuilder) MarkDescriptorClasses(v bool) *KeepBuilder {
	b.k.markDescriptorClasses = v
	return b
}

// MarkCodeAttributes sets whether method code is kept.
func (b *KeepBuilder) MarkCodeAttributes(v bool) *KeepBuilder {
	b.k.markCodeAttributes = v
	return b
}

// AllowShrinking sets the shrinking allowance.
func (b *KeepBuilder) AllowShrinking(v bool) *KeepBuilder {
	b.k.allowShrinking = v
	return b
}

// AllowOptimization sets the optimization allowance.
func (b *KeepBuilder) AllowOptimization(v bool) *KeepBuilder {
	b.k.allowOptimization = v
	return b
}

// AllowObfuscation sets the obfuscation allowance.
func (b *KeepBuilder) AllowObfuscation(v bool) *KeepBuilder {
	b.k.allowObfuscation = v
	return b
}

// Condition sets the condition specification. A nil condition disables
// gating even when MarkConditionally is set.
func (b *KeepBuilder) Condition(c *ClassSpecification) *KeepBuilder {
	b.k.condition = c
	return b
}

// Build returns the rule.
func (b *KeepBuilder) Build() *KeepClassSpecification {
	k := b.k
	return &k
}
