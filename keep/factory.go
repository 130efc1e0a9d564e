// Package keep compiles keep rules into pool visitors that mark what later
// passes must preserve.
//
// A rule applies its class specification through the chain compiler and
// turns the resulting callbacks into marks. The run-wide Config is ANDed
// with each rule's own allowances, so a rule can narrow what a run permits
// but never widen it. A rule that sets MarkConditionally and carries a
// condition first probes the pool with the condition and applies itself
// only when the condition matched at least one class.
package keep

import (
	"github.com/rs/zerolog"

	"github.com/coregx/keepmatch/chain"
	"github.com/coregx/keepmatch/classpool"
	"github.com/coregx/keepmatch/spec"
)

// codeAttribute is the attribute holding a method's bytecode.
const codeAttribute = "Code"

// Config holds the run-wide enablement of each processing axis.
type Config struct {
	Shrinking    bool
	Optimization bool
	Obfuscation  bool
}

// DefaultConfig enables every axis.
func DefaultConfig() Config {
	return Config{Shrinking: true, Optimization: true, Obfuscation: true}
}

// Factory compiles keep rules.
type Factory struct {
	config   Config
	compiler *chain.Compiler
	logger   zerolog.Logger
}

// NewFactory returns a factory using a chain compiler with the default
// configuration.
func NewFactory(config Config) *Factory {
	compiler, _ := chain.NewCompiler(chain.DefaultConfig())
	return NewFactoryWithCompiler(config, compiler)
}

// NewFactoryWithCompiler returns a factory compiling through compiler.
func NewFactoryWithCompiler(config Config, compiler *chain.Compiler) *Factory {
	return &Factory{
		config:   config,
		compiler: compiler,
		logger:   zerolog.Nop(),
	}
}

// WithLogger sets the logger used for debug output and returns f.
func (f *Factory) WithLogger(logger zerolog.Logger) *Factory {
	f.logger = logger
	return f
}

// Compiler returns the chain compiler used by f.
func (f *Factory) Compiler() *chain.Compiler {
	return f.compiler
}

// Allowance returns the effective allowance of rule under the run config.
func (f *Factory) Allowance(rule *spec.KeepClassSpecification) Allowance {
	return Allowance{
		Shrinking:    f.config.Shrinking && rule.AllowShrinking(),
		Optimization: f.config.Optimization && rule.AllowOptimization(),
		Obfuscation:  f.config.Obfuscation && rule.AllowObfuscation(),
	}
}

// Compile compiles rules into one visitor that applies them in order,
// sending marks to marker.
func (f *Factory) Compile(rules []*spec.KeepClassSpecification, marker Marker) chain.PoolVisitor {
	visitors := make([]chain.PoolVisitor, 0, len(rules))
	for i, rule := range rules {
		visitors = append(visitors, f.compileRule(i, rule, marker))
	}
	return chain.Multi(visitors...)
}

func (f *Factory) compileRule(index int, rule *spec.KeepClassSpecification, marker Marker) chain.PoolVisitor {
	rv := &ruleVisitor{
		index:     index,
		rule:      rule,
		marker:    marker,
		allowance: f.Allowance(rule),
		logger:    f.logger,
	}

	var onClass chain.ClassVisitor
	if rule.MarkClasses() {
		onClass = chain.ClassVisitorFunc(rv.markClass)
	}
	var onMember chain.MemberVisitor
	if rule.MarkClassMembers() {
		onMember = chain.MemberVisitorFunc(rv.markMember)
	}
	rv.inner = f.compiler.CompilePool(
		[]*spec.ClassSpecification{rule.Class()},
		onClass, onMember, onMember, nil,
	)

	if rule.MarkConditionally() && rule.Condition() != nil {
		rv.condition = f.compiler.CompileTester(rule.Condition(), nil)
	}

	f.logger.Debug().
		Int("rule", index).
		Str("class", rule.ClassName()).
		Bool("conditional", rv.condition != nil).
		Stringer("allowance", rv.allowance).
		Msg("compiled keep rule")
	return rv
}

// ruleVisitor applies one compiled keep rule.
type ruleVisitor struct {
	index     int
	rule      *spec.KeepClassSpecification
	marker    Marker
	allowance Allowance
	inner     chain.PoolVisitor
	condition *chain.Tester
	logger    zerolog.Logger

	pool *classpool.Pool
}

func (v *ruleVisitor) VisitPool(pool *classpool.Pool) {
	if v.condition != nil {
		v.condition.VisitPool(pool)
		if !v.condition.Matched() {
			v.logger.Debug().Int("rule", v.index).Msg("condition matched nothing, rule skipped")
			return
		}
		v.logger.Debug().
			Int("rule", v.index).
			Int("matches", v.condition.Count()).
			Msg("condition matched")
	}
	v.pool = pool
	v.inner.VisitPool(pool)
	v.pool = nil
}

func (v *ruleVisitor) markClass(c *classpool.Class) {
	v.marker.MarkClass(c, v.allowance)
}

func (v *ruleVisitor) markMember(owner *classpool.Class, m *classpool.Member) {
	v.marker.MarkMember(owner, m, v.allowance)

	if v.rule.MarkDescriptorClasses() {
		for _, name := range classpool.DescriptorClassNames(m.Descriptor) {
			if c := v.pool.Lookup(name); c != nil {
				v.marker.MarkDescriptorClass(c, v.allowance)
			}
		}
	}
	if v.rule.MarkCodeAttributes() && !m.IsField() {
		if code := m.Attribute(codeAttribute); code != nil {
			v.marker.MarkCodeAttribute(owner, m, code, v.allowance)
		}
	}
}
