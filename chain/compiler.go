package chain

import (
	"github.com/rs/zerolog"

	"github.com/coregx/keepmatch/classpool"
	"github.com/coregx/keepmatch/predicate"
	"github.com/coregx/keepmatch/prefilter"
	"github.com/coregx/keepmatch/spec"
	"github.com/coregx/keepmatch/wildcard"
)

// Compiler turns class specifications into pool visitors.
//
// Compiling is cheap compared to traversal and is expected to happen once
// per run. The visitors it returns carry per-specification capture state,
// so a compiled visitor must not be driven by several goroutines at once.
// Compile separately for concurrent traversals.
type Compiler struct {
	config Config
	logger zerolog.Logger
	stats  *counters
}

// NewCompiler returns a compiler for config.
func NewCompiler(config Config) (*Compiler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Compiler{
		config: config,
		logger: zerolog.Nop(),
		stats:  &counters{},
	}, nil
}

// WithLogger sets the logger used for debug output and returns c.
func (c *Compiler) WithLogger(logger zerolog.Logger) *Compiler {
	c.logger = logger
	return c
}

// Config returns the configuration the compiler was built with.
func (c *Compiler) Config() Config {
	return c.config
}

// Stats returns a snapshot of the statistics of every visitor compiled by c.
func (c *Compiler) Stats() Stats {
	return c.stats.snapshot()
}

// ResetStats resets the statistics to zero.
func (c *Compiler) ResetStats() {
	c.stats.reset()
}

// CompilePool compiles specs into one visitor that applies each
// specification in turn. For every class a specification matches, onClass
// is called first, then onAttribute for the class attributes selected by the
// specification's attribute names, then onField and onMethod for every
// member satisfying one of its member specifications. onAttribute also
// receives the attributes of those members.
//
// Any callback may be nil.
func (c *Compiler) CompilePool(specs []*spec.ClassSpecification, onClass ClassVisitor, onField, onMethod MemberVisitor, onAttribute AttributeVisitor) PoolVisitor {
	visitors := make([]PoolVisitor, 0, len(specs))
	for _, s := range specs {
		visitors = append(visitors, c.compileSpec(s, onClass, onField, onMethod, onAttribute, wildcard.NewManager()))
	}
	return Multi(visitors...)
}

// CompileTester compiles s into a probe that counts the classes of a pool
// satisfying it. The probe only records; it calls nothing and never stops
// a traversal. A nil m gets a fresh manager.
//
// Example:
//
//	tester := compiler.CompileTester(condition, nil)
//	tester.VisitPool(pool)
//	if tester.Matched() {
//	    rule.VisitPool(pool)
//	}
func (c *Compiler) CompileTester(s *spec.ClassSpecification, m *wildcard.Manager) *Tester {
	if m == nil {
		m = wildcard.NewManager()
	}
	t := &Tester{}
	t.visitor = c.compileSpec(s, t, nil, nil, nil, m)
	return t
}

func (c *Compiler) compileSpec(s *spec.ClassSpecification, onClass ClassVisitor, onField, onMethod MemberVisitor, onAttribute AttributeVisitor, m *wildcard.Manager) *specVisitor {
	pred := predicate.NewClass(s)
	v := &specVisitor{
		pred:     pred,
		m:        m,
		stats:    c.stats,
		strategy: SelectStrategy(pred.ClassName(), c.config),
		next: combine(
			pred.Attributes(),
			pred.Fields(),
			pred.Methods(),
			onClass, onField, onMethod, onAttribute,
			m,
		),
	}

	switch v.strategy {
	case UseLiteralLookup:
		v.literal = pred.ClassName().Literal()
	case UsePrefilteredScan:
		lit, _ := pred.ClassName().RequiredLiterals().Longest()
		v.tracker = prefilter.NewTrackerWithConfig(
			prefilter.NewSubstring(string(lit.Bytes)),
			prefilter.TrackerConfig{
				CheckInterval: prefilter.DefaultTrackerConfig().CheckInterval,
				MaxPassRate:   c.config.TrackerMaxPassRate,
				WarmupPeriod:  uint64(c.config.TrackerWarmup),
			},
		)
	}

	c.stats.specs.Add(1)
	c.logger.Debug().
		Str("class", s.ClassName()).
		Stringer("strategy", v.strategy).
		Int("fields", len(pred.Fields())).
		Int("methods", len(pred.Methods())).
		Msg("compiled class specification")
	return v
}

// specVisitor applies one compiled specification to a pool.
type specVisitor struct {
	pred     *predicate.Class
	m        *wildcard.Manager
	next     ClassVisitor
	stats    *counters
	strategy Strategy
	literal  string
	tracker  *prefilter.Tracker
}

func (v *specVisitor) VisitPool(pool *classpool.Pool) {
	if b, ok := v.next.(poolBinder); ok {
		b.bindPool(pool)
	}
	v.stats.traversal(v.strategy)

	switch v.strategy {
	case UseLiteralLookup:
		if c := pool.Lookup(v.literal); c != nil {
			v.visit(pool, c)
		}

	case UsePrefilteredScan:
		for _, c := range pool.Classes() {
			if !v.tracker.MayMatch(c.Name) {
				v.stats.prefilterRejects.Add(1)
				continue
			}
			if v.visit(pool, c) {
				v.tracker.ConfirmMatch()
			}
		}

	default:
		for _, c := range pool.Classes() {
			v.visit(pool, c)
		}
	}
}

// visit clears captures left by the previous candidate, then tests c.
func (v *specVisitor) visit(pool *classpool.Pool, c *classpool.Class) bool {
	v.m.Reset()
	v.stats.candidates.Add(1)
	if !v.pred.Test(pool, c, v.m) {
		return false
	}
	v.stats.matches.Add(1)
	if v.next != nil {
		v.next.VisitClass(c)
	}
	return true
}

// Tester records whether any class of a pool satisfies a specification.
type Tester struct {
	visitor *specVisitor
	count   int
}

// VisitPool counts the matching classes of pool, discarding the result of
// any earlier traversal.
func (t *Tester) VisitPool(pool *classpool.Pool) {
	t.count = 0
	t.visitor.VisitPool(pool)
}

// VisitClass implements ClassVisitor for the compiled specification.
func (t *Tester) VisitClass(*classpool.Class) {
	t.count++
}

// Matched reports whether the last traversal found a match.
func (t *Tester) Matched() bool {
	return t.count > 0
}

// Count returns the number of matches of the last traversal.
func (t *Tester) Count() int {
	return t.count
}

// Strategy returns the strategy the tester uses to find candidates.
func (t *Tester) Strategy() Strategy {
	return t.visitor.strategy
}
