// Package keepmatch compiles keep rules for a Java bytecode shrinker into
// matchers over a pool of class symbols.
//
// Rules are class specifications with wildcarded names, access-flag and
// annotation constraints, inheritance constraints and nested member
// constraints. keepmatch compiles them once into a tree of visitors and
// drives that tree over a pool, reporting every class, member, descriptor
// class and code attribute a rule keeps.
//
// Basic usage:
//
//	rule := spec.NewKeep(
//	    spec.NewClass().
//	        ClassName("com/example/**Activity").
//	        AddMethod(spec.NewMember().Name("on*").Build()).
//	        Build(),
//	).MarkClasses(true).MarkClassMembers(true).Build()
//
//	engine := keepmatch.MustCompile([]*spec.KeepClassSpecification{rule}, keepmatch.DefaultOptions())
//	marks := keep.NewRecorder()
//	engine.Apply(pool, marks)
//
// Wildcards:
//   - ?   one character other than '/'
//   - *   any run of characters other than '/'
//   - **  any run of characters
//   - <n> the text matched by the n-th wildcard of the rule, counting from 1
//
// Wildcards are numbered across a rule: the class name first, then the
// name and descriptor of each field specification and each method
// specification. Annotation and extends patterns do not count but may
// refer back.
//
// Performance characteristics:
//   - Literal class names are looked up by name
//   - Wildcard class names with a literal part scan behind a substring prefilter
//   - Ancestor walks visit each pool class at most once
package keepmatch

import (
	"github.com/rs/zerolog"

	"github.com/coregx/keepmatch/chain"
	"github.com/coregx/keepmatch/classpool"
	"github.com/coregx/keepmatch/keep"
	"github.com/coregx/keepmatch/spec"
)

// Options configures compilation.
type Options struct {
	// Keep holds the run-wide enablement of shrinking, optimization and
	// obfuscation.
	Keep keep.Config

	// Chain tunes strategy selection.
	Chain chain.Config

	// Logger receives debug output. Nil disables logging.
	Logger *zerolog.Logger
}

// DefaultOptions enables every axis and every fast path.
func DefaultOptions() Options {
	return Options{
		Keep:  keep.DefaultConfig(),
		Chain: chain.DefaultConfig(),
	}
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	return o.Chain.Validate()
}

// Engine is a compiled rule set.
//
// An Engine is not safe for concurrent use: Apply reuses capture state
// between calls. Compile one Engine per goroutine.
//
// Example:
//
//	engine, err := keepmatch.Compile(rules, keepmatch.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine.Apply(pool, marker)
type Engine struct {
	rules    []*spec.KeepClassSpecification
	compiler *chain.Compiler
	visitor  chain.PoolVisitor
	marker   *forwardingMarker
}

// Compile compiles rules. Returns an error if opts are invalid.
func Compile(rules []*spec.KeepClassSpecification, opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	compiler, err := chain.NewCompiler(opts.Chain)
	if err != nil {
		return nil, err
	}
	compiler.WithLogger(logger)

	e := &Engine{
		rules:    rules,
		compiler: compiler,
		marker:   &forwardingMarker{},
	}
	factory := keep.NewFactoryWithCompiler(opts.Keep, compiler).WithLogger(logger)
	e.visitor = factory.Compile(rules, e.marker)
	return e, nil
}

// MustCompile is like Compile but panics if opts are invalid.
func MustCompile(rules []*spec.KeepClassSpecification, opts Options) *Engine {
	e, err := Compile(rules, opts)
	if err != nil {
		panic("keepmatch: Compile: " + err.Error())
	}
	return e
}

// Apply runs every rule over pool, sending marks to marker.
// marker must not be nil; Apply panics otherwise.
func (e *Engine) Apply(pool *classpool.Pool, marker keep.Marker) {
	if marker == nil {
		panic("keepmatch: Apply: nil marker")
	}
	e.marker.target = marker
	defer func() { e.marker.target = nil }()
	e.visitor.VisitPool(pool)
}

// Rules returns the compiled rules.
func (e *Engine) Rules() []*spec.KeepClassSpecification {
	return e.rules
}

// Stats returns traversal statistics accumulated over all Apply calls.
func (e *Engine) Stats() chain.Stats {
	return e.compiler.Stats()
}

// ResetStats resets the statistics to zero.
func (e *Engine) ResetStats() {
	e.compiler.ResetStats()
}

// forwardingMarker passes marks to the marker of the running Apply call.
type forwardingMarker struct {
	target keep.Marker
}

func (f *forwardingMarker) MarkClass(c *classpool.Class, a keep.Allowance) {
	f.target.MarkClass(c, a)
}

func (f *forwardingMarker) MarkMember(owner *classpool.Class, m *classpool.Member, a keep.Allowance) {
	f.target.MarkMember(owner, m, a)
}

func (f *forwardingMarker) MarkDescriptorClass(c *classpool.Class, a keep.Allowance) {
	f.target.MarkDescriptorClass(c, a)
}

func (f *forwardingMarker) MarkCodeAttribute(owner *classpool.Class, m *classpool.Member, code *classpool.Attribute, a keep.Allowance) {
	f.target.MarkCodeAttribute(owner, m, code, a)
}
