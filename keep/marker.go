package keep

import (
	"strings"

	"github.com/coregx/keepmatch/classpool"
)

// Allowance lists what later passes may still do to a kept symbol.
type Allowance struct {
	Shrinking    bool
	Optimization bool
	Obfuscation  bool
}

// String returns the allowed axes as a comma-separated list, or "none".
func (a Allowance) String() string {
	var parts []string
	if a.Shrinking {
		parts = append(parts, "shrinking")
	}
	if a.Optimization {
		parts = append(parts, "optimization")
	}
	if a.Obfuscation {
		parts = append(parts, "obfuscation")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// Marker receives the marks produced by compiled keep rules.
type Marker interface {
	// MarkClass marks a class matched by a rule that keeps classes.
	MarkClass(c *classpool.Class, a Allowance)

	// MarkMember marks a field or method matched by a rule that keeps
	// members.
	MarkMember(owner *classpool.Class, m *classpool.Member, a Allowance)

	// MarkDescriptorClass marks a pool class named in the descriptor of a
	// marked member.
	MarkDescriptorClass(c *classpool.Class, a Allowance)

	// MarkCodeAttribute marks the Code attribute of a marked method.
	MarkCodeAttribute(owner *classpool.Class, m *classpool.Member, code *classpool.Attribute, a Allowance)
}

// MarkKind identifies the Marker method that produced a Mark.
type MarkKind int

// Mark kinds, one per Marker method.
const (
	MarkClass MarkKind = iota
	MarkMember
	MarkDescriptorClass
	MarkCodeAttribute
)

// String returns a short lowercase name.
func (k MarkKind) String() string {
	switch k {
	case MarkClass:
		return "class"
	case MarkMember:
		return "member"
	case MarkDescriptorClass:
		return "descriptor-class"
	case MarkCodeAttribute:
		return "code"
	default:
		return "unknown"
	}
}

// Mark is one recorded mark.
type Mark struct {
	Kind       MarkKind
	Class      string
	Member     string
	Descriptor string
	Allowance  Allowance
}

// Recorder is a Marker that keeps every mark in order.
type Recorder struct {
	marks []Mark
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Marks returns the recorded marks.
func (r *Recorder) Marks() []Mark { return r.marks }

// Len returns the number of recorded marks.
func (r *Recorder) Len() int { return len(r.marks) }

// Reset drops all recorded marks.
func (r *Recorder) Reset() { r.marks = r.marks[:0] }

// MarkClass implements Marker.
func (r *Recorder) MarkClass(c *classpool.Class, a Allowance) {
	r.marks = append(r.marks, Mark{Kind: MarkClass, Class: c.Name, Allowance: a})
}

// MarkMember implements Marker.
func (r *Recorder) MarkMember(owner *classpool.Class, m *classpool.Member, a Allowance) {
	r.marks = append(r.marks, Mark{Kind: MarkMember, Class: owner.Name, Member: m.Name, Descriptor: m.Descriptor, Allowance: a})
}

// MarkDescriptorClass implements Marker.
func (r *Recorder) MarkDescriptorClass(c *classpool.Class, a Allowance) {
	r.marks = append(r.marks, Mark{Kind: MarkDescriptorClass, Class: c.Name, Allowance: a})
}

// MarkCodeAttribute implements Marker.
func (r *Recorder) MarkCodeAttribute(owner *classpool.Class, m *classpool.Member, _ *classpool.Attribute, a Allowance) {
	r.marks = append(r.marks, Mark{Kind: MarkCodeAttribute, Class: owner.Name, Member: m.Name, Descriptor: m.Descriptor, Allowance: a})
}
