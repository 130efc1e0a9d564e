package ruleset

import (
	"fmt"
	"strings"

	"github.com/coregx/keepmatch/classpool"
	"github.com/coregx/keepmatch/spec"
)

// RuleError reports an invalid rule of a document.
type RuleError struct {
	Index int
	Kind  string
	Err   error
}

// Error implements the error interface
func (e *RuleError) Error() string {
	return fmt.Sprintf("ruleset: rule %d (%s): %v", e.Index, e.Kind, e.Err)
}

// Unwrap returns the underlying error
func (e *RuleError) Unwrap() error {
	return e.Err
}

// kindMarks is what each rule kind keeps: classes, members, and whether
// the kept symbols may still be shrunk.
var kindMarks = map[string]struct {
	classes, members, allowShrinking bool
}{
	"keep":                       {classes: true, members: true},
	"keepclassmembers":           {members: true},
	"keepclasseswithmembers":     {classes: true, members: true},
	"keepnames":                  {classes: true, members: true, allowShrinking: true},
	"keepclassmembernames":       {members: true, allowShrinking: true},
	"keepclasseswithmembernames": {classes: true, members: true, allowShrinking: true},
}

// Kinds returns the supported rule kinds.
func Kinds() []string {
	return []string{
		"keep",
		"keepclassmembers",
		"keepclasseswithmembers",
		"keepnames",
		"keepclassmembernames",
		"keepclasseswithmembernames",
	}
}

func (rd ruleDoc) build() (*spec.KeepClassSpecification, error) {
	kind := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(rd.Kind), "-"))
	marks, ok := kindMarks[kind]
	if !ok {
		return nil, fmt.Errorf("unknown rule kind %q", rd.Kind)
	}

	class, err := rd.Class.build(rd.Comment)
	if err != nil {
		return nil, fmt.Errorf("class: %w", err)
	}

	b := spec.NewKeep(class).
		MarkClasses(marks.classes).
		MarkClassMembers(marks.members).
		AllowShrinking(marks.allowShrinking)

	for _, m := range rd.Modifiers {
		switch strings.ToLower(strings.TrimSpace(m)) {
		case "includedescriptorclasses":
			b.MarkDescriptorClasses(true)
		case "includecode":
			b.MarkCodeAttributes(true)
		case "allowshrinking":
			b.AllowShrinking(true)
		case "allowoptimization":
			b.AllowOptimization(true)
		case "allowobfuscation":
			b.AllowObfuscation(true)
		default:
			return nil, fmt.Errorf("unknown modifier %q", m)
		}
	}

	if rd.If != nil {
		condition, err := rd.If.build("")
		if err != nil {
			return nil, fmt.Errorf("if: %w", err)
		}
		b.MarkConditionally(true).Condition(condition)
	}
	return b.Build(), nil
}

func (cd classDoc) build(comment string) (*spec.ClassSpecification, error) {
	set, unset, err := classpool.ParseAccessFlags(trimAll(cd.Access))
	if err != nil {
		return nil, err
	}
	b := spec.NewClass().
		Comments(comment).
		Access(set, unset).
		AnnotationType(cd.Annotation).
		ClassName(cd.Name).
		ExtendsClassName(cd.Extends).
		ExtendsAnnotationType(cd.ExtendsAnnotation).
		AttributeNames(trimAll(cd.Attributes))

	for i, md := range cd.Fields {
		m, err := md.build()
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		b.AddField(m)
	}
	for i, md := range cd.Methods {
		m, err := md.build()
		if err != nil {
			return nil, fmt.Errorf("method %d: %w", i, err)
		}
		b.AddMethod(m)
	}
	return b.Build(), nil
}

func (md memberDoc) build() (*spec.MemberSpecification, error) {
	set, unset, err := classpool.ParseAccessFlags(trimAll(md.Access))
	if err != nil {
		return nil, err
	}
	return spec.NewMember().
		Access(set, unset).
		AnnotationType(md.Annotation).
		Name(md.Name).
		Descriptor(md.Descriptor).
		AttributeNames(trimAll(md.Attributes)).
		Build(), nil
}

// trimAll trims every entry and drops blank ones.
func trimAll(list []string) []string {
	var out []string
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
