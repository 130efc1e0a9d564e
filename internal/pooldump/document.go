package pooldump

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coregx/keepmatch/classpool"
)

type document struct {
	Classes []classDoc `yaml:"classes"`
}

type classDoc struct {
	Name        string                 `yaml:"name"`
	Access      access                 `yaml:"access"`
	Super       string                 `yaml:"super"`
	Interfaces  []string               `yaml:"interfaces"`
	Annotations []string               `yaml:"annotations"`
	Fields      []memberDoc            `yaml:"fields"`
	Methods     []memberDoc            `yaml:"methods"`
	Attributes  []*classpool.Attribute `yaml:"attributes"`
}

type memberDoc struct {
	Name        string                 `yaml:"name"`
	Descriptor  string                 `yaml:"descriptor"`
	Access      access                 `yaml:"access"`
	Annotations []string               `yaml:"annotations"`
	Attributes  []*classpool.Attribute `yaml:"attributes"`
}

func (cd classDoc) class() (*classpool.Class, error) {
	if cd.Name == "" {
		return nil, errors.New("class without a name")
	}
	c := &classpool.Class{
		Name:        cd.Name,
		AccessFlags: classpool.AccessFlags(cd.Access),
		SuperName:   cd.Super,
		Interfaces:  cd.Interfaces,
		Annotations: cd.Annotations,
		Attributes:  cd.Attributes,
	}
	for _, md := range cd.Fields {
		c.Fields = append(c.Fields, md.member(classpool.KindField))
	}
	for _, md := range cd.Methods {
		c.Methods = append(c.Methods, md.member(classpool.KindMethod))
	}
	return c, nil
}

func (md memberDoc) member(kind classpool.Kind) *classpool.Member {
	return &classpool.Member{
		MemberKind:  kind,
		Name:        md.Name,
		Descriptor:  md.Descriptor,
		AccessFlags: classpool.AccessFlags(md.Access),
		Annotations: md.Annotations,
		Attributes:  md.Attributes,
	}
}

// access decodes a flag mask written as a number, a comma-separated string
// of modifier names, or a list of modifier names.
type access classpool.AccessFlags

func (a *access) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	switch node.Kind {
	case yaml.ScalarNode:
		if v, err := strconv.ParseUint(node.Value, 0, 32); err == nil {
			*a = access(v)
			return nil
		}
		names = strings.Split(node.Value, ",")
	case yaml.SequenceNode:
		if err := node.Decode(&names); err != nil {
			return err
		}
	default:
		return fmt.Errorf("line %d: access must be a number or a list of modifiers", node.Line)
	}

	var flags classpool.AccessFlags
	for _, n := range names {
		if n = strings.TrimSpace(n); n == "" {
			continue
		}
		flag, negated, err := classpool.ParseAccessFlag(n)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if negated {
			return fmt.Errorf("line %d: negated modifier %q in a dump", node.Line, n)
		}
		flags |= flag
	}
	*a = access(flags)
	return nil
}
