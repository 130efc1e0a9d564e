// Package classpool defines the in-memory class symbols that keep rules are
// matched against.
//
// A Pool holds the Class symbols of one run. Each Class owns its Field and
// Method members and its attributes. The matcher packages treat every symbol
// as read-only; downstream passes may mutate their own state between
// traversals but never during one.
//
// Symbols form a small sum type: *Class, *Member and *Attribute implement
// Symbol, and Kind tells them apart:
//
//	switch s.Kind() {
//	case classpool.KindClass:
//	    c := s.(*classpool.Class)
//	case classpool.KindField, classpool.KindMethod:
//	    m := s.(*classpool.Member)
//	case classpool.KindAttribute:
//	    a := s.(*classpool.Attribute)
//	}
package classpool

// Kind identifies the variant of a Symbol.
type Kind uint8

const (
	// KindClass is a class or interface.
	KindClass Kind = iota
	// KindField is a field member.
	KindField
	// KindMethod is a method member.
	KindMethod
	// KindAttribute is a named attribute blob.
	KindAttribute
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindAttribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// Symbol is implemented by every entry of the pool.
type Symbol interface {
	Kind() Kind
	SymbolName() string
}

// Class is a class entry.
type Class struct {
	Name        string       `yaml:"name"`
	AccessFlags AccessFlags  `yaml:"access"`
	SuperName   string       `yaml:"super,omitempty"`
	Interfaces  []string     `yaml:"interfaces,omitempty"`
	Annotations []string     `yaml:"annotations,omitempty"`
	Fields      []*Member    `yaml:"fields,omitempty"`
	Methods     []*Member    `yaml:"methods,omitempty"`
	Attributes  []*Attribute `yaml:"attributes,omitempty"`
}

// Kind implements Symbol.
func (c *Class) Kind() Kind { return KindClass }

// SymbolName implements Symbol.
func (c *Class) SymbolName() string { return c.Name }

// HasAnnotation reports whether the class carries an annotation of type name.
func (c *Class) HasAnnotation(name string) bool {
	for _, a := range c.Annotations {
		if a == name {
			return true
		}
	}
	return false
}

// Members returns the fields or the methods of the class.
func (c *Class) Members(kind Kind) []*Member {
	if kind == KindField {
		return c.Fields
	}
	return c.Methods
}

// Supertypes returns the superclass name, when set, followed by the
// interface names.
func (c *Class) Supertypes() []string {
	out := make([]string, 0, len(c.Interfaces)+1)
	if c.SuperName != "" {
		out = append(out, c.SuperName)
	}
	return append(out, c.Interfaces...)
}

// Member is a field or a method.
type Member struct {
	MemberKind  Kind         `yaml:"-"`
	Name        string       `yaml:"name"`
	Descriptor  string       `yaml:"descriptor"`
	AccessFlags AccessFlags  `yaml:"access"`
	Annotations []string     `yaml:"annotations,omitempty"`
	Attributes  []*Attribute `yaml:"attributes,omitempty"`
}

// Kind implements Symbol.
func (m *Member) Kind() Kind { return m.MemberKind }

// SymbolName implements Symbol.
func (m *Member) SymbolName() string { return m.Name }

// IsField reports whether m is a field.
func (m *Member) IsField() bool { return m.MemberKind == KindField }

// HasAnnotation reports whether the member carries an annotation of type name.
func (m *Member) HasAnnotation(name string) bool {
	for _, a := range m.Annotations {
		if a == name {
			return true
		}
	}
	return false
}

// Attribute returns the first attribute named name, or nil.
func (m *Member) Attribute(name string) *Attribute {
	for _, a := range m.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Attribute is a named attribute blob such as "Code" or "Signature".
type Attribute struct {
	Name string `yaml:"name"`
	Data []byte `yaml:"data,omitempty"`
}

// Kind implements Symbol.
func (a *Attribute) Kind() Kind { return KindAttribute }

// SymbolName implements Symbol.
func (a *Attribute) SymbolName() string { return a.Name }

// NewField returns a field member.
func NewField(name, descriptor string, flags AccessFlags) *Member {
	return &Member{MemberKind: KindField, Name: name, Descriptor: descriptor, AccessFlags: flags}
}

// NewMethod returns a method member.
func NewMethod(name, descriptor string, flags AccessFlags) *Member {
	return &Member{MemberKind: KindMethod, Name: name, Descriptor: descriptor, AccessFlags: flags}
}
