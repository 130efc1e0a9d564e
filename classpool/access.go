package classpool

import (
	"fmt"
	"strings"
)

// AccessFlags is the access_flags bitmask of a class, field or method as
// defined by the JVM class file format.
type AccessFlags uint32

// Access flag bits. Some bits are shared between symbol kinds with a
// different meaning (for example 0x0040 is ACC_VOLATILE on fields and
// ACC_BRIDGE on methods).
const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSuper        AccessFlags = 0x0020
	AccSynchronized AccessFlags = 0x0020
	AccVolatile     AccessFlags = 0x0040
	AccBridge       AccessFlags = 0x0040
	AccTransient    AccessFlags = 0x0080
	AccVarargs      AccessFlags = 0x0080
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
	AccModule       AccessFlags = 0x8000
)

// accessNames maps configuration modifier names to flag bits.
var accessNames = map[string]AccessFlags{
	"public":       AccPublic,
	"private":      AccPrivate,
	"protected":    AccProtected,
	"static":       AccStatic,
	"final":        AccFinal,
	"synchronized": AccSynchronized,
	"volatile":     AccVolatile,
	"bridge":       AccBridge,
	"transient":    AccTransient,
	"varargs":      AccVarargs,
	"native":       AccNative,
	"interface":    AccInterface,
	"abstract":     AccAbstract,
	"strictfp":     AccStrict,
	"synthetic":    AccSynthetic,
	"@interface":   AccAnnotation,
	"annotation":   AccAnnotation,
	"enum":         AccEnum,
	"module":       AccModule,
}

// classFlagOrder is the order used by String for class-level flags.
var classFlagOrder = []struct {
	flag AccessFlags
	name string
}{
	{AccPublic, "public"},
	{AccPrivate, "private"},
	{AccProtected, "protected"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccInterface, "interface"},
	{AccAbstract, "abstract"},
	{AccSynthetic, "synthetic"},
	{AccAnnotation, "annotation"},
	{AccEnum, "enum"},
	{AccModule, "module"},
}

// Has reports whether all bits of mask are set.
func (f AccessFlags) Has(mask AccessFlags) bool {
	return f&mask == mask
}

// String renders the class-level modifiers of f, followed by any remaining
// bits in hex.
func (f AccessFlags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	rest := f
	for _, e := range classFlagOrder {
		if f&e.flag != 0 {
			parts = append(parts, e.name)
			rest &^= e.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%04x", uint32(rest)))
	}
	return strings.Join(parts, " ")
}

// ParseAccessFlag parses one modifier name such as "public" or "!final".
// It returns the flag bit and whether the modifier was negated.
func ParseAccessFlag(name string) (AccessFlags, bool, error) {
	negated := strings.HasPrefix(name, "!")
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "!")))
	flag, ok := accessNames[key]
	if !ok {
		return 0, false, fmt.Errorf("classpool: unknown access modifier %q", name)
	}
	return flag, negated, nil
}

// ParseAccessFlags folds a list of modifier names into required-set and
// required-unset masks.
func ParseAccessFlags(names []string) (set, unset AccessFlags, err error) {
	for _, n := range names {
		flag, negated, err := ParseAccessFlag(n)
		if err != nil {
			return 0, 0, err
		}
		if negated {
			unset |= flag
		} else {
			set |= flag
		}
	}
	return set, unset, nil
}
