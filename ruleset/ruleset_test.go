package ruleset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/keepmatch/classpool"
	"github.com/coregx/keepmatch/spec"
)

const yamlRules = `
rules:
  - kind: keep
    modifiers: [allowobfuscation, includedescriptorclasses]
    comment: activities
    class:
      access: [public, "!abstract"]
      name: com/example/**Activity
      extends: android/app/Activity
      methods:
        - name: on*
          descriptor: (Landroid/os/Bundle;)V
  - kind: keepclassmembernames
    class:
      name: com/example/Model
      fields:
        - access: "private, !static"
    if:
      name: com/example/Config
`

const tomlRules = `
[[rules]]
kind = "keep"
modifiers = ["allowobfuscation", "includedescriptorclasses"]
comment = "activities"

[rules.class]
access = ["public", "!abstract"]
name = "com/example/**Activity"
extends = "android/app/Activity"

[[rules.class.methods]]
name = "on*"
descriptor = "(Landroid/os/Bundle;)V"

[[rules]]
kind = "keepclassmembernames"

[rules.class]
name = "com/example/Model"

[[rules.class.fields]]
access = "private, !static"

[rules.if]
name = "com/example/Config"
`

func expectedRules() []*spec.KeepClassSpecification {
	activity := spec.NewClass().
		Comments("activities").
		Access(classpool.AccPublic, classpool.AccAbstract).
		ClassName("com/example/**Activity").
		ExtendsClassName("android/app/Activity").
		AddMethod(spec.NewMember().Name("on*").Descriptor("(Landroid/os/Bundle;)V").Build()).
		Build()
	model := spec.NewClass().
		ClassName("com/example/Model").
		AddField(spec.NewMember().Access(classpool.AccPrivate, classpool.AccStatic).Build()).
		Build()
	return []*spec.KeepClassSpecification{
		spec.NewKeep(activity).
			MarkClasses(true).
			MarkClassMembers(true).
			MarkDescriptorClasses(true).
			AllowObfuscation(true).
			Build(),
		spec.NewKeep(model).
			MarkClassMembers(true).
			AllowShrinking(true).
			MarkConditionally(true).
			Condition(spec.NewClass().ClassName("com/example/Config").Build()).
			Build(),
	}
}

func assertRules(t *testing.T, want, got []*spec.KeepClassSpecification) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "rule %d differs", i)
	}
}

func TestParseYAML(t *testing.T) {
	rules, err := Parse([]byte(yamlRules), FormatYAML)
	require.NoError(t, err)
	assertRules(t, expectedRules(), rules)
	assert.Equal(t, "activities", rules[0].Comments())
}

func TestParseTOML(t *testing.T) {
	rules, err := Parse([]byte(tomlRules), FormatTOML)
	require.NoError(t, err)
	assertRules(t, expectedRules(), rules)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "rules.yml")
	tomlPath := filepath.Join(dir, "rules.toml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlRules), 0o644))
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlRules), 0o644))

	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)
	fromTOML, err := Load(tomlPath)
	require.NoError(t, err)
	assertRules(t, fromYAML, fromTOML)

	_, err = Load(filepath.Join(dir, "rules.pro"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRuleKinds(t *testing.T) {
	tests := []struct {
		kind                              string
		classes, members, allowShrinking bool
	}{
		{"keep", true, true, false},
		{"keepclassmembers", false, true, false},
		{"keepclasseswithmembers", true, true, false},
		{"keepnames", true, true, true},
		{"keepclassmembernames", false, true, true},
		{"keepclasseswithmembernames", true, true, true},
		{"-KeepNames", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			rules, err := Parse([]byte("rules:\n  - kind: \""+tt.kind+"\"\n"), FormatYAML)
			require.NoError(t, err)
			require.Len(t, rules, 1)
			r := rules[0]
			assert.Equal(t, tt.classes, r.MarkClasses())
			assert.Equal(t, tt.members, r.MarkClassMembers())
			assert.Equal(t, tt.allowShrinking, r.AllowShrinking())
			assert.False(t, r.MarkConditionally())
			assert.Nil(t, r.Condition())
			assert.Empty(t, r.ClassName())
		})
	}
	assert.Len(t, Kinds(), 6)
}

func TestInvalidRules(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		index int
	}{
		{"unknown kind", "rules:\n  - kind: dontwarn\n", 0},
		{"unknown modifier", "rules:\n  - kind: keep\n  - kind: keep\n    modifiers: [allowall]\n", 1},
		{"unknown access flag", "rules:\n  - kind: keep\n    class:\n      access: [sometimes]\n", 0},
		{"bad member access", "rules:\n  - kind: keep\n    class:\n      methods:\n        - access: [loud]\n", 0},
		{"bad condition", "rules:\n  - kind: keep\n    if:\n      access: [never]\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatYAML)
			require.Error(t, err)
			var re *RuleError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.index, re.Index)
			assert.Contains(t, err.Error(), "ruleset: rule")
		})
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	_, err := Parse([]byte("rules:\n  - kind: keep\n    clas:\n      name: x\n"), FormatYAML)
	assert.Error(t, err)
}

func TestUnknownFormat(t *testing.T) {
	_, err := Parse(nil, Format("ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	f, err := FormatOf("x.YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
}

func TestEmptyDocument(t *testing.T) {
	rules, err := Parse([]byte("rules: []\n"), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, rules)
}
