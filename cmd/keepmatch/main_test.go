package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testDump = `
classes:
  - name: com/example/Main
    access: [public]
    super: com/example/Base
    methods:
      - name: run
        descriptor: (Lcom/example/Util;)V
        access: public
        attributes:
          - name: Code
      - name: helper
        descriptor: ()V
        access: private
  - name: com/example/Base
    access: [public, abstract]
  - name: com/example/Util
  - name: com/example/MainTest
    super: com/example/Base
`

const testRules = `
rules:
  - kind: keep
    modifiers: [includedescriptorclasses, includecode, allowobfuscation]
    class:
      name: com/example/Main
      methods:
        - access: [public]
          name: run
`

func setupWorkspace(t *testing.T) (root, rules string) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	root = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dumps", "test"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dumps", "app.yaml"), []byte(testDump), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dumps", "test", "extra.yaml"),
		[]byte("classes:\n  - name: com/example/Extra\n"), 0o644))
	rules = filepath.Join(root, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte(testRules), 0o644))
	return root, rules
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestApplyYAML(t *testing.T) {
	root, rules := setupWorkspace(t)
	out, err := run(t, "apply", "--rules", rules, "--root", root, "--pool", "dumps/**/*.yaml", "--format", "yaml")
	require.NoError(t, err)

	var report Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Rules)
	assert.Equal(t, 5, report.Classes)
	assert.Equal(t, []string{"dumps/app.yaml", "dumps/test/extra.yaml"}, report.Files)
	assert.Equal(t, []MarkRecord{
		{Kind: "class", Class: "com/example/Main", Allowance: "obfuscation"},
		{Kind: "member", Class: "com/example/Main", Member: "run", Descriptor: "(Lcom/example/Util;)V", Allowance: "obfuscation"},
		{Kind: "descriptor-class", Class: "com/example/Util", Allowance: "obfuscation"},
		{Kind: "code", Class: "com/example/Main", Member: "run", Descriptor: "(Lcom/example/Util;)V", Allowance: "obfuscation"},
	}, report.Marks)
	assert.Equal(t, uint64(1), report.Stats.Specs)
	assert.Equal(t, uint64(1), report.Stats.LiteralLookups)
}

func TestApplyTOMLMatchesYAML(t *testing.T) {
	root, rules := setupWorkspace(t)
	args := []string{"apply", "--rules", rules, "--root", root, "--pool", "dumps/**/*.yaml"}

	yamlOut, err := run(t, append(args, "--format", "yaml")...)
	require.NoError(t, err)
	tomlOut, err := run(t, append(args, "--format", "toml")...)
	require.NoError(t, err)

	var fromYAML, fromTOML Report
	require.NoError(t, yaml.Unmarshal([]byte(yamlOut), &fromYAML))
	require.NoError(t, toml.Unmarshal([]byte(tomlOut), &fromTOML))
	assert.Equal(t, fromYAML, fromTOML)
}

func TestApplyText(t *testing.T) {
	root, rules := setupWorkspace(t)
	out, err := run(t, "apply", "-r", rules, "--root", root, "-p", "dumps/**/*.yaml",
		"--filter", "!**/test/**,**", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "1 rules, 4 classes, 4 marks")
	assert.Contains(t, out, "com/example/Main.run(Lcom/example/Util;)V")
	assert.Contains(t, out, "allow obfuscation")
	assert.Contains(t, out, "lookups 1")
	assert.NotContains(t, out, "\x1b[")
}

func TestApplyErrors(t *testing.T) {
	root, rules := setupWorkspace(t)

	_, err := run(t, "apply", "--root", root)
	assert.Error(t, err, "rules flag is required")

	_, err = run(t, "apply", "--rules", rules, "--root", root, "--pool", "none/*.yaml")
	assert.Error(t, err)

	_, err = run(t, "apply", "--rules", rules, "--root", root, "--pool", "dumps/*.yaml", "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = run(t, "apply", "--rules", filepath.Join(root, "missing.toml"), "--root", root)
	assert.Error(t, err)
}

func TestMatch(t *testing.T) {
	root, _ := setupWorkspace(t)
	base := []string{"match", "--root", root, "--pool", "dumps/app.yaml"}

	out, err := run(t, append(base, "com/example/Main*")...)
	require.NoError(t, err)
	assert.Equal(t, "com/example/Main\ncom/example/MainTest\n", out)

	out, err = run(t, append(base, "**", "--extends", "com/example/Base")...)
	require.NoError(t, err)
	assert.Equal(t, "com/example/Main\ncom/example/MainTest\n", out)

	out, err = run(t, append(base, "**", "--access", "public,!abstract")...)
	require.NoError(t, err)
	assert.Equal(t, "com/example/Main\n", out)

	_, err = run(t, append(base, "**", "--access", "sometimes")...)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "keepmatch version dev\n", out)
}
