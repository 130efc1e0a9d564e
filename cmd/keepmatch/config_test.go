package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/keepmatch"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, keepmatch.DefaultOptions(), cfg.Options())
	assert.Equal(t, ".", cfg.Pool.Root)
	assert.Equal(t, []string{"**/*.yaml", "**/*.yml"}, cfg.Pool.Patterns)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Output.Color)
}

func TestLoadConfigLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keepmatch.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[keep]
obfuscation = false

[chain]
prefilter = false
min_prefilter_literal_len = 5

[pool]
root = "build"
patterns = ["classes/**/*.yaml"]
`), 0o644))

	t.Setenv("KEEPMATCH_CHAIN__MIN_PREFILTER_LITERAL_LEN", "8")
	t.Setenv("KEEPMATCH_OUTPUT__FORMAT", "yaml")
	t.Setenv("KEEPMATCH_POOL__FILTER", "!**/test/**,**")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Keep.Obfuscation)
	assert.True(t, cfg.Keep.Shrinking)
	assert.False(t, cfg.Chain.Prefilter)
	assert.Equal(t, 8, cfg.Chain.MinPrefilterLiteralLen, "env overrides the file")
	assert.Equal(t, "build", cfg.Pool.Root)
	assert.Equal(t, []string{"classes/**/*.yaml"}, cfg.Pool.Patterns)
	assert.Equal(t, []string{"!**/test/**", "**"}, cfg.Pool.Filter)
	assert.Equal(t, "yaml", cfg.Output.Format)

	opts := cfg.Options()
	assert.False(t, opts.Keep.Obfuscation)
	assert.False(t, opts.Chain.EnablePrefilter)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("keepmatch.ini")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
