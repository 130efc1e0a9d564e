package main

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/coregx/keepmatch"
	"github.com/coregx/keepmatch/chain"
	"github.com/coregx/keepmatch/keep"
	"github.com/coregx/keepmatch/ruleset"
)

// envPrefix selects the environment variables that override the config.
// A double underscore separates nesting levels:
// KEEPMATCH_CHAIN__MIN_PREFILTER_LITERAL_LEN sets chain.min_prefilter_literal_len.
const envPrefix = "KEEPMATCH_"

// Config is the run configuration of the command.
type Config struct {
	Keep   KeepConfig   `koanf:"keep"`
	Chain  ChainConfig  `koanf:"chain"`
	Pool   PoolConfig   `koanf:"pool"`
	Output OutputConfig `koanf:"output"`
}

// KeepConfig enables the optimization axes of the run.
type KeepConfig struct {
	Shrinking    bool `koanf:"shrinking"`
	Optimization bool `koanf:"optimization"`
	Obfuscation  bool `koanf:"obfuscation"`
}

// ChainConfig tunes strategy selection.
type ChainConfig struct {
	LiteralLookup          bool    `koanf:"literal_lookup"`
	Prefilter              bool    `koanf:"prefilter"`
	MinPrefilterLiteralLen int     `koanf:"min_prefilter_literal_len"`
	TrackerWarmup          int     `koanf:"tracker_warmup"`
	TrackerMaxPassRate     float64 `koanf:"tracker_max_pass_rate"`
}

// PoolConfig locates the class pool dumps.
type PoolConfig struct {
	Root     string   `koanf:"root"`
	Patterns []string `koanf:"patterns"`
	Filter   []string `koanf:"filter"`
	Workers  int      `koanf:"workers"`
}

// OutputConfig selects the report format.
type OutputConfig struct {
	Format string `koanf:"format"`
	Color  string `koanf:"color"`
}

func defaultConfigMap() map[string]interface{} {
	kc := keep.DefaultConfig()
	cc := chain.DefaultConfig()
	return map[string]interface{}{
		"keep.shrinking":                  kc.Shrinking,
		"keep.optimization":               kc.Optimization,
		"keep.obfuscation":                kc.Obfuscation,
		"chain.literal_lookup":            cc.EnableLiteralLookup,
		"chain.prefilter":                 cc.EnablePrefilter,
		"chain.min_prefilter_literal_len": cc.MinPrefilterLiteralLen,
		"chain.tracker_warmup":            cc.TrackerWarmup,
		"chain.tracker_max_pass_rate":     cc.TrackerMaxPassRate,
		"pool.root":                       ".",
		"pool.patterns":                   []string{"**/*.yaml", "**/*.yml"},
		"pool.workers":                    0,
		"output.format":                   "text",
		"output.color":                    "auto",
	}
}

// LoadConfig layers the defaults, the optional config file at path and the
// environment, in that order.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaultConfigMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if path != "" {
		format, err := ruleset.FormatOf(path)
		if err != nil {
			return nil, err
		}
		parser, err := ruleset.ParserFor(format)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, conf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Options converts the configuration into compile options.
func (c *Config) Options() keepmatch.Options {
	return keepmatch.Options{
		Keep: keep.Config{
			Shrinking:    c.Keep.Shrinking,
			Optimization: c.Keep.Optimization,
			Obfuscation:  c.Keep.Obfuscation,
		},
		Chain: chain.Config{
			EnableLiteralLookup:    c.Chain.LiteralLookup,
			EnablePrefilter:        c.Chain.Prefilter,
			MinPrefilterLiteralLen: c.Chain.MinPrefilterLiteralLen,
			TrackerWarmup:          c.Chain.TrackerWarmup,
			TrackerMaxPassRate:     c.Chain.TrackerMaxPassRate,
		},
	}
}
