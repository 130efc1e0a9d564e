// Package ruleset loads keep rules from structured YAML or TOML documents.
//
// A document holds a list of rules. Each rule names its kind, optional
// modifiers, the class it applies to and an optional "if" condition:
//
//	rules:
//	  - kind: keep
//	    modifiers: [allowobfuscation]
//	    class:
//	      access: [public, "!abstract"]
//	      name: com/example/**Activity
//	      extends: android/app/Activity
//	      methods:
//	        - name: on*
//	          descriptor: (Landroid/os/Bundle;)V
//	    if:
//	      name: com/example/Config
//
// Access lists may also be written as one comma-separated string.
package ruleset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/coregx/keepmatch/spec"
)

// Format is the syntax of a rule document.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for documents in an unsupported syntax.
var ErrUnknownFormat = errors.New("ruleset: unknown document format")

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// ParserFor returns the koanf parser of format.
func ParserFor(format Format) (koanf.Parser, error) {
	switch format {
	case FormatYAML:
		return yaml.Parser(), nil
	case FormatTOML:
		return toml.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Load reads the rule document at path. The format follows the extension.
func Load(path string) ([]*spec.KeepClassSpecification, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	p, err := ParserFor(format)
	if err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), p); err != nil {
		return nil, fmt.Errorf("failed to load rules from %s: %w", path, err)
	}
	return decode(k)
}

// Parse reads a rule document from data.
func Parse(data []byte, format Format) ([]*spec.KeepClassSpecification, error) {
	p, err := ParserFor(format)
	if err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, p); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	return decode(k)
}

// rawBytesProvider feeds in-memory bytes to a koanf parser.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

type document struct {
	Rules []ruleDoc `koanf:"rules"`
}

type ruleDoc struct {
	Kind      string    `koanf:"kind"`
	Modifiers []string  `koanf:"modifiers"`
	Comment   string    `koanf:"comment"`
	Class     classDoc  `koanf:"class"`
	If        *classDoc `koanf:"if"`
}

type classDoc struct {
	Access            []string    `koanf:"access"`
	Annotation        string      `koanf:"annotation"`
	Name              string      `koanf:"name"`
	Extends           string      `koanf:"extends"`
	ExtendsAnnotation string      `koanf:"extends_annotation"`
	Attributes        []string    `koanf:"attributes"`
	Fields            []memberDoc `koanf:"fields"`
	Methods           []memberDoc `koanf:"methods"`
}

type memberDoc struct {
	Access     []string `koanf:"access"`
	Annotation string   `koanf:"annotation"`
	Name       string   `koanf:"name"`
	Descriptor string   `koanf:"descriptor"`
	Attributes []string `koanf:"attributes"`
}

func decode(k *koanf.Koanf) ([]*spec.KeepClassSpecification, error) {
	var doc document
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &doc,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &doc, conf); err != nil {
		return nil, fmt.Errorf("failed to decode rules: %w", err)
	}

	rules := make([]*spec.KeepClassSpecification, 0, len(doc.Rules))
	for i, rd := range doc.Rules {
		rule, err := rd.build()
		if err != nil {
			return nil, &RuleError{Index: i, Kind: rd.Kind, Err: err}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
