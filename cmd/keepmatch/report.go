package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/coregx/keepmatch/chain"
	"github.com/coregx/keepmatch/keep"
)

// Report is the outcome of one apply run.
type Report struct {
	Rules   int          `yaml:"rules" toml:"rules"`
	Classes int          `yaml:"classes" toml:"classes"`
	Files   []string     `yaml:"files,omitempty" toml:"files,omitempty"`
	Marks   []MarkRecord `yaml:"marks" toml:"marks"`
	Stats   StatsRecord  `yaml:"stats" toml:"stats"`
}

// MarkRecord is one mark in a report.
type MarkRecord struct {
	Kind       string `yaml:"kind" toml:"kind"`
	Class      string `yaml:"class" toml:"class"`
	Member     string `yaml:"member,omitempty" toml:"member,omitempty"`
	Descriptor string `yaml:"descriptor,omitempty" toml:"descriptor,omitempty"`
	Allowance  string `yaml:"allowance" toml:"allowance"`
}

// StatsRecord mirrors chain.Stats.
type StatsRecord struct {
	Specs            uint64 `yaml:"specs" toml:"specs"`
	LiteralLookups   uint64 `yaml:"literal_lookups" toml:"literal_lookups"`
	Scans            uint64 `yaml:"scans" toml:"scans"`
	PrefilteredScans uint64 `yaml:"prefiltered_scans" toml:"prefiltered_scans"`
	Candidates       uint64 `yaml:"candidates" toml:"candidates"`
	Matches          uint64 `yaml:"matches" toml:"matches"`
	PrefilterRejects uint64 `yaml:"prefilter_rejects" toml:"prefilter_rejects"`
}

func newReport(rules, classes int, files []string, marks []keep.Mark, stats chain.Stats) *Report {
	r := &Report{
		Rules:   rules,
		Classes: classes,
		Files:   files,
		Marks:   make([]MarkRecord, 0, len(marks)),
		Stats: StatsRecord{
			Specs:            stats.Specs,
			LiteralLookups:   stats.LiteralLookups,
			Scans:            stats.Scans,
			PrefilteredScans: stats.PrefilteredScans,
			Candidates:       stats.Candidates,
			Matches:          stats.Matches,
			PrefilterRejects: stats.PrefilterRejects,
		},
	}
	for _, m := range marks {
		r.Marks = append(r.Marks, MarkRecord{
			Kind:       m.Kind.String(),
			Class:      m.Class,
			Member:     m.Member,
			Descriptor: m.Descriptor,
			Allowance:  m.Allowance.String(),
		})
	}
	return r
}

// writeReport renders r to w in format.
func writeReport(w io.Writer, r *Report, format, color string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	case "toml":
		if err := toml.NewEncoder(w).Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	case "text", "":
		return writeText(w, r, color)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// useColor resolves the color setting against the writer.
func useColor(w io.Writer, color string) (bool, error) {
	switch color {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("unknown color mode %q", color)
	}
}

type textStyles struct {
	header    lipgloss.Style
	kind      map[string]lipgloss.Style
	allowance lipgloss.Style
	muted     lipgloss.Style
}

func newTextStyles(w io.Writer, color bool) textStyles {
	renderer := lipgloss.NewRenderer(w)
	if color {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	kind := func(c string) lipgloss.Style {
		return renderer.NewStyle().Foreground(lipgloss.Color(c)).Width(17)
	}
	return textStyles{
		header: renderer.NewStyle().Bold(true),
		kind: map[string]lipgloss.Style{
			"class":            kind("39"),
			"member":           kind("42"),
			"descriptor-class": kind("214"),
			"code":             kind("177"),
		},
		allowance: renderer.NewStyle().Italic(true),
		muted:     renderer.NewStyle().Faint(true),
	}
}

func writeText(w io.Writer, r *Report, colorMode string) error {
	color, err := useColor(w, colorMode)
	if err != nil {
		return err
	}
	st := newTextStyles(w, color)

	var b strings.Builder
	fmt.Fprintln(&b, st.header.Render(fmt.Sprintf("%d rules, %d classes, %d marks", r.Rules, r.Classes, len(r.Marks))))
	for _, m := range r.Marks {
		name := m.Class
		if m.Member != "" {
			name += "." + m.Member + m.Descriptor
		}
		line := st.kind[m.Kind].Render(m.Kind) + " " + name
		if m.Allowance != "none" {
			line += " " + st.allowance.Render("allow "+m.Allowance)
		}
		fmt.Fprintln(&b, line)
	}
	fmt.Fprintln(&b, st.muted.Render(fmt.Sprintf(
		"lookups %d, scans %d, prefiltered %d, candidates %d, matches %d, rejects %d",
		r.Stats.LiteralLookups, r.Stats.Scans, r.Stats.PrefilteredScans,
		r.Stats.Candidates, r.Stats.Matches, r.Stats.PrefilterRejects)))

	_, err = io.WriteString(w, b.String())
	return err
}
