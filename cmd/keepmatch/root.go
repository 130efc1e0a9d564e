package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/coregx/keepmatch"
	"github.com/coregx/keepmatch/chain"
	"github.com/coregx/keepmatch/classpool"
	"github.com/coregx/keepmatch/entryfilter"
	"github.com/coregx/keepmatch/internal/logging"
	"github.com/coregx/keepmatch/internal/pooldump"
	"github.com/coregx/keepmatch/keep"
	"github.com/coregx/keepmatch/ruleset"
	"github.com/coregx/keepmatch/spec"
)

var version = "dev"

type rootOptions struct {
	verbosity  int
	configPath string
	root       string
	patterns   []string
	filter     []string
	format     string
	color      string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "keepmatch",
		Short: "Match keep rules against class pools",
		Long: `keepmatch compiles keep rules into class matchers and applies them to
class pool dumps, reporting every class, member, descriptor class and code
attribute the rules keep.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity, cmd.ErrOrStderr())
			logger := logging.GetLogger("cli")
			logger.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml or .toml)")
	pf.StringVar(&opts.root, "root", "", "Directory the pool patterns are relative to")
	pf.StringSliceVarP(&opts.patterns, "pool", "p", nil, "Glob patterns of class pool dumps")
	pf.StringSliceVar(&opts.filter, "filter", nil, "Filter list applied to dump paths, e.g. '!**/test/**,**'")
	pf.StringVarP(&opts.format, "format", "f", "", "Output format: text, yaml or toml")
	pf.StringVar(&opts.color, "color", "", "Color mode: auto, always or never")

	cmd.AddCommand(newApplyCmd(opts), newMatchCmd(opts), newVersionCmd())
	return cmd
}

// resolve loads the configuration and applies flag overrides.
func (o *rootOptions) resolve() (*Config, error) {
	cfg, err := LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.root != "" {
		cfg.Pool.Root = o.root
	}
	if len(o.patterns) > 0 {
		cfg.Pool.Patterns = o.patterns
	}
	if len(o.filter) > 0 {
		cfg.Pool.Filter = o.filter
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.color != "" {
		cfg.Output.Color = o.color
	}
	return cfg, nil
}

func loadPool(ctx context.Context, cfg *Config) (*pooldump.Result, error) {
	logger := logging.GetLogger("pooldump")
	done := logging.LogOperationStart(logger, "load pool")
	defer done()

	loadOpts := pooldump.Options{Workers: cfg.Pool.Workers, Logger: logger}
	if len(cfg.Pool.Filter) > 0 {
		entry := entryfilter.New(cfg.Pool.Root, false)
		entry.SetFilter(cfg.Pool.Filter)
		loadOpts.Accept = entry.AcceptsNested
	}
	res, err := pooldump.Load(ctx, cfg.Pool.Root, cfg.Pool.Patterns, loadOpts)
	if err != nil {
		return nil, err
	}
	for _, name := range res.Duplicates {
		logger.Warn().Str("class", name).Msg("duplicate class ignored")
	}
	return res, nil
}

func newApplyCmd(root *rootOptions) *cobra.Command {
	var rulesPath string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a rule file to a class pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.resolve()
			if err != nil {
				return err
			}
			rules, err := ruleset.Load(rulesPath)
			if err != nil {
				return err
			}
			pool, err := loadPool(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			logger := logging.GetLogger("keepmatch")
			opts := cfg.Options()
			opts.Logger = &logger
			engine, err := keepmatch.Compile(rules, opts)
			if err != nil {
				return err
			}

			marks := keep.NewRecorder()
			engine.Apply(pool.Pool, marks)
			report := newReport(len(rules), pool.Pool.Len(), pool.Files, marks.Marks(), engine.Stats())
			return writeReport(cmd.OutOrStdout(), report, cfg.Output.Format, cfg.Output.Color)
		},
	}
	cmd.Flags().StringVarP(&rulesPath, "rules", "r", "", "Rule file (.yaml or .toml)")
	_ = cmd.MarkFlagRequired("rules")
	return cmd
}

type matchOptions struct {
	access            []string
	annotation        string
	extends           string
	extendsAnnotation string
}

func newMatchCmd(root *rootOptions) *cobra.Command {
	mo := &matchOptions{}
	cmd := &cobra.Command{
		Use:   "match <class-pattern>",
		Short: "List the pool classes matching a class pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.resolve()
			if err != nil {
				return err
			}
			set, unset, err := classpool.ParseAccessFlags(mo.access)
			if err != nil {
				return err
			}
			pool, err := loadPool(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			compiler, err := chain.NewCompiler(cfg.Options().Chain)
			if err != nil {
				return err
			}
			compiler.WithLogger(logging.GetLogger("chain"))

			s := spec.NewClass().
				Access(set, unset).
				AnnotationType(mo.annotation).
				ClassName(args[0]).
				ExtendsClassName(mo.extends).
				ExtendsAnnotationType(mo.extendsAnnotation).
				Build()
			return printMatches(cmd.OutOrStdout(), compiler, s, pool.Pool)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&mo.access, "access", nil, "Required access modifiers, '!' to negate")
	f.StringVar(&mo.annotation, "annotation", "", "Required annotation type pattern")
	f.StringVar(&mo.extends, "extends", "", "Required ancestor name pattern")
	f.StringVar(&mo.extendsAnnotation, "extends-annotation", "", "Required ancestor annotation pattern")
	return cmd
}

func printMatches(w io.Writer, compiler *chain.Compiler, s *spec.ClassSpecification, pool *classpool.Pool) error {
	var err error
	onClass := chain.ClassVisitorFunc(func(c *classpool.Class) {
		if err == nil {
			_, err = fmt.Fprintln(w, c.Name)
		}
	})
	compiler.CompilePool([]*spec.ClassSpecification{s}, onClass, nil, nil, nil).VisitPool(pool)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "keepmatch version %s\n", version)
		},
	}
}
