package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"digital.vasic.docrender/pkg/bank"
	"digital.vasic.docrender/pkg/config"
	"digital.vasic.docrender/pkg/document"
	"digital.vasic.docrender/pkg/expectation"
	"digital.vasic.docrender/pkg/inspect"
	"digital.vasic.docrender/pkg/logging"
	"digital.vasic.docrender/pkg/metrics"
	"digital.vasic.docrender/pkg/page"
	"digital.vasic.docrender/pkg/render"
	"digital.vasic.docrender/pkg/report"
	"digital.vasic.docrender/pkg/watch"
)

type renderFlags struct {
	mode         string
	suitePath    string
	suiteDir     string
	suiteName    string
	resultsPath  string
	profilePath  string
	auxPath      string
	onlyFailures bool
	filter       string
	format       string
	title        string
	parallelism  int
	outputPath   string
	watch        bool
}

func newRenderCmd(g *globalFlags) *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a suite or a result set",
		Long: `Renders an expectation suite (--mode prescriptive --suite FILE) or
validation results (--mode descriptive --results FILE). An optional data
profile enriches the blocks with column statistics. A suite can also be
picked by name from a directory (--suite-dir DIR --suite-name NAME). With
--watch the
command keeps running and renders again whenever an input file changes.

Example:
  docrender render --mode descriptive --results results.yaml \
    --profile profile.yaml --only-failures --filter "column != 'id'"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.suitePath != "" && f.suiteDir != "" {
				return fmt.Errorf("--suite and --suite-dir are mutually exclusive")
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			f.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), cfg, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.mode, "mode", "m", "", "Render mode: prescriptive or descriptive")
	flags.StringVar(&f.suitePath, "suite", "", "Expectation suite file (prescriptive)")
	flags.StringVar(&f.suiteDir, "suite-dir", "", "Directory of suite files; pick one with --suite-name")
	flags.StringVar(&f.suiteName, "suite-name", "", "Suite to render from --suite-dir")
	flags.StringVar(&f.resultsPath, "results", "", "Validation results file (descriptive)")
	flags.StringVar(&f.profilePath, "profile", "", "Data profile file")
	flags.StringVar(&f.auxPath, "aux-profile", "", "Fallback data profile file")
	flags.BoolVar(&f.onlyFailures, "only-failures", false, "Render only failed results (descriptive)")
	flags.StringVar(&f.filter, "filter", "", "CEL expression selecting the expectations to render")
	flags.StringVarP(&f.format, "format", "f", "", "Output format: json, yaml or html")
	flags.StringVar(&f.title, "title", "", "Document title")
	flags.IntVar(&f.parallelism, "parallelism", 0, "Sections mapped concurrently")
	flags.StringVarP(&f.outputPath, "output", "o", "", "Output file (default stdout)")
	flags.BoolVarP(&f.watch, "watch", "w", false, "Re-render whenever an input file changes")
	return cmd
}

// apply overrides config values with the flags that were set.
func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = f.mode
	}
	if flags.Changed("only-failures") {
		cfg.OnlyReturnFailures = f.onlyFailures
	}
	if flags.Changed("filter") {
		cfg.Filter = f.filter
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("title") {
		cfg.Title = f.title
	}
	if flags.Changed("parallelism") {
		cfg.Parallelism = f.parallelism
	}
}

func runRender(ctx context.Context, stdout io.Writer, cfg config.Config, f *renderFlags) (err error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var m *metrics.InMemoryMetrics
	if level, _ := logging.ParseLevel(cfg.LogLevel); level == logging.LevelDebug {
		m = metrics.NewInMemoryMetrics()
	}

	sources, err := renderOnce(stdout, cfg, f, logger, m)
	if err != nil {
		return err
	}
	if !f.watch {
		return nil
	}

	w, err := watch.New(sources, func(_ context.Context, paths []string) error {
		logger.Info("re-rendering", logging.IntField("changed", len(paths)))
		_, err := renderOnce(stdout, cfg, f, logger, m)
		return err
	}, watch.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("watching inputs", logging.IntField("files", len(w.Files())))
	return w.Run(ctx)
}

// loadSuite reads the suite named by the flags. It returns nil when
// no suite was requested, plus the files that were read.
func (f *renderFlags) loadSuite() (*expectation.Suite, []string, error) {
	if f.suitePath != "" {
		s, err := bank.LoadSuite(f.suitePath)
		return s, []string{f.suitePath}, err
	}
	if f.suiteDir == "" {
		return nil, nil, nil
	}

	b := bank.New()
	if err := b.LoadDir(f.suiteDir); err != nil {
		return nil, nil, err
	}
	name := f.suiteName
	if name == "" {
		if b.Count() != 1 {
			return nil, nil, fmt.Errorf("--suite-name is required: %s holds %d suites (%s)",
				f.suiteDir, b.Count(), strings.Join(b.Names(), ", "))
		}
		name = b.Names()[0]
	}
	s, ok := b.Get(name)
	if !ok {
		return nil, nil, fmt.Errorf("suite %q not found in %s (have: %s)",
			name, f.suiteDir, strings.Join(b.Names(), ", "))
	}
	return s, b.Sources(), nil
}

// renderOnce renders the inputs named by f and returns the files
// it read.
func renderOnce(
	stdout io.Writer,
	cfg config.Config,
	f *renderFlags,
	logger logging.Logger,
	m *metrics.InMemoryMetrics,
) (sources []string, err error) {
	mode, err := cfg.RenderMode()
	if err != nil {
		return nil, err
	}

	var input page.Input
	if input.Suite, sources, err = f.loadSuite(); err != nil {
		return nil, err
	}
	if f.resultsPath != "" {
		if input.Results, err = bank.LoadResults(f.resultsPath); err != nil {
			return nil, err
		}
		sources = append(sources, f.resultsPath)
	}

	var primary, aux inspect.Inspectable
	if f.profilePath != "" {
		p, err := bank.LoadProfile(f.profilePath)
		if err != nil {
			return nil, err
		}
		primary = p
		sources = append(sources, f.profilePath)
	}
	if f.auxPath != "" {
		p, err := bank.LoadProfile(f.auxPath)
		if err != nil {
			return nil, err
		}
		aux = p
		sources = append(sources, f.auxPath)
	}

	encoder, err := report.ForFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	opts := append(render.FromConfig(cfg), render.WithLogger(logger))
	if m != nil {
		opts = append(opts, render.WithMetrics(m))
	}
	doc, err := render.New(opts...).Render(input, primary, mode, aux)
	if m != nil {
		snap := m.Snapshot()
		logger.Debug("render metrics",
			logging.IntField("renders", snap.TotalRenders()),
			logging.IntField("blocks", snap.TotalBlocks()),
			logging.IntField("warnings", snap.TotalWarnings()),
			logging.LogField("blocks_by_kind", snap.Blocks),
		)
	}
	if err != nil {
		return nil, err
	}

	if f.outputPath == "" {
		return sources, encoder.Write(stdout, doc)
	}
	return sources, writeOutput(f.outputPath, encoder, doc)
}

// writeOutput encodes doc into path, reporting close errors.
func writeOutput(path string, encoder report.Encoder, doc *document.Document) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file %s: %w", path, cerr)
		}
	}()
	return encoder.Write(file, doc)
}
