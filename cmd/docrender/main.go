// Command docrender renders expectation suites and validation
// results into documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"digital.vasic.docrender/pkg/config"
	"digital.vasic.docrender/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "docrender",
		Short: "Render expectation suites and validation results into documents",
		Long: `docrender turns expectation suites (prescriptive mode) and
validation results (descriptive mode) into a document of sections and
content blocks, encoded as JSON, YAML or HTML.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "Also write JSON logs to this file")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newRenderCmd(g))
	root.AddCommand(newValidateCmd())
	return root
}

// loadConfig reads the config file, if any, then applies
// DOCRENDER_* variables and the global flag overrides.
func (g *globalFlags) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return config.Config{}, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.logFile != "" {
		cfg.LogFile = g.logFile
	}
	if g.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger builds the zap-backed logger described by cfg. With a
// log file configured, entries go to stderr and, as JSON, to the
// file.
func newLogger(cfg config.Config) (logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	fields := []logging.Field{logging.StringField("component", "docrender")}

	stderr, err := logging.NewZapLogger(logging.ZapConfig{
		Level:       level,
		Development: cfg.LogFormat == config.LogFormatConsole,
		Fields:      fields,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if cfg.LogFile == "" {
		return stderr, nil
	}

	file, err := logging.NewZapLogger(logging.ZapConfig{
		Level:       level,
		OutputPaths: []string{cfg.LogFile},
		Fields:      fields,
	})
	if err != nil {
		_ = stderr.Close()
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
	}
	return logging.NewMultiLogger(stderr, file), nil
}
