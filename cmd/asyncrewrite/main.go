// Package main provides the asyncrewrite CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codefang-labs/asyncrewrite/pkg/rwconfig"
	"github.com/codefang-labs/asyncrewrite/pkg/rwlog"
	"github.com/codefang-labs/asyncrewrite/pkg/version"
)

var (
	cfgFile string //nolint:gochecknoglobals // CLI flag variable
	verbose bool   //nolint:gochecknoglobals // CLI flag variable
	quiet   bool   //nolint:gochecknoglobals // CLI flag variable
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "asyncrewrite",
		Short: "Rewrite host scripts so synthetic promises are implicitly awaited",
		Long: `asyncrewrite parses a fragment of the host script language and emits an
equivalent fragment in which every expression that might evaluate to a
synthetic promise is transparently awaited, preserving completion-record
semantics and top-level declaration hoisting.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./asyncrewrite.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	rootCmd.AddCommand(rewriteCmd())
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(traceCmd())
	rootCmd.AddCommand(completionCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "asyncrewrite %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

// loadLogger builds the phase-tagged slog.Logger the rewrite command uses,
// honoring --verbose/--quiet and the config file's logging.level (only
// "debug" changes the level; logging.format is not read).
func loadLogger(cfg *rwconfig.Config) *slog.Logger {
	level := slog.LevelInfo

	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	case cfg != nil && cfg.Logging.Level == "debug":
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	return slog.New(rwlog.NewPhaseHandler(handler, rwlog.PhaseTraverse))
}

func loadConfig() (*rwconfig.Config, error) {
	cfg, err := rwconfig.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}
