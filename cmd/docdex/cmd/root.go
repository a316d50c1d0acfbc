// Package cmd provides the CLI commands for docdex.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/config"
	"github.com/docdex/docdex/internal/logging"
	"github.com/docdex/docdex/pkg/version"
)

// Debug logging flag state.
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the docdex CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docdex",
		Short: "Navigate large documentation sets with a TF-IDF index",
		Long: `docdex builds a searchable index of a documentation tree, splits long
documents into addressable sections, and answers relevance-ranked queries
over those sections.

For reading a small file directly, use your editor. docdex is for
documentation too large to hold in working memory at once.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("docdex version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.docdex/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newFindCmd())
	cmd.AddCommand(newPeekCmd())
	cmd.AddCommand(newChunkCmd())
	cmd.AddCommand(newTopicsCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newBatchCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newTasksCmd())
	cmd.AddCommand(newContextCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging loads .env overrides and switches on debug logging if requested.
func startLogging(_ *cobra.Command, _ []string) error {
	// Optional; a missing .env is the normal case.
	_ = godotenv.Load()

	if debugMode {
		logger, cleanup, err := logging.Setup(logging.DebugConfig())
		if err != nil {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		loggingCleanup = cleanup
		slog.SetDefault(logger)
		slog.Info("Debug logging enabled",
			slog.String("log_file", logging.DefaultLogPath()))
	}

	return nil
}

// stopLogging closes the debug log file if one was opened.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		slog.Info("Debug logging stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// projectRoot locates the project root, falling back to the working directory.
func projectRoot() string {
	root, err := config.FindProjectRoot(".")
	if err != nil {
		root, _ = os.Getwd()
	}
	return root
}

// loadConfig loads configuration for the given root, falling back to
// defaults when the config file is unusable.
func loadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		slog.Warn("using default configuration", slog.String("error", err.Error()))
		return config.NewConfig()
	}
	return cfg
}
