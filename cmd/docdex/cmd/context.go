package cmd

import (
	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/metrics"
	"github.com/docdex/docdex/internal/output"
)

func newContextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "context [session-id]",
		Short: "Show recorded context-window metrics",
		Long: `Display context-window usage recorded by agent sessions. With a
session ID, show that session only; otherwise show all sessions,
most recent first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID := ""
			if len(args) > 0 {
				sessionID = args[0]
			}
			return runContext(cmd, sessionID)
		},
	}
}

func runContext(cmd *cobra.Command, sessionID string) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)

	entries, exists, err := metrics.Load(cfg.MetricsPath(root))
	if err != nil {
		return err
	}
	if !exists {
		out.Status("", "No context metrics recorded.")
		return nil
	}

	metrics.Show(out, entries, sessionID)
	return nil
}
