package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	docmcp "github.com/docdex/docdex/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: `Expose search, peek, topics, and index status as MCP tools over
stdin/stdout, for use by agent clients.

Example client configuration:
  {"command": "docdex", "args": ["serve"]}`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	root := projectRoot()
	cfg := loadConfig(root)

	srv, err := docmcp.NewServer(cfg, root)
	if err != nil {
		return err
	}

	slog.Info("starting MCP server", "root", root)
	return srv.Serve(cmd.Context())
}
