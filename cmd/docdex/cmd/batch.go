package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/output"
	"github.com/docdex/docdex/internal/search"
)

func newBatchCmd() *cobra.Command {
	var files string
	var top int

	cmd := &cobra.Command{
		Use:   "batch <query>",
		Short: "Search within an explicit set of files",
		Long: `Run a ranked search restricted to specific files. Sections outside the
file list are skipped entirely, regardless of how well they would score.

Example:
  docdex batch "login" --files docs/auth.md,docs/api.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, strings.Join(args, " "), files, top)
		},
	}

	cmd.Flags().StringVar(&files, "files", "", "Comma-separated files to search (required)")
	cmd.Flags().IntVarP(&top, "top", "n", 0, "Maximum number of results (default from config)")
	_ = cmd.MarkFlagRequired("files")

	return cmd
}

func runBatch(cmd *cobra.Command, query, files string, top int) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)

	fileList := splitFileList(files)

	limit := top
	if limit <= 0 {
		limit = cfg.Search.BatchLimit
	}

	idx, err := loadFullIndex(cfg, root)
	if err != nil {
		return err
	}

	results := search.Search(idx, query, search.Options{
		Limit:        limit,
		Files:        fileList,
		PreviewChars: cfg.Search.PreviewChars,
	})

	out.Headerf("Batch Search: %q in %d files", query, len(fileList))
	out.Newline()

	if len(results) == 0 {
		out.Status("", "No matches found.")
		return nil
	}

	for i, r := range results {
		out.Statusf("", "%d. %s:%d [%s]", i+1, r.File, r.LineStart, r.Header)
		out.Statusf("", "   Score: %.3f | %s", r.Score, strings.Join(r.Matched, ", "))
	}

	return nil
}
