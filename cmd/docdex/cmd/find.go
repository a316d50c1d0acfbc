package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/config"
	"github.com/docdex/docdex/internal/index"
	"github.com/docdex/docdex/internal/output"
	"github.com/docdex/docdex/internal/search"
	"github.com/docdex/docdex/internal/store"
)

// findOptions holds CLI flags for find.
type findOptions struct {
	top    int
	files  string
	format string // "text", "json"
}

func newFindCmd() *cobra.Command {
	var opts findOptions

	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Search indexed sections by relevance",
		Long: `Search every indexed section with TF-IDF ranking.

The persisted snapshot holds no section bodies, so find re-derives the
full index from source files to attach previews.

Examples:
  docdex find "authentication"
  docdex find "error handling" --top 10
  docdex find "login" --files docs/auth.md,docs/api.md
  docdex find "setup" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.top, "top", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().StringVar(&opts.files, "files", "", "Comma-separated file filter")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runFind(cmd *cobra.Command, query string, opts findOptions) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)

	limit := opts.top
	if limit <= 0 {
		limit = cfg.Search.FindLimit
	}

	idx, err := loadFullIndex(cfg, root)
	if err != nil {
		return err
	}

	results := search.Search(idx, query, search.Options{
		Limit:        limit,
		Files:        splitFileList(opts.files),
		PreviewChars: cfg.Search.PreviewChars,
	})

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		out.Statusf("", "No matches for: %s", query)
		out.Dim("Try different keywords or run 'docdex index' to rebuild.")
		return nil
	}

	out.Headerf("Search: %q", query)
	out.Newline()

	for i, r := range results {
		out.Statusf("", "%d. %s:%d", i+1, r.File, r.LineStart)
		if r.Header != r.File {
			section := r.Header
			if r.Hierarchy != "" {
				section = r.Hierarchy + " > " + r.Header
			}
			out.Statusf("", "   Section: %s", section)
		}
		out.Statusf("", "   Score: %.3f | Matched: %s", r.Score, strings.Join(r.Matched, ", "))
		if r.Preview != "" {
			preview := index.TruncateUTF8(strings.ReplaceAll(r.Preview, "\n", " "), 200)
			out.Dim("> " + preview + "...")
		}
		out.Newline()
	}

	return nil
}

// loadFullIndex checks the persisted snapshot exists, then rebuilds the full
// in-memory index over the same scope so section bodies are available.
func loadFullIndex(cfg *config.Config, root string) (*index.Index, error) {
	st := store.New(cfg.IndexPath(root))
	snap := st.Load()
	if snap == nil {
		return nil, fmt.Errorf("no index found. Run 'docdex index' first")
	}

	return index.Build(index.BuildOptions{
		Root:   snap.Root,
		Path:   snap.ScanPath,
		Config: cfg,
	})
}

// splitFileList parses a comma-separated file filter.
func splitFileList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	files := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			files = append(files, p)
		}
	}
	return files
}
