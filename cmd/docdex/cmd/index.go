package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/index"
	"github.com/docdex/docdex/internal/output"
	"github.com/docdex/docdex/internal/store"
)

func newIndexCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the documentation index",
		Long: `Build a searchable index of the documentation tree and persist a
compacted snapshot (section bodies are dropped to bound its size).

The index is rebuilt wholesale on every run; there are no incremental
updates.

Examples:
  docdex index
  docdex index --path docs/specs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, path)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Index this directory instead of the default roots")

	return cmd
}

func runIndex(cmd *cobra.Command, path string) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)

	out.Status("", "Building documentation index...")

	idx, err := index.Build(index.BuildOptions{
		Root:   root,
		Path:   path,
		Config: cfg,
		Progress: func(done, total int) {
			out.Progress(done, total, "indexing")
		},
	})
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	st := store.New(cfg.IndexPath(root))
	if err := st.Save(idx); err != nil {
		return fmt.Errorf("failed to save index: %w", err)
	}

	out.Newline()
	out.Header("Index Built")
	out.Newline()
	out.Statusf("", "Files: %d", len(idx.Files))
	out.Statusf("", "Sections: %d", len(idx.Sections))
	out.Statusf("", "Total chars: %d", idx.TotalChars)
	out.Statusf("", "Total tokens: %d", idx.TotalTokens)
	out.Statusf("", "Unique terms (IDF): %d", len(idx.IDF))
	if idx.SkippedFiles > 0 {
		out.Warningf("%d file(s) could not be read and were skipped", idx.SkippedFiles)
	}
	out.Newline()

	if len(idx.Files) > 0 {
		out.Header("Indexed Files")
		files := make([]index.FileRecord, len(idx.Files))
		copy(files, idx.Files)
		sort.Slice(files, func(i, j int) bool { return files[i].Size > files[j].Size })

		shown := files
		if len(shown) > 15 {
			shown = shown[:15]
		}
		for _, f := range shown {
			out.Statusf("", "%s (%d lines, %d tokens)", f.Path, f.Lines, f.Tokens)
		}
		if len(files) > 15 {
			out.Statusf("", "... and %d more", len(files)-15)
		}
		out.Newline()
	}

	out.Successf("Index saved to: %s", st.Path())
	return nil
}
