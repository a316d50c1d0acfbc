package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/output"
	"github.com/docdex/docdex/internal/store"
)

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List indexed files and their section headers",
		Long: `Show a table of contents for the indexed corpus: each file with the
section headers found in it. Useful for orienting before a search.

Reads the saved snapshot directly; headers and line ranges survive
compaction, so no rebuild is needed.`,
		Args: cobra.NoArgs,
		RunE: runTopics,
	}
}

func runTopics(cmd *cobra.Command, _ []string) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)

	snap := store.New(cfg.IndexPath(root)).Load()
	if snap == nil {
		return fmt.Errorf("no index found. Run 'docdex index' first")
	}

	// Group headers per file, preserving section order within each file.
	headers := make(map[string][]string)
	starts := make(map[string][]int)
	seen := make(map[string]map[string]struct{})
	for _, s := range snap.Sections {
		if s.Header == s.File {
			continue
		}
		if seen[s.File] == nil {
			seen[s.File] = make(map[string]struct{})
		}
		if _, ok := seen[s.File][s.Header]; ok {
			continue
		}
		seen[s.File][s.Header] = struct{}{}
		headers[s.File] = append(headers[s.File], s.Header)
		starts[s.File] = append(starts[s.File], s.LineStart)
	}

	files := make([]string, 0, len(headers))
	for f := range headers {
		files = append(files, f)
	}
	sort.Strings(files)

	out.Headerf("Topics: %d files with sections", len(files))
	out.Newline()

	for _, f := range files {
		out.Statusf("", "%s", f)
		for i, h := range headers[f] {
			out.Statusf("", "  - %s (L%d)", h, starts[f][i])
		}
	}

	if len(files) == 0 {
		out.Status("", "No structured sections indexed.")
	}

	return nil
}
