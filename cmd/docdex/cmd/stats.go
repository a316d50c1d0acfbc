package cmd

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/index"
	"github.com/docdex/docdex/internal/output"
	"github.com/docdex/docdex/internal/store"
)

func newStatsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Long:  `Report corpus size, section counts, and the most distinctive terms in the index.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

type statsReport struct {
	BuildID      string  `json:"buildId"`
	Created      string  `json:"created"`
	Root         string  `json:"root"`
	Files        int     `json:"files"`
	Sections     int     `json:"sections"`
	IDFTerms     int     `json:"idfTerms"`
	TotalTokens  int     `json:"totalTokens"`
	TotalChars   int     `json:"totalChars"`
	SkippedFiles int     `json:"skippedFiles,omitempty"`
	AvgTokens    float64 `json:"avgTokensPerSection"`
}

func runStats(cmd *cobra.Command, jsonOut bool) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()
	cfg := loadConfig(root)

	st := store.New(cfg.IndexPath(root))
	if !st.Exists() {
		out.Warning("No index found. Run 'docdex index' first.")
		return nil
	}
	snap := st.Load()
	if snap == nil {
		out.Warning("Index snapshot is unreadable. Run 'docdex index' to rebuild.")
		return nil
	}

	report := statsReport{
		BuildID:      snap.BuildID,
		Created:      snap.Created.Format(time.RFC3339),
		Root:         snap.Root,
		Files:        len(snap.Files),
		Sections:     len(snap.Sections),
		IDFTerms:     len(snap.IDF),
		TotalTokens:  snap.TotalTokens,
		TotalChars:   snap.TotalChars,
		SkippedFiles: snap.SkippedFiles,
	}
	if report.Sections > 0 {
		report.AvgTokens = float64(report.TotalTokens) / float64(report.Sections)
	}

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	out.Header("Index Statistics")
	out.Newline()
	out.Labelf("Build:", "%s (%s)", report.BuildID, report.Created)
	out.Labelf("Root:", "%s", report.Root)
	out.Labelf("Files:", "%d", report.Files)
	out.Labelf("Sections:", "%d", report.Sections)
	out.Labelf("Tokens:", "%d (%.1f avg per section)", report.TotalTokens, report.AvgTokens)
	out.Labelf("Chars:", "%d", report.TotalChars)
	out.Labelf("IDF:", "%d terms", report.IDFTerms)
	if report.SkippedFiles > 0 {
		out.Warningf("%d files skipped during indexing", report.SkippedFiles)
	}

	printTopTerms(out, snap)
	return nil
}

// printTopTerms shows the highest-IDF terms, the ones most useful for
// narrowing a search.
func printTopTerms(out *output.Writer, snap *index.Index) {
	if len(snap.IDF) == 0 {
		return
	}

	type term struct {
		word string
		idf  float64
	}
	terms := make([]term, 0, len(snap.IDF))
	for w, v := range snap.IDF {
		terms = append(terms, term{w, v})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].idf != terms[j].idf {
			return terms[i].idf > terms[j].idf
		}
		return terms[i].word < terms[j].word
	})

	limit := 20
	if len(terms) < limit {
		limit = len(terms)
	}

	out.Newline()
	out.Header("Most distinctive terms")
	for _, t := range terms[:limit] {
		out.Statusf("", "  %-24s %.3f", t.word, t.idf)
	}
}
