// Package search ranks indexed sections against a free-text query using
// TF-IDF: term frequency within a section times the corpus-level inverse
// document frequency.
package search

import (
	"sort"

	"github.com/docdex/docdex/internal/index"
)

// DefaultPreviewChars caps result previews when options leave it unset.
const DefaultPreviewChars = 300

// Options parameterizes a search.
type Options struct {
	// Limit truncates the ranked result list. Non-positive means 10.
	Limit int

	// Files, when non-empty, restricts scoring to sections owned by these
	// paths. Everything else is skipped entirely.
	Files []string

	// PreviewChars caps each result's content preview.
	PreviewChars int
}

// Result is one ranked section.
type Result struct {
	File      string   `json:"file"`
	Header    string   `json:"header"`
	Hierarchy string   `json:"hierarchy,omitempty"`
	Score     float64  `json:"score"`
	Matched   []string `json:"matched"`
	LineStart int      `json:"line_start"`
	LineEnd   int      `json:"line_end"`

	// Preview is a bounded slice of the section body. Empty when the index
	// was loaded from the compacted snapshot (bodies are not persisted).
	Preview string `json:"preview,omitempty"`
}

// Search scores every eligible section and returns the top results ordered
// by descending score; ties keep original section order. An empty query
// (all stopwords or punctuation) returns no results.
func Search(idx *index.Index, query string, opts Options) []Result {
	queryTerms := dedupe(index.Tokenize(query))
	if len(queryTerms) == 0 {
		return nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	previewChars := opts.PreviewChars
	if previewChars <= 0 {
		previewChars = DefaultPreviewChars
	}

	var fileFilter map[string]struct{}
	if len(opts.Files) > 0 {
		fileFilter = make(map[string]struct{}, len(opts.Files))
		for _, f := range opts.Files {
			fileFilter[f] = struct{}{}
		}
	}

	var results []Result
	for _, sec := range idx.Sections {
		if fileFilter != nil {
			if _, ok := fileFilter[sec.File]; !ok {
				continue
			}
		}

		tf := make(map[string]int, len(sec.Tokens))
		for _, t := range sec.Tokens {
			tf[t]++
		}
		// Guards the degenerate empty-section case against division by zero.
		total := len(sec.Tokens)
		if total < 1 {
			total = 1
		}

		score := 0.0
		var matched []string
		for _, term := range queryTerms {
			count, ok := tf[term]
			if !ok {
				continue
			}
			idf, ok := idx.IDF[term]
			if !ok {
				// Unindexed terms keep a neutral weight rather than
				// dropping out of the score.
				idf = 1.0
			}
			score += float64(count) / float64(total) * idf
			matched = append(matched, term)
		}

		if score > 0 {
			preview := index.TruncateUTF8(sec.Content, previewChars)
			results = append(results, Result{
				File:      sec.File,
				Header:    sec.Header,
				Hierarchy: sec.HierarchyString(),
				Score:     score,
				Matched:   matched,
				LineStart: sec.LineStart,
				LineEnd:   sec.LineEnd,
				Preview:   preview,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// dedupe removes duplicate query terms, keeping first-occurrence order so
// matched-term lists follow the query.
func dedupe(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0]
	for _, t := range terms {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
