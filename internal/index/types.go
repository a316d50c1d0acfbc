// Package index builds and represents the searchable document index:
// tokenization, hierarchical section extraction, per-file records, and the
// corpus-level IDF table.
package index

import (
	"strings"
	"time"
)

// Structured extensions get heading-based section extraction; every other
// indexable extension is treated as a single whole-file section.
var structuredExtensions = map[string]struct{}{
	".md":  {},
	".txt": {},
	".rst": {},
}

// IsStructured reports whether the extension (with leading dot) gets
// heading-based section extraction.
func IsStructured(ext string) bool {
	_, ok := structuredExtensions[strings.ToLower(ext)]
	return ok
}

// Section is the atomic indexed unit: a heading-delimited span of a
// structured document, or a whole unstructured file.
type Section struct {
	// File is the owning document's path, relative to the index root.
	File string `json:"file"`

	// Header is the display title: the nearest enclosing heading, or the
	// file path when no heading applies.
	Header string `json:"header"`

	// Hierarchy lists ancestor heading titles, outermost first, excluding
	// the section's own header. Empty for top-level or unstructured text.
	Hierarchy []string `json:"hierarchy,omitempty"`

	// Content is the raw body. Kept only in freshly built indexes; the
	// persisted snapshot drops it to bound size.
	Content string `json:"content,omitempty"`

	// Tokens is the term multiset drawn from header and content.
	Tokens []string `json:"tokens"`

	// LineStart and LineEnd bound the section within the source file,
	// half-open and 0-based.
	LineStart int `json:"line_start"`
	LineEnd   int `json:"line_end"`
}

// HierarchyString renders the ancestor chain for display.
func (s *Section) HierarchyString() string {
	return strings.Join(s.Hierarchy, " > ")
}

// FileRecord summarizes one indexed document.
type FileRecord struct {
	Path   string `json:"path"`
	Size   int    `json:"size"`
	Lines  int    `json:"lines"`
	Tokens int    `json:"tokens"`
}

// Index is the corpus-level aggregate produced by a build. It is constructed
// fresh on every build; there are no incremental updates.
type Index struct {
	BuildID string    `json:"build_id"`
	Created time.Time `json:"created"`

	// Root is the path the index was built from.
	Root string `json:"root"`

	// ScanPath is the explicit directory override the build used, if any.
	// Empty means the default roots (docs, work, project top level).
	ScanPath string `json:"scan_path,omitempty"`

	Files    []FileRecord `json:"files"`
	Sections []Section    `json:"sections"`

	// IDF maps term -> ln(sectionCount / documentFrequency). Terms present
	// in every section are excluded; searchers treat absent terms as 1.0.
	IDF map[string]float64 `json:"idf"`

	TotalTokens int `json:"total_tokens"`
	TotalChars  int `json:"total_chars"`

	// SkippedFiles counts candidates dropped by per-file read errors.
	SkippedFiles int `json:"skipped_files,omitempty"`
}

// Compact returns a copy with section bodies dropped, the projection that
// gets persisted. Previews are unavailable from a compacted index.
func (idx *Index) Compact() *Index {
	out := *idx
	out.Sections = make([]Section, len(idx.Sections))
	for i, s := range idx.Sections {
		s.Content = ""
		out.Sections[i] = s
	}
	return &out
}

