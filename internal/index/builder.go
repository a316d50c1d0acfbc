package index

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/docdex/docdex/internal/config"
	"github.com/docdex/docdex/internal/scanner"
)

// BuildOptions configures an index build.
type BuildOptions struct {
	// Root is the project root the index is anchored to.
	Root string

	// Path, when set, restricts the scan to that directory.
	Path string

	// Config supplies extensions, exclusions, and preview caps.
	// Nil means defaults.
	Config *config.Config

	// Progress, if non-nil, is called after each file with
	// (processed, total).
	Progress func(done, total int)
}

// Build constructs a fresh index over the candidate files.
//
// Individual unreadable files are logged, counted, and skipped; the build
// fails only when the scan root itself cannot be enumerated.
func Build(opts BuildOptions) (*Index, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	root := opts.Root
	if opts.Path != "" {
		root = opts.Path
	}
	absRoot, err := filepath.Abs(root)
	if err == nil {
		root = absRoot
	}

	files, err := scanner.Scan(&scanner.Options{
		RootDir:      opts.Root,
		Path:         opts.Path,
		DocsDir:      cfg.Paths.DocsDir,
		WorkDir:      cfg.Paths.WorkDir,
		Extensions:   cfg.Index.Extensions,
		ExcludeParts: cfg.Index.ExcludeParts,
	})
	if err != nil {
		return nil, err
	}

	idx := &Index{
		BuildID:  uuid.NewString(),
		Created:  time.Now(),
		Root:     root,
		ScanPath: opts.Path,
		IDF:      map[string]float64{},
	}

	for i, f := range files {
		content, err := os.ReadFile(f.AbsPath)
		if err != nil {
			slog.Warn("could not index file",
				slog.String("path", f.Path),
				slog.String("error", err.Error()))
			idx.SkippedFiles++
			continue
		}
		text := string(content)

		idx.Files = append(idx.Files, FileRecord{
			Path:   f.Path,
			Size:   len(text),
			Lines:  countLines(text),
			Tokens: len(Tokenize(text)),
		})
		idx.TotalChars += len(text)

		var sections []Section
		if IsStructured(filepath.Ext(f.Path)) {
			sections = ExtractSections(text, f.Path)
		} else {
			sections = []Section{WholeFileSection(text, f.Path, cfg.Index.CodePreviewChars)}
		}

		for _, s := range sections {
			s.File = f.Path
			idx.Sections = append(idx.Sections, s)
			idx.TotalTokens += len(s.Tokens)
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(files))
		}
	}

	idx.IDF = computeIDF(idx.Sections)

	slog.Debug("index built",
		slog.String("build_id", idx.BuildID),
		slog.Int("files", len(idx.Files)),
		slog.Int("sections", len(idx.Sections)),
		slog.Int("skipped", idx.SkippedFiles))

	return idx, nil
}

// computeIDF derives the term -> ln(sections/df) table over the section
// population. Terms present in every section carry no discriminative power
// and are excluded; an empty corpus yields an empty table.
func computeIDF(sections []Section) map[string]float64 {
	idf := map[string]float64{}
	total := len(sections)
	if total == 0 {
		return idf
	}

	df := map[string]int{}
	for _, s := range sections {
		seen := map[string]struct{}{}
		for _, t := range s.Tokens {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	for term, count := range df {
		if count < total {
			idf[term] = math.Log(float64(total) / float64(count))
		}
	}
	return idf
}

func countLines(text string) int {
	n := 1
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}
