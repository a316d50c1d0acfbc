package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	docerr "github.com/docdex/docdex/internal/errors"
	"github.com/docdex/docdex/internal/index"
	"github.com/docdex/docdex/internal/output"
)

func newChunkCmd() *cobra.Command {
	var by string
	var size int

	cmd := &cobra.Command{
		Use:   "chunk <file>",
		Short: "Summarize a file as readable chunks",
		Long: `Break a file into chunks and report their line ranges and sizes, so a
large document can be read piece by piece.

With --by sections (the default for structured files), chunks follow the
document's heading structure. With --by lines, the file is cut into
fixed-size line windows.

Example:
  docdex chunk docs/design.md
  docdex chunk src/server.py --by lines --size 200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChunk(cmd, args[0], by, size)
		},
	}

	cmd.Flags().StringVar(&by, "by", "sections", "Chunking strategy: sections or lines")
	cmd.Flags().IntVar(&size, "size", 100, "Lines per chunk when chunking by lines")

	return cmd
}

func runChunk(cmd *cobra.Command, file, by string, size int) error {
	out := output.New(cmd.OutOrStdout())
	root := projectRoot()

	path, err := resolveFile(root, file)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return docerr.IOError(fmt.Sprintf("cannot read %s", file), err)
	}
	content := string(data)

	ext := strings.ToLower(filepath.Ext(path))
	if by == "sections" && !index.IsStructured(ext) {
		out.Warningf("%s is not a structured document, chunking by lines", file)
		by = "lines"
	}

	switch by {
	case "sections":
		return chunkBySections(out, file, content)
	case "lines":
		if size <= 0 {
			size = 100
		}
		return chunkByLines(out, file, content, size)
	default:
		return docerr.ValidationError(fmt.Sprintf("unknown chunking strategy: %s", by), nil)
	}
}

func chunkBySections(out *output.Writer, file, content string) error {
	sections := index.ExtractSections(content, file)
	if len(sections) == 0 {
		out.Status("", "No sections found.")
		return nil
	}

	out.Headerf("%s: %d sections", file, len(sections))
	out.Newline()

	totalChars, totalTokens := 0, 0
	for i, s := range sections {
		title := s.Header
		if h := s.HierarchyString(); h != "" {
			title = h + " > " + s.Header
		}
		out.Statusf("", "%d. %s", i+1, title)
		out.Statusf("", "   Lines %d-%d | %d chars | %d tokens",
			s.LineStart, s.LineEnd, len(s.Content), len(s.Tokens))
		totalChars += len(s.Content)
		totalTokens += len(s.Tokens)
	}

	out.Newline()
	out.Dim(fmt.Sprintf("Total: %d chars, %d tokens", totalChars, totalTokens))
	return nil
}

func chunkByLines(out *output.Writer, file, content string, size int) error {
	lines := strings.Split(content, "\n")
	count := (len(lines) + size - 1) / size
	if count == 0 {
		count = 1
	}

	out.Headerf("%s: %d chunks of %d lines", file, count, size)
	out.Newline()

	for i := 0; i < count; i++ {
		start := i * size
		end := start + size
		if end > len(lines) {
			end = len(lines)
		}
		chunk := strings.Join(lines[start:end], "\n")
		tokens := index.Tokenize(chunk)
		out.Statusf("", "%d. Lines %d-%d | %d chars | %d tokens",
			i+1, start+1, end, len(chunk), len(tokens))
	}

	out.Newline()
	out.Dim(fmt.Sprintf("Total: %d lines, %d chars", len(lines), len(content)))
	return nil
}
