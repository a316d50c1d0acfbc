package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	docerr "github.com/docdex/docdex/internal/errors"
	"github.com/docdex/docdex/internal/output"
)

func newPeekCmd() *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "peek <file>",
		Short: "Show the first lines of a file",
		Long: `Print the head of a file with line numbers. Paths are resolved relative
to the project root first, then tried as given.

Example:
  docdex peek docs/architecture.md --lines 80`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeek(cmd, args[0], lines)
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "l", 50, "Number of lines to show")

	return cmd
}

func runPeek(cmd *cobra.Command, file string, lines int) error {
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

	if lines <= 0 {
		lines = 50
	}

	allLines := strings.Split(string(data), "\n")
	shown := lines
	if shown > len(allLines) {
		shown = len(allLines)
	}

	out.Headerf("%s (first %d lines)", file, shown)
	out.Newline()

	for i := 0; i < shown; i++ {
		out.Statusf("", "%4d | %s", i+1, allLines[i])
	}

	if remaining := len(allLines) - shown; remaining > 0 {
		out.Newline()
		out.Dim(fmt.Sprintf("... %d more lines", remaining))
	}

	return nil
}

// resolveFile tries the path relative to root first, then as given.
func resolveFile(root, file string) (string, error) {
	candidate := filepath.Join(root, file)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	if _, err := os.Stat(file); err == nil {
		return file, nil
	}
	return "", docerr.ValidationError(fmt.Sprintf("file not found: %s", file), nil)
}
