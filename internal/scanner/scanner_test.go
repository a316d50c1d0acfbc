package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOpts(root string) *Options {
	return &Options{
		RootDir:      root,
		DocsDir:      "docs",
		WorkDir:      "work",
		Extensions:   []string{".md", ".py"},
		ExcludeParts: []string{"node_modules", "archive"},
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o644))
}

func paths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestScan_DefaultRoots(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "README.md"))
	touch(t, filepath.Join(root, "docs", "guide.md"))
	touch(t, filepath.Join(root, "docs", "nested", "deep.md"))
	touch(t, filepath.Join(root, "work", "notes.md"))
	// Root contributes top-level files only; this one must not appear.
	touch(t, filepath.Join(root, "src", "main.py"))

	files, err := Scan(defaultOpts(root))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"README.md",
		"docs/guide.md",
		"docs/nested/deep.md",
		"work/notes.md",
	}, paths(files))
}

func TestScan_ExtensionAllowList(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "docs", "keep.md"))
	touch(t, filepath.Join(root, "docs", "keep.py"))
	touch(t, filepath.Join(root, "docs", "skip.exe"))
	touch(t, filepath.Join(root, "docs", "skip.png"))

	files, err := Scan(defaultOpts(root))
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/keep.md", "docs/keep.py"}, paths(files))
}

func TestScan_ExcludeParts(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "docs", "keep.md"))
	touch(t, filepath.Join(root, "docs", "node_modules", "dep.md"))
	touch(t, filepath.Join(root, "docs", "archive", "old.md"))

	files, err := Scan(defaultOpts(root))
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/keep.md"}, paths(files))
}

func TestScan_ExplicitPathOverridesRoots(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "docs", "ignored.md"))
	touch(t, filepath.Join(root, "src", "a.py"))
	touch(t, filepath.Join(root, "src", "pkg", "b.py"))

	opts := defaultOpts(root)
	opts.Path = filepath.Join(root, "src")

	files, err := Scan(opts)
	require.NoError(t, err)

	// Paths are relative to the explicit scan root, and it is recursive.
	assert.Equal(t, []string{"a.py", "pkg/b.py"}, paths(files))
}

func TestScan_MissingOptionalRootsIgnored(t *testing.T) {
	root := t.TempDir()
	// No docs/ or work/ directories at all.
	touch(t, filepath.Join(root, "README.md"))

	files, err := Scan(defaultOpts(root))
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, paths(files))
}

func TestScan_MissingRequiredRootFails(t *testing.T) {
	opts := defaultOpts(filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := Scan(opts)
	assert.Error(t, err)
}

func TestScan_MissingExplicitPathFails(t *testing.T) {
	opts := defaultOpts(t.TempDir())
	opts.Path = filepath.Join(opts.RootDir, "nope")
	_, err := Scan(opts)
	assert.Error(t, err)
}

func TestScan_DeduplicatesOverlappingRoots(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "docs", "guide.md"))

	opts := defaultOpts(root)
	// Work dir nested inside docs: its files are reachable from both roots.
	opts.WorkDir = filepath.Join("docs", "work")
	touch(t, filepath.Join(root, "docs", "work", "items.md"))

	files, err := Scan(opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/guide.md", "docs/work/items.md"}, paths(files))
}

func TestScan_NilOptions(t *testing.T) {
	_, err := Scan(nil)
	assert.Error(t, err)
}

func TestScan_ReportsSizeAndAbsPath(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "docs", "a.md"))

	files, err := Scan(defaultOpts(root))
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, int64(len("content\n")), files[0].Size)
	assert.True(t, filepath.IsAbs(files[0].AbsPath))
}
