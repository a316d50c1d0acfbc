package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execCLI runs the CLI with the given args and returns its combined output.
func execCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// setupProject creates a small documentation project and chdirs into it so
// project-root discovery lands there.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	// The config file doubles as the project-root marker.
	write(".docdex.yaml", "version: 1\n")
	write("docs/auth.md", `# Authentication

password hashing with bcrypt

## Sessions

session cookies expire hourly
`)
	write("docs/deploy.md", `# Deployment

container images build nightly
`)

	t.Chdir(dir)
	return dir
}

func TestCLI_IndexThenFind(t *testing.T) {
	dir := setupProject(t)

	out, err := execCLI(t, "index")
	require.NoError(t, err)
	assert.Contains(t, out, "Files: 2")
	assert.Contains(t, out, "Sections: 3")
	assert.FileExists(t, filepath.Join(dir, "work", ".doc-index.json"))

	out, err = execCLI(t, "find", "bcrypt")
	require.NoError(t, err)
	assert.Contains(t, out, "docs/auth.md")
	assert.Contains(t, out, "Matched: bcrypt")
}

func TestCLI_FindJSON(t *testing.T) {
	setupProject(t)

	_, err := execCLI(t, "index")
	require.NoError(t, err)

	out, err := execCLI(t, "find", "deployment", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"file": "docs/deploy.md"`)
}

func TestCLI_FindWithoutIndex(t *testing.T) {
	setupProject(t)

	_, err := execCLI(t, "find", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no index found")
}

func TestCLI_Topics(t *testing.T) {
	setupProject(t)

	_, err := execCLI(t, "index")
	require.NoError(t, err)

	out, err := execCLI(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "docs/auth.md")
	assert.Contains(t, out, "Sessions")
	assert.Contains(t, out, "Deployment")
}

func TestCLI_TopicsReadsSnapshotWithoutSources(t *testing.T) {
	dir := setupProject(t)

	_, err := execCLI(t, "index")
	require.NoError(t, err)

	// Headers survive compaction; topics must not rebuild from source.
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "docs")))

	out, err := execCLI(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "docs/auth.md")
	assert.Contains(t, out, "Sessions")
}

func TestCLI_TopicsWithoutIndex(t *testing.T) {
	setupProject(t)

	_, err := execCLI(t, "topics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no index found")
}

func TestCLI_StatsWithoutIndex(t *testing.T) {
	setupProject(t)

	out, err := execCLI(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No index found")
}

func TestCLI_StatsWithCorruptSnapshot(t *testing.T) {
	dir := setupProject(t)
	snapshot := filepath.Join(dir, "work", ".doc-index.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(snapshot), 0o755))
	require.NoError(t, os.WriteFile(snapshot, []byte("{broken"), 0o644))

	out, err := execCLI(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "unreadable")
}

func TestCLI_Peek(t *testing.T) {
	setupProject(t)

	out, err := execCLI(t, "peek", "docs/auth.md", "--lines", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 | # Authentication")
	assert.Contains(t, out, "more lines")
}

func TestCLI_TasksLifecycle(t *testing.T) {
	setupProject(t)

	out, err := execCLI(t, "tasks", "create", "Write the deploy guide")
	require.NoError(t, err)
	assert.Contains(t, out, "Created WI-001")

	out, err = execCLI(t, "tasks", "update", "WI-001", "--status", "in_progress")
	require.NoError(t, err)
	assert.Contains(t, out, "pending -> in_progress")

	out, err = execCLI(t, "tasks", "next")
	require.NoError(t, err)
	assert.Contains(t, out, "WI-001")

	out, err = execCLI(t, "tasks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "IN_PROGRESS (1)")
}

func TestCLI_Version(t *testing.T) {
	out, err := execCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "docdex")
}

func TestSplitFileList(t *testing.T) {
	assert.Nil(t, splitFileList(""))
	assert.Equal(t, []string{"a.md"}, splitFileList("a.md"))
	assert.Equal(t, []string{"a.md", "b.md"}, splitFileList("a.md, b.md"))
	assert.Equal(t, []string{"a.md"}, splitFileList("a.md,,"))
}

func TestResolveFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc.md"), []byte("x"), 0o644))

	path, err := resolveFile(root, "doc.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "doc.md"), path)

	_, err = resolveFile(root, "missing.md")
	assert.Error(t, err)
}
