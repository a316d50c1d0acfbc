package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "docs", cfg.Paths.DocsDir)
	assert.Equal(t, "work", cfg.Paths.WorkDir)
	assert.Equal(t, ".doc-index.json", cfg.Paths.IndexFile)
	assert.Contains(t, cfg.Index.Extensions, ".md")
	assert.Contains(t, cfg.Index.ExcludeParts, "node_modules")
	assert.Equal(t, 2000, cfg.Index.CodePreviewChars)
	assert.Equal(t, 5, cfg.Search.FindLimit)
	assert.Equal(t, 10, cfg.Search.BatchLimit)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "docs", cfg.Paths.DocsDir)
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	root := t.TempDir()
	yaml := `
paths:
  docs_dir: documentation
search:
  find_limit: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(yaml), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "documentation", cfg.Paths.DocsDir)
	assert.Equal(t, 20, cfg.Search.FindLimit)
	// Unset fields keep their defaults.
	assert.Equal(t, "work", cfg.Paths.WorkDir)
}

func TestLoad_AltExtension(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileNameAlt),
		[]byte("paths:\n  work_dir: state\n"), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "state", cfg.Paths.WorkDir)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName),
		[]byte("paths: [not: a: map"), 0o644))

	_, err := Load(root)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCDEX_DOCS_DIR", "envdocs")
	t.Setenv("DOCDEX_FIND_LIMIT", "7")
	t.Setenv("DOCDEX_BATCH_LIMIT", "not-a-number")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "envdocs", cfg.Paths.DocsDir)
	assert.Equal(t, 7, cfg.Search.FindLimit)
	// Unparseable values are ignored.
	assert.Equal(t, 10, cfg.Search.BatchLimit)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := NewConfig()
	cfg.Paths.DocsDir = ""
	assert.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.Index.Extensions = nil
	assert.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.Index.CodePreviewChars = 0
	assert.Error(t, cfg.Validate())
}

func TestPathHelpers(t *testing.T) {
	cfg := NewConfig()
	root := "/projects/app"

	assert.Equal(t, filepath.Join(root, "docs"), cfg.DocsPath(root))
	assert.Equal(t, filepath.Join(root, "work"), cfg.WorkPath(root))
	assert.Equal(t, filepath.Join(root, "work", ".doc-index.json"), cfg.IndexPath(root))
	assert.Equal(t, filepath.Join(root, "work", "items.json"), cfg.ItemsPath(root))
	assert.Equal(t, filepath.Join(root, "work", "context-metrics.json"), cfg.MetricsPath(root))
}

func TestFindProjectRoot_GitDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestFindProjectRoot_ConfigFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("{}"), 0o644))
	nested := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestFindProjectRoot_FallsBackToStart(t *testing.T) {
	dir := t.TempDir()

	found, err := FindProjectRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, found)
}
