// Package config handles docdex configuration loading, defaults, and
// project-root discovery.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	docerr "github.com/docdex/docdex/internal/errors"
)

// Config file names searched at the project root.
const (
	ConfigFileName    = ".docdex.yaml"
	ConfigFileNameAlt = ".docdex.yml"
)

// Config represents the complete docdex configuration.
type Config struct {
	Version int          `yaml:"version" json:"version"`
	Paths   PathsConfig  `yaml:"paths" json:"paths"`
	Index   IndexConfig  `yaml:"index" json:"index"`
	Search  SearchConfig `yaml:"search" json:"search"`
}

// PathsConfig configures where documents and working state live,
// relative to the project root.
type PathsConfig struct {
	// DocsDir is the documentation directory scanned recursively.
	DocsDir string `yaml:"docs_dir" json:"docs_dir"`

	// WorkDir is the working-state directory; scanned recursively and
	// also home to the persisted index snapshot and work items.
	WorkDir string `yaml:"work_dir" json:"work_dir"`

	// IndexFile is the snapshot file name inside WorkDir.
	IndexFile string `yaml:"index_file" json:"index_file"`
}

// IndexConfig configures candidate-file selection and section extraction.
type IndexConfig struct {
	// Extensions is the file extension allow-list.
	Extensions []string `yaml:"extensions" json:"extensions"`

	// ExcludeParts lists path substrings that exclude a file from indexing.
	ExcludeParts []string `yaml:"exclude_parts" json:"exclude_parts"`

	// CodePreviewChars caps the stored content of whole-file (code) sections.
	// Tokens are still drawn from the full content.
	CodePreviewChars int `yaml:"code_preview_chars" json:"code_preview_chars"`
}

// SearchConfig configures result limits and preview sizing.
type SearchConfig struct {
	// FindLimit is the default result count for `docdex find`.
	FindLimit int `yaml:"find_limit" json:"find_limit"`

	// BatchLimit is the default result count for file-scoped search.
	BatchLimit int `yaml:"batch_limit" json:"batch_limit"`

	// PreviewChars caps the content preview attached to each result.
	PreviewChars int `yaml:"preview_chars" json:"preview_chars"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			DocsDir:   "docs",
			WorkDir:   "work",
			IndexFile: ".doc-index.json",
		},
		Index: IndexConfig{
			Extensions:       []string{".md", ".txt", ".rst", ".py", ".js", ".ts", ".json"},
			ExcludeParts:     []string{"node_modules", ".git", "__pycache__", "archive"},
			CodePreviewChars: 2000,
		},
		Search: SearchConfig{
			FindLimit:    5,
			BatchLimit:   10,
			PreviewChars: 300,
		},
	}
}

// Load reads configuration from the project root, applying defaults for
// anything unset and environment overrides on top. A missing config file is
// not an error; a malformed one is.
func Load(root string) (*Config, error) {
	cfg := NewConfig()

	path := filepath.Join(root, ConfigFileName)
	if !fileExists(path) {
		path = filepath.Join(root, ConfigFileNameAlt)
	}

	if fileExists(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, docerr.ConfigError(fmt.Sprintf("failed to read %s", path), err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, docerr.ConfigError(fmt.Sprintf("failed to parse %s", path), err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies DOCDEX_* environment variables.
// Env vars take precedence over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DOCDEX_DOCS_DIR"); v != "" {
		c.Paths.DocsDir = v
	}
	if v := os.Getenv("DOCDEX_WORK_DIR"); v != "" {
		c.Paths.WorkDir = v
	}
	if v := os.Getenv("DOCDEX_FIND_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.FindLimit = n
		}
	}
	if v := os.Getenv("DOCDEX_BATCH_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.BatchLimit = n
		}
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Paths.DocsDir == "" || c.Paths.WorkDir == "" {
		return docerr.ConfigError("docs_dir and work_dir must be set", nil)
	}
	if c.Paths.IndexFile == "" {
		return docerr.ConfigError("index_file must be set", nil)
	}
	if len(c.Index.Extensions) == 0 {
		return docerr.ConfigError("at least one indexable extension is required", nil)
	}
	if c.Index.CodePreviewChars <= 0 || c.Search.PreviewChars <= 0 {
		return docerr.ConfigError("preview sizes must be positive", nil)
	}
	return nil
}

// DocsPath returns the absolute docs directory for the given root.
func (c *Config) DocsPath(root string) string {
	return filepath.Join(root, c.Paths.DocsDir)
}

// WorkPath returns the absolute working-state directory for the given root.
func (c *Config) WorkPath(root string) string {
	return filepath.Join(root, c.Paths.WorkDir)
}

// IndexPath returns the absolute snapshot path for the given root.
func (c *Config) IndexPath(root string) string {
	return filepath.Join(c.WorkPath(root), c.Paths.IndexFile)
}

// ItemsPath returns the absolute work-items path for the given root.
func (c *Config) ItemsPath(root string) string {
	return filepath.Join(c.WorkPath(root), "items.json")
}

// MetricsPath returns the absolute context-metrics path for the given root.
func (c *Config) MetricsPath(root string) string {
	return filepath.Join(c.WorkPath(root), "context-metrics.json")
}

// FindProjectRoot walks up from startDir looking for a .git directory or a
// docdex config file. Falls back to startDir when nothing is found.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	currentDir := absDir
	for {
		if dirExists(filepath.Join(currentDir, ".git")) {
			return currentDir, nil
		}

		if fileExists(filepath.Join(currentDir, ConfigFileName)) ||
			fileExists(filepath.Join(currentDir, ConfigFileNameAlt)) {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached filesystem root; fall back to where we started.
			return absDir, nil
		}
		currentDir = parentDir
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
