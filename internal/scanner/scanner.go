// Package scanner discovers indexable files for the index builder.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	docerr "github.com/docdex/docdex/internal/errors"
)

// FileInfo describes one candidate file discovered by a scan.
type FileInfo struct {
	// Path is relative to the scan root.
	Path string
	// AbsPath is the absolute filesystem path.
	AbsPath string
	// Size is the file size in bytes.
	Size int64
}

// Options configures a scan.
type Options struct {
	// RootDir is the project root. Relative paths are derived from it.
	RootDir string

	// Path, when set, overrides the default roots: the scan covers exactly
	// this directory, recursively, and relative paths are derived from it.
	Path string

	// DocsDir and WorkDir are the default recursive roots, relative to
	// RootDir. RootDir itself contributes only its top-level files.
	DocsDir string
	WorkDir string

	// Extensions is the file extension allow-list (with leading dots).
	Extensions []string

	// ExcludeParts lists path substrings that exclude a file.
	ExcludeParts []string
}

// Scan returns the candidate files for indexing, in deterministic path order.
// Files appearing under more than one root are reported once.
//
// The scan fails only when the effective root cannot be enumerated;
// unreadable children are skipped.
func Scan(opts *Options) ([]FileInfo, error) {
	if opts == nil {
		return nil, docerr.ValidationError("scan options are required", nil)
	}

	rootDir := opts.RootDir
	if rootDir == "" {
		rootDir = "."
	}
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, docerr.IOError("failed to resolve root path", err)
	}

	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}

	seen := make(map[string]struct{})
	var files []FileInfo

	collect := func(scanRoot, relBase string, topLevelOnly bool, required bool) error {
		info, err := os.Stat(scanRoot)
		if err != nil || !info.IsDir() {
			if required {
				return docerr.IOError(fmt.Sprintf("cannot enumerate %s", scanRoot), err)
			}
			return nil // optional root missing is not an error
		}

		return filepath.WalkDir(scanRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == scanRoot {
					return docerr.IOError(fmt.Sprintf("cannot enumerate %s", scanRoot), err)
				}
				return nil // skip unreadable children
			}
			if d.IsDir() {
				if topLevelOnly && path != scanRoot {
					return filepath.SkipDir
				}
				return nil
			}
			if excluded(path, opts.ExcludeParts) {
				return nil
			}
			if _, ok := exts[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}

			if _, dup := seen[path]; dup {
				return nil
			}
			seen[path] = struct{}{}

			rel, err := filepath.Rel(relBase, path)
			if err != nil {
				rel = path
			}

			fi, err := d.Info()
			if err != nil {
				return nil
			}

			files = append(files, FileInfo{
				Path:    filepath.ToSlash(rel),
				AbsPath: path,
				Size:    fi.Size(),
			})
			return nil
		})
	}

	if opts.Path != "" {
		absPath, err := filepath.Abs(opts.Path)
		if err != nil {
			return nil, docerr.IOError("failed to resolve scan path", err)
		}
		if err := collect(absPath, absPath, false, true); err != nil {
			return nil, err
		}
	} else {
		if err := collect(filepath.Join(absRoot, opts.DocsDir), absRoot, false, false); err != nil {
			return nil, err
		}
		if err := collect(filepath.Join(absRoot, opts.WorkDir), absRoot, false, false); err != nil {
			return nil, err
		}
		if err := collect(absRoot, absRoot, true, true); err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// excluded reports whether any exclusion substring appears in the path.
func excluded(path string, parts []string) bool {
	p := filepath.ToSlash(path)
	for _, part := range parts {
		if part != "" && strings.Contains(p, part) {
			return true
		}
	}
	return false
}
