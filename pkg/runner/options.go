// Package runner formats many Markdown files concurrently: it discovers
// files, re-renders each one on a worker pool and reports the outcome per
// file in a deterministic order.
package runner

import (
	"path/filepath"
	"strings"
)

// Mode selects what happens to a file whose formatted content differs.
type Mode int

const (
	// ModeCheck only reports that the file would change.
	ModeCheck Mode = iota

	// ModeDiff also computes a unified diff.
	ModeDiff

	// ModeWrite replaces the file atomically.
	ModeWrite
)

// Options controls a formatting run.
type Options struct {
	// Paths are the user-specified files or directories. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob matching.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions, with a leading dot,
	// that count as Markdown. Empty means DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files and directories, relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs caps the number of workers. 0 or negative means GOMAXPROCS.
	Jobs int

	Mode Mode

	// Backup keeps a sidecar copy of each file before it is first rewritten.
	Backup bool
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// displayPath returns path relative to the working directory when it lies
// beneath it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
