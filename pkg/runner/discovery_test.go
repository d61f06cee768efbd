package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/mdtree/pkg/runner"
)

// makeTree creates the given files (slash-separated, relative to dir).
func makeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("# "+f+"\n"), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

// relative maps discovered paths back to slash-separated names under dir.
func relative(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			t.Fatalf("filepath.Rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := []string{
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"docs/notes.MD",
		"docs/.draft.md",
		".github/pr.md",
		"vendor/pkg/doc.md",
		"node_modules/lib/readme.md",
		"src/main.go",
		"notes.txt",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults to the working directory",
			want: []string{
				"docs/api.markdown", "docs/guide.md", "docs/notes.MD",
				"node_modules/lib/readme.md", "readme.md", "vendor/pkg/doc.md",
			},
		},
		{
			name: "exclude globs",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "**/node_modules", "*.markdown"}},
			want: []string{"docs/guide.md", "docs/notes.MD", "readme.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Paths: []string{"docs", "notes.txt"}, Extensions: []string{".txt", ".markdown"}},
			want: []string{"docs/api.markdown", "notes.txt"},
		},
		{
			name: "explicit file and overlapping directory are de-duplicated",
			opts: runner.Options{Paths: []string{"docs/guide.md", "docs", "docs/guide.md"}},
			want: []string{"docs/api.markdown", "docs/guide.md", "docs/notes.MD"},
		},
		{
			name: "explicit file with another extension is ignored",
			opts: runner.Options{Paths: []string{"src/main.go"}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			makeTree(t, dir, tree...)

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			got := relative(t, dir, files)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected an error naming the path, got %v", err)
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "a.md", "b.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "real/doc.md")

	external := t.TempDir()
	makeTree(t, external, "external.md")

	if err := os.Symlink(filepath.Join(dir, "real", "doc.md"), filepath.Join(dir, "link.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	opts := runner.Options{WorkingDir: dir}
	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if got := relative(t, dir, files); !slices.Equal(got, []string{"link.md", "real/doc.md"}) {
		t.Errorf("without FollowSymlinks got %v", got)
	}

	opts.FollowSymlinks = true
	files, err = runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 3 || !slices.ContainsFunc(files, func(f string) bool {
		return strings.HasSuffix(f, "external.md")
	}) {
		t.Errorf("with FollowSymlinks got %v", files)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	if got := runner.DefaultExtensions(); !slices.Equal(got, []string{".md", ".markdown"}) {
		t.Errorf("DefaultExtensions() = %v", got)
	}
}
