package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/fsutil"
	"github.com/yaklabco/mdtree/pkg/query"
)

const sampleDoc = `Title
=====

Intro with *emphasis*.

## Install

` + "```" + `
go install example.com/tool@latest
` + "```" + `

## Usage

Run it.
`

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderCommand(t *testing.T) {
	t.Parallel()

	t.Run("markdown from stdin", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, "Title\n=====\n\nSome *text*.\n", "render")
		require.NoError(t, err)
		assert.Equal(t, "# Title\n\nSome *text*.\n", stdout)
	})

	t.Run("dash reads stdin", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, "# Title\n", "render", "-")
		require.NoError(t, err)
		assert.Equal(t, "# Title\n", stdout)
	})

	t.Run("json from file", func(t *testing.T) {
		t.Parallel()

		path := writeDoc(t, t.TempDir(), "doc.md", "# Title\n")
		stdout, _, err := execute(t, "", "render", "-r", "json", "--compact", path)
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(strings.TrimSpace(stdout), "\n")+1, "compact JSON is one line")

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
		assert.Equal(t, "fragment", doc["variant"])
	})

	t.Run("json round trip through the json backend", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeDoc(t, dir, "doc.md", sampleDoc)
		tree, _, err := execute(t, "", "render", "-r", "json", path)
		require.NoError(t, err)

		jsonPath := writeDoc(t, dir, "doc.json", tree)
		markdown, _, err := execute(t, "", "render", "-b", "json", jsonPath)
		require.NoError(t, err)

		direct, _, err := execute(t, "", "render", path)
		require.NoError(t, err)
		assert.Equal(t, direct, markdown)
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, "# Title\n\nSome *text*.\n", "render", "-r", "text")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Title")
		assert.Contains(t, stdout, "Some text")
		assert.NotContains(t, stdout, "*")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "", "render", filepath.Join(t.TempDir(), "missing.md"))
		require.Error(t, err)
		assert.Equal(t, ExitError, ExitCode(err))
	})
}

func TestTreeCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "# Hi *there*\n", "tree")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Fragment")
	assert.Contains(t, stdout, "Header(level=1)")
	assert.Contains(t, stdout, "Emphasis")
	assert.Contains(t, stdout, `Text("there")`)

	stdout, _, err = execute(t, "para\n\n# Later\n", "tree", "--lines")
	require.NoError(t, err)
	assert.Contains(t, stdout, "3")
	assert.Contains(t, stdout, "Header(level=1)")
}

func TestQueryCommand(t *testing.T) {
	t.Parallel()

	t.Run("labels", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, sampleDoc, "query", "Header[level == 2]")
		require.NoError(t, err)
		assert.Equal(t, "Header(level=2)\nHeader(level=2)\n", stdout)
	})

	t.Run("one", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, sampleDoc, "query", "--one", "Header/Text")
		require.NoError(t, err)
		assert.Equal(t, "Text(\"Title\")\n", stdout)
	})

	t.Run("render matches", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, sampleDoc, "find", "--render", "Header[level == 2]")
		require.NoError(t, err)
		assert.Equal(t, "## Install\n## Usage\n", stdout)
	})

	t.Run("lines", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, sampleDoc, "query", "--lines", "CodeBlock")
		require.NoError(t, err)
		assert.Regexp(t, `^\s*\d+ CodeBlock`, stdout)
	})

	t.Run("no matches", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, sampleDoc, "query", "Image")
		require.ErrorIs(t, err, ErrNoMatches)
		assert.Empty(t, stdout)
		assert.Equal(t, ExitFindings, ExitCode(err))
	})

	t.Run("bad path", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, sampleDoc, "query", "Header[level ==")
		require.Error(t, err)
		assert.Equal(t, ExitError, ExitCode(err))
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, sampleDoc, "query", "Table")
		require.ErrorIs(t, err, query.ErrBadPath)
		assert.Equal(t, ExitError, ExitCode(err))
	})
}

func TestFmtCommand(t *testing.T) {
	t.Parallel()

	const messy = "Title\n=====\n\nBody.\n"
	const clean = "# Title\n\nBody.\n"

	t.Run("check reports changes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		messyPath := writeDoc(t, dir, "messy.md", messy)
		writeDoc(t, dir, "clean.md", clean)

		stdout, stderr, err := execute(t, "", "fmt", dir)
		require.ErrorIs(t, err, ErrChangesFound)
		assert.Contains(t, stdout, "messy.md: would reformat")
		assert.NotContains(t, stdout, "clean.md")
		assert.Contains(t, stderr, "1 file would be reformatted (2 files checked)")

		content, readErr := os.ReadFile(messyPath)
		require.NoError(t, readErr)
		assert.Equal(t, messy, string(content), "check must not modify files")
	})

	t.Run("diff", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeDoc(t, dir, "messy.md", messy)

		stdout, stderr, err := execute(t, "", "fmt", "--diff", dir)
		require.ErrorIs(t, err, ErrChangesFound)
		assert.Contains(t, stdout, "-Title\n-=====\n+# Title\n")
		assert.NotContains(t, stdout, "would reformat")
		assert.Contains(t, stderr, "1 file changed, 1 insertion(+), 2 deletions(-)")
	})

	t.Run("write with backup", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeDoc(t, dir, "messy.md", messy)

		stdout, stderr, err := execute(t, "", "fmt", "--write", "--backup", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "formatted (backup created)")
		assert.Contains(t, stderr, "1 file reformatted")

		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, clean, string(content))

		backup, readErr := os.ReadFile(fsutil.BackupPath(path))
		require.NoError(t, readErr)
		assert.Equal(t, messy, string(backup))
	})

	t.Run("clean tree", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeDoc(t, dir, "clean.md", clean)

		_, stderr, err := execute(t, "", "fmt", "--check", dir)
		require.NoError(t, err)
		assert.Contains(t, stderr, "All files formatted")
	})

	t.Run("ignore", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeDoc(t, dir, "messy.md", messy)

		_, stderr, err := execute(t, "", "fmt", "--ignore", "messy.md", dir)
		require.NoError(t, err)
		assert.Contains(t, stderr, "(0 files checked)")
	})

	t.Run("detect lang", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeDoc(t, dir, "code.md", "```\npackage main\n\nfunc main() {}\n```\n")

		_, _, err := execute(t, "", "fmt", "--write", "--detect-lang", path)
		require.NoError(t, err)

		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.True(t, strings.HasPrefix(string(content), "```go\n"), "got %q", content)
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, messy, "fmt", "-")
		require.NoError(t, err)
		assert.Equal(t, clean, stdout)

		stdout, _, err = execute(t, messy, "fmt", "--check", "-")
		require.ErrorIs(t, err, ErrChangesFound)
		assert.Empty(t, stdout)

		stdout, _, err = execute(t, clean, "fmt", "--diff", "-")
		require.NoError(t, err)
		assert.Empty(t, stdout)
	})

	t.Run("conflicting modes", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "", "fmt", "--write", "--diff", t.TempDir())
		require.Error(t, err)
		assert.Equal(t, ExitError, ExitCode(err))
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "", "fmt", filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Equal(t, ExitError, ExitCode(err))
	})
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".mdtree.yml")

	_, stderr, err := execute(t, "", "init", "--output", output)
	require.NoError(t, err)
	assert.Contains(t, stderr, "created configuration file")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotEmpty(t, content)

	_, _, err = execute(t, "", "init", "--output", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "", "init", "--full", "--force", "--output", output)
	require.NoError(t, err)

	full, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(full), "backend: gfm")

	// The generated file must load as an explicit config.
	_, _, err = execute(t, "# x\n", "render", "--config", output)
	require.NoError(t, err)
}
