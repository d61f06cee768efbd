package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtree/pkg/diff"
)

// FormatDiff renders d as a coloured unified diff with its git header.
func (s *Styles) FormatDiff(d *diff.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.DiffHeader.Render(d.GitHeader()))
	b.WriteByte('\n')

	for line := range strings.SplitSeq(strings.TrimSuffix(d.String(), "\n"), "\n") {
		b.WriteString(s.diffLine(line))
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *Styles) diffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		return s.DiffHeader.Render(line)
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}

// FormatDiffStat returns a git-style change summary such as
// "2 files changed, 5 insertions(+), 3 deletions(-)".
func (s *Styles) FormatDiffStat(files, additions, deletions int) string {
	if files == 0 {
		return ""
	}
	return fmt.Sprintf("%s, %s, %s\n",
		s.Bold.Render(plural(files, "file")+" changed"),
		s.DiffAdd.Render(plural(additions, "insertion")+"(+)"),
		s.DiffRemove.Render(plural(deletions, "deletion")+"(-)"),
	)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
