package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtree/pkg/runner"
)

// FormatOutcome returns one status line for a file, or "" for files that
// need no attention.
func (s *Styles) FormatOutcome(path string, outcome runner.FileOutcome) string {
	var status string
	switch {
	case outcome.Error != nil:
		status = s.Failure.Render("error") + " " + outcome.Error.Error()
	case outcome.Skipped:
		status = s.Warning.Render("skipped") + " " + outcome.SkipReason
	case outcome.Written:
		status = s.Success.Render(outcome.Status())
	case outcome.Changed:
		status = s.Warning.Render(outcome.Status())
	default:
		return ""
	}
	return s.FilePath.Render(path) + ": " + status + "\n"
}

// FormatSummary formats run statistics as a single line, for example
// "2 files reformatted, 1 failed (10 files checked)".
func (s *Styles) FormatSummary(stats runner.Stats, write bool) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file")))

	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("All files formatted") + checked + "\n"
	}

	var parts []string
	switch {
	case write && stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(plural(stats.FilesWritten, "file")+" reformatted"))
	case !write && stats.FilesChanged > 0:
		parts = append(parts, s.Warning.Render(plural(stats.FilesChanged, "file")+" would be reformatted"))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + checked + "\n"
}
