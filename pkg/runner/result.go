package runner

import "github.com/yaklabco/mdtree/pkg/diff"

// FileOutcome is the result of formatting one file.
type FileOutcome struct {
	// Path is the absolute path that was processed.
	Path string

	// Changed is true when the formatted content differs from the file.
	Changed bool

	// Formatted holds the new content when Changed is set.
	Formatted []byte

	// Diff is set in ModeDiff for changed files.
	Diff *diff.Diff

	// Written is true if the file was replaced on disk.
	Written bool

	// BackupCreated is true if a sidecar backup was written first.
	BackupCreated bool

	// Skipped is true when a changed file was left alone, see SkipReason.
	Skipped    bool
	SkipReason string

	// Error is set if the file could not be read, parsed or written.
	Error error
}

// Status returns a short description of the outcome.
func (o FileOutcome) Status() string {
	switch {
	case o.Error != nil:
		return "failed"
	case o.Skipped:
		return "skipped: " + o.SkipReason
	case o.Written && o.BackupCreated:
		return "formatted (backup created)"
	case o.Written:
		return "formatted"
	case o.Changed:
		return "would reformat"
	default:
		return "ok"
	}
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesChanged    int
	FilesWritten    int
	FilesSkipped    int
	FilesErrored    int

	// Additions and Deletions total the diff line counts in ModeDiff.
	Additions int
	Deletions int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, in discovery order.
	Files []FileOutcome

	Stats Stats
}

// HasChanges reports whether any file needed reformatting.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate records one outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Diff != nil {
		r.Stats.Additions += outcome.Diff.Additions
		r.Stats.Deletions += outcome.Diff.Deletions
	}
}
