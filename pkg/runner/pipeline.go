package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdtree/pkg/diff"
	"github.com/yaklabco/mdtree/pkg/fsutil"
)

// Error categories for per-file failures.
var (
	// ErrFormat indicates the content could not be parsed or rendered.
	ErrFormat = errors.New("format failure")

	// ErrWrite indicates the formatted content could not be written.
	ErrWrite = errors.New("write failure")
)

// FormatFunc turns the content of one file into its formatted form.
type FormatFunc func(ctx context.Context, path string, content []byte) ([]byte, error)

// ProcessFile formats a single file.
//
// The steps are:
//  1. Read and snapshot the file.
//  2. Format the content; an unchanged result ends here.
//  3. In ModeDiff, compute the diff.
//  4. In ModeWrite, skip the file if it changed on disk meanwhile,
//     back it up if asked, then replace it atomically.
func (r *Runner) ProcessFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	formatted, err := r.Format(ctx, path, original)
	if err != nil {
		outcome.Error = fmt.Errorf("%w: %s: %w", ErrFormat, opts.displayPath(path), err)
		return outcome
	}
	if bytes.Equal(original, formatted) {
		return outcome
	}
	outcome.Changed = true
	outcome.Formatted = formatted

	switch opts.Mode {
	case ModeCheck:
		return outcome
	case ModeDiff:
		outcome.Diff = diff.Compute(opts.displayPath(path), original, formatted)
		return outcome
	case ModeWrite:
	}

	modified, err := fsutil.CheckModified(ctx, info, true)
	if err != nil {
		outcome.Error = fmt.Errorf("check modified: %w", err)
		return outcome
	}
	if modified {
		outcome.Skipped = true
		outcome.SkipReason = "file modified during processing"
		return outcome
	}

	if opts.Backup {
		created, err := fsutil.CreateBackup(ctx, path)
		if err != nil {
			outcome.Error = fmt.Errorf("create backup: %w", err)
			return outcome
		}
		outcome.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, formatted, info.Mode); err != nil {
		outcome.Error = fmt.Errorf("%w: %w", ErrWrite, err)
		return outcome
	}
	outcome.Written = true

	return outcome
}
