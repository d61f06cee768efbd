package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/internal/ui/pretty"
	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/diff"
	"github.com/yaklabco/mdtree/pkg/fsutil"
	"github.com/yaklabco/mdtree/pkg/runner"
)

type fmtFlags struct {
	write      bool
	diff       bool
	check      bool
	detectLang bool
	backup     bool
	jobs       int
	ignore     []string
}

func newFmtCommand(g *globalFlags) *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Re-render Markdown files in canonical form",
		Long: `Parse each Markdown file and render it back to Markdown, reporting the
files whose content would change. Directories are searched recursively for
the configured extensions. With "-" the document is read from standard input
and the formatted result is written to standard output.

By default fmt only checks. --diff prints a unified diff of every change and
--write replaces the files in place. In check and diff mode the command exits
with status 1 when any file would change.`,
		Example: `  mdtree fmt
  mdtree fmt --diff docs/
  mdtree fmt --write --backup README.md CHANGELOG.md
  mdtree fmt --write --detect-lang -j 4 .
  cat README.md | mdtree fmt -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := &config.Config{}
			if cmd.Flags().Changed("jobs") {
				overrides.Jobs = flags.jobs
			}
			overrides.Ignore = flags.ignore
			overrides.Format.DetectLang = flags.detectLang
			overrides.Format.Backup = flags.backup

			cfg, err := g.load(cmd, overrides)
			if err != nil {
				return err
			}

			format, err := runner.NewMarkdownFormatter(runner.FormatterOptions{
				Backend:    cfg.Backend,
				DetectLang: cfg.Format.DetectLang,
			})
			if err != nil {
				return err
			}

			if len(args) == 1 && args[0] == "-" {
				return runFmtStdin(cmd, cfg, flags, format)
			}
			return runFmt(cmd, cfg, flags, format, args)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.write, "write", "w", false, "write formatted content back to the files")
	f.BoolVarP(&flags.diff, "diff", "d", false, "print a unified diff of the changes")
	f.BoolVar(&flags.check, "check", false, "only report files that would change (default)")
	f.BoolVar(&flags.detectLang, "detect-lang", false, "fill in missing code fence languages")
	f.BoolVar(&flags.backup, "backup", false, "keep a *"+fsutil.BackupSuffix+" copy of each rewritten file")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = number of CPUs)")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of files to skip")
	cmd.MarkFlagsMutuallyExclusive("write", "diff", "check")

	return cmd
}

func (f *fmtFlags) mode() runner.Mode {
	switch {
	case f.write:
		return runner.ModeWrite
	case f.diff:
		return runner.ModeDiff
	default:
		return runner.ModeCheck
	}
}

func runFmt(cmd *cobra.Command, cfg *config.Config, flags *fmtFlags, format runner.FormatFunc, paths []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	mode := flags.mode()
	opts := runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Mode:         mode,
		Backup:       cfg.Format.Backup,
	}
	logger.Debug("starting fmt",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, workDir,
		logging.FieldWrite, mode == runner.ModeWrite,
	)

	result, err := runner.New(format).Run(ctx, opts)
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))

	// In diff mode stdout carries only the patch.
	statusOut := out
	if mode == runner.ModeDiff {
		statusOut = errOut
	}

	for _, outcome := range result.Files {
		if outcome.Diff != nil {
			fmt.Fprint(out, styles.FormatDiff(outcome.Diff))
		}
		fmt.Fprint(statusOut, styles.FormatOutcome(relativePath(workDir, outcome.Path), outcome))
	}

	if mode == runner.ModeDiff && result.HasChanges() {
		fmt.Fprint(errOut, styles.FormatDiffStat(result.Stats.FilesChanged, result.Stats.Additions, result.Stats.Deletions))
	}
	fmt.Fprint(errOut, styles.FormatSummary(result.Stats, mode == runner.ModeWrite))

	switch {
	case result.HasErrors():
		return fmt.Errorf("%d of %d files failed to format", result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	case mode != runner.ModeWrite && result.HasChanges():
		return ErrChangesFound
	default:
		return nil
	}
}

// runFmtStdin formats standard input. The formatted document goes to
// standard output unless --check or --diff asks only for a verdict.
func runFmtStdin(cmd *cobra.Command, cfg *config.Config, flags *fmtFlags, format runner.FormatFunc) error {
	content, name, err := readInput(cmd, []string{"-"})
	if err != nil {
		return err
	}

	formatted, err := format(cmd.Context(), name, content)
	if err != nil {
		return err
	}
	changed := !bytes.Equal(content, formatted)

	out := cmd.OutOrStdout()
	switch {
	case flags.diff:
		if d := diff.Compute(name, content, formatted); d != nil {
			styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))
			fmt.Fprint(out, styles.FormatDiff(d))
		}
	case flags.check:
	default:
		_, err := out.Write(formatted)
		return err
	}

	if changed {
		return ErrChangesFound
	}
	return nil
}

func relativePath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
