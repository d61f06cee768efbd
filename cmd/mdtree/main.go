// Package main is the entry point for the mdtree CLI.
package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/yaklabco/mdtree/internal/cli"
	"github.com/yaklabco/mdtree/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// GOMAXPROCS sizes the fmt worker pool, so honour container CPU quotas.
	// Set only fails on an invalid GOMAXPROCS variable, which the runtime
	// ignores anyway.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logging.Default().Debug(fmt.Sprintf(format, args...))
	}))

	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.Execute()
	if err != nil && !cli.IsFinding(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
