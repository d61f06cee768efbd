package cli

import "errors"

// Exit codes for mdtree.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFindings indicates the command ran but found something to report:
	// files that need formatting, or a query without matches.
	ExitFindings = 1

	// ExitError indicates a usage, configuration, parse or I/O error.
	ExitError = 2
)

var (
	// ErrChangesFound is returned by fmt when files would be reformatted.
	ErrChangesFound = errors.New("files would be reformatted")

	// ErrNoMatches is returned by query when nothing matched.
	ErrNoMatches = errors.New("no matches")
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChangesFound), errors.Is(err, ErrNoMatches):
		return ExitFindings
	default:
		return ExitError
	}
}

// IsFinding reports whether err only signals findings, so it needs no log line.
func IsFinding(err error) bool {
	return ExitCode(err) == ExitFindings
}
