// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Pipeline fields.
	FieldBackend  = "backend"
	FieldRenderer = "renderer"
	FieldPhase    = "phase"
	FieldDuration = "duration"
	FieldTokens   = "tokens"
	FieldNodes    = "nodes"
	FieldBytes    = "bytes"
	FieldQuery    = "query"
	FieldMatches  = "matches"

	// Format fields.
	FieldJobs         = "jobs"
	FieldWrite        = "write"
	FieldCheck        = "check"
	FieldFilesFound   = "files_found"
	FieldFilesChanged = "files_changed"
	FieldFilesFailed  = "files_failed"
	FieldLanguage     = "language"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
