// Package render writes mdast trees as Markdown, as a structural JSON or
// YAML dump, or as plain text.
//
// Renderers are pure: the output depends only on the tree, never on the
// source it was parsed from.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// Renderer writes a tree to w.
type Renderer interface {
	Render(w io.Writer, root *mdast.Node) error
}

// Format names a renderer.
type Format string

// Output formats.
const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatText     Format = "text"
)

// Formats returns every known format in display order.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatJSON, FormatYAML, FormatText}
}

// ParseFormat parses a format name. The empty string selects markdown and
// "md" is accepted as an alias.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w %q; valid formats: markdown, json, yaml, text", ErrUnknownFormat, name)
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatJSON, FormatYAML, FormatText:
		return true
	default:
		return false
	}
}

// Options configures the renderers. Each renderer reads only the fields
// that concern it.
type Options struct {
	// Compact writes the JSON dump on one line.
	Compact bool

	// IncludeCode makes the text renderer keep code block and code span
	// content.
	IncludeCode bool

	// IncludeAltText makes the text renderer keep image descriptions.
	IncludeAltText bool

	// StripPunctuation makes the text renderer replace punctuation with
	// spaces.
	StripPunctuation bool
}

// New returns the renderer for format.
func New(format Format, opts Options) (Renderer, error) {
	switch format {
	case FormatMarkdown, "":
		return NewMarkdown(), nil
	case FormatJSON:
		return NewJSON(opts), nil
	case FormatYAML:
		return NewYAML(), nil
	case FormatText:
		return NewText(opts), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// ToString renders root with r and returns the output.
func ToString(r Renderer, root *mdast.Node) (string, error) {
	var b strings.Builder
	if err := r.Render(&b, root); err != nil {
		return "", err
	}
	return b.String(), nil
}

func checkRoot(format Format, root *mdast.Node) error {
	if root == nil {
		return fmt.Errorf("render %s: %w", format, mdast.ErrNilNode)
	}
	return nil
}
