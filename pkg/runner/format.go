package runner

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/langdetect"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/render"
)

// FormatterOptions configures NewMarkdownFormatter.
type FormatterOptions struct {
	// Backend names the parser backend. Empty means parser.DefaultBackend.
	Backend string

	// DetectLang fills in missing info strings on fenced code blocks.
	DetectLang bool
}

// NewMarkdownFormatter returns a FormatFunc that parses a file with the
// configured backend and renders it back as normalized Markdown.
func NewMarkdownFormatter(opts FormatterOptions) (FormatFunc, error) {
	if _, err := parser.Lookup(opts.Backend); err != nil {
		return nil, err
	}
	md := render.NewMarkdown()

	return func(ctx context.Context, path string, content []byte) ([]byte, error) {
		// Each call builds its own parser so workers share nothing.
		p, err := parser.ForBackend(opts.Backend)
		if err != nil {
			return nil, err
		}

		root, err := p.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}

		if opts.DetectLang {
			filled, err := langdetect.FillFences(root)
			if err != nil {
				return nil, fmt.Errorf("detect languages: %w", err)
			}
			if filled > 0 {
				logging.FromContext(ctx).Debug("filled code fence languages",
					logging.FieldPath, path, "count", filled)
			}
		}

		var buf bytes.Buffer
		if err := md.Render(&buf, root); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		return buf.Bytes(), nil
	}, nil
}
