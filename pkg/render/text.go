package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// punctuation matches everything that is not a letter, digit, underscore or
// whitespace.
var punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// TextRenderer writes the words of a document separated by single spaces.
// It is meant for feeding Markdown to search indexes and spell checkers.
type TextRenderer struct {
	opts Options
}

// NewText returns a plain text renderer.
func NewText(opts Options) *TextRenderer {
	return &TextRenderer{opts: opts}
}

// Render implements Renderer.
func (r *TextRenderer) Render(w io.Writer, root *mdast.Node) error {
	if err := checkRoot(FormatText, root); err != nil {
		return err
	}

	var words []string
	//nolint:errcheck // the callback never fails
	mdast.Walk(root, func(n *mdast.Node) error {
		var chunk string
		switch n.Kind {
		case mdast.NodeText:
			chunk = n.Content()
		case mdast.NodeCodeBlock, mdast.NodeInlineCode:
			if !r.opts.IncludeCode {
				return nil
			}
			chunk = n.Content()
		case mdast.NodeImage:
			if !r.opts.IncludeAltText {
				return mdast.SkipChildren
			}
			return nil
		default:
			return nil
		}

		if r.opts.StripPunctuation {
			chunk = punctuation.ReplaceAllString(chunk, " ")
		}
		if chunk = strings.Join(strings.Fields(chunk), " "); chunk != "" {
			words = append(words, chunk)
		}
		return nil
	})

	if len(words) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, strings.Join(words, " ")+"\n"); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
