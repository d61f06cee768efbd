// Package goldmark provides a tokenizer backend for mdtree built on the
// goldmark CommonMark parser.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// Flavors understood by New.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Tokenizer turns Markdown source into an mdast token stream using goldmark.
// A Tokenizer is safe for concurrent use.
type Tokenizer struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a tokenizer for the given flavor. Unknown flavors fall back
// to CommonMark.
func New(flavor string) *Tokenizer {
	f := flavorOrDefault(flavor)
	return &Tokenizer{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (t *Tokenizer) Flavor() string {
	return t.flavor
}

// Tokenize parses content and returns its token stream. The stream is not
// wrapped in a root Fragment; the caller supplies one.
func (t *Tokenizer) Tokenize(ctx context.Context, content []byte) ([]mdast.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tokenize cancelled: %w", err)
	}

	source := copyContent(content)
	doc := t.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tokenize cancelled: %w", err)
	}

	em := newEmitter(source)
	em.emitChildren(doc)
	return em.tokens, nil
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance. GFM
// enables strikethrough and task lists only: tables have no node kind and
// linkify would invent links on reparse.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(
			extension.Strikethrough,
			extension.TaskList,
		))
	case FlavorCommonMark:
	}

	return goldmark.New(opts...)
}

// copyContent copies content so goldmark segments never alias caller memory.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
