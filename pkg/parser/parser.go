// Package parser turns Markdown source into mdast trees. A backend
// Tokenizer produces a token stream; Assemble builds the tree; the tree is
// then tidied and given line numbers.
package parser

import (
	"context"
	"fmt"
	"time"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/mdast"
)

// Tokenizer is a parsing backend.
type Tokenizer interface {
	// Tokenize returns the token stream for content. The stream must be
	// balanced; it need not be wrapped in a root Fragment.
	Tokenize(ctx context.Context, content []byte) ([]mdast.Token, error)
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(ctx context.Context, content []byte) ([]mdast.Token, error)

// Tokenize calls f.
func (f TokenizerFunc) Tokenize(ctx context.Context, content []byte) ([]mdast.Token, error) {
	return f(ctx, content)
}

// Parser runs the full parse pipeline for one backend.
type Parser struct {
	name      string
	tokenizer Tokenizer
	tidy      bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithName sets the backend name used in log fields.
func WithName(name string) Option {
	return func(p *Parser) {
		p.name = name
	}
}

// WithoutTidy skips the Tidy pass, leaving the tree exactly as assembled.
func WithoutTidy() Option {
	return func(p *Parser) {
		p.tidy = false
	}
}

// New creates a parser around tok.
func New(tok Tokenizer, opts ...Option) *Parser {
	p := &Parser{
		name:      "custom",
		tokenizer: tok,
		tidy:      true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the backend name.
func (p *Parser) Name() string {
	return p.name
}

// Parse tokenizes content, assembles the tree, tidies it and fills missing
// line numbers. The context is checked between phases.
func (p *Parser) Parse(ctx context.Context, content []byte) (*mdast.Node, error) {
	logger := logging.FromContext(ctx).With(logging.FieldBackend, p.name)
	start := time.Now()

	tokens, err := p.tokenizer.Tokenize(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	root, err := Assemble(tokens)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	if p.tidy {
		root.Tidy()
	}
	root.FixMissingLocations()

	logger.Debug("parsed document",
		logging.FieldBytes, len(content),
		logging.FieldTokens, len(tokens),
		logging.FieldNodes, countNodes(root),
		logging.FieldDuration, time.Since(start),
	)

	return root, nil
}

// ParseString is Parse for string input.
func (p *Parser) ParseString(ctx context.Context, content string) (*mdast.Node, error) {
	return p.Parse(ctx, []byte(content))
}

func countNodes(root *mdast.Node) int {
	count := 0
	//nolint:errcheck // callback never fails
	mdast.Walk(root, func(*mdast.Node) error {
		count++
		return nil
	})
	return count
}
