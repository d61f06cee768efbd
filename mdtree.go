package mdtree

import (
	"context"
	"io"

	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/render"
)

type options struct {
	backend string
	parser  []parser.Option
}

// Option configures Parse.
type Option func(*options)

// WithBackend selects the parser backend by name ("gfm", "commonmark",
// "json", "yaml").
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithoutTidy keeps the tree exactly as the backend produced it.
func WithoutTidy() Option {
	return func(o *options) {
		o.parser = append(o.parser, parser.WithoutTidy())
	}
}

// Parse parses content into a document tree. The GFM backend is used
// unless WithBackend says otherwise.
func Parse(ctx context.Context, content []byte, opts ...Option) (*mdast.Node, error) {
	o := options{backend: parser.DefaultBackend}
	for _, opt := range opts {
		opt(&o)
	}

	p, err := parser.ForBackend(o.backend, o.parser...)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, content)
}

// ParseString is Parse for a string.
func ParseString(ctx context.Context, content string, opts ...Option) (*mdast.Node, error) {
	return Parse(ctx, []byte(content), opts...)
}

// Render writes root to w in the given format.
func Render(w io.Writer, root *mdast.Node, format render.Format, opts render.Options) error {
	r, err := render.New(format, opts)
	if err != nil {
		return err
	}
	return r.Render(w, root)
}

// RenderString renders root as Markdown.
func RenderString(root *mdast.Node) (string, error) {
	return render.ToString(render.NewMarkdown(), root)
}

// ToDict returns the structural form of root.
func ToDict(root *mdast.Node) mdast.Dict {
	return root.ToDict()
}
