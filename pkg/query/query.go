// Package query compiles textual paths such as
//
//	header[level == 1] / text
//
// into mdast selectors. A step names one or more variants separated by "|",
// or "*" for any node, and may carry a bracketed expr-lang predicate over the
// node's attributes plus line, kind and text.
package query

import (
	"fmt"
	"iter"
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// Query is a compiled query path. It is safe for concurrent use as long as
// the OnError hook is.
type Query struct {
	source string
	path   mdast.Path
}

// Option configures Compile.
type Option func(*options)

type options struct {
	onError func(n *mdast.Node, err error)
}

// WithOnError sets a hook called when a predicate fails while being
// evaluated against n. The node does not match in that case.
func WithOnError(fn func(n *mdast.Node, err error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// Compile parses src into a Query. All errors wrap ErrBadPath.
func Compile(src string, opts ...Option) (*Query, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	parts, err := splitSteps(src)
	if err != nil {
		return nil, err
	}

	steps := make([]mdast.Selector, 0, len(parts))
	for i, part := range parts {
		step, err := compileStep(part, o)
		if err != nil {
			return nil, fmt.Errorf("step %d %q: %w", i+1, strings.TrimSpace(part), err)
		}
		steps = append(steps, step)
	}

	path, err := mdast.Compose(steps...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPath, err)
	}

	return &Query{source: strings.TrimSpace(src), path: path}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string, opts ...Option) *Query {
	q, err := Compile(src, opts...)
	if err != nil {
		panic(err)
	}
	return q
}

// String returns the source the query was compiled from.
func (q *Query) String() string {
	return q.source
}

// Path returns the compiled selector.
func (q *Query) Path() mdast.Path {
	return q.path
}

// Select lazily yields the matches under root in document order.
func (q *Query) Select(root *mdast.Node) iter.Seq[*mdast.Node] {
	return root.Select(q.path)
}

// Find returns a snapshot of all matches under root.
func (q *Query) Find(root *mdast.Node) []*mdast.Node {
	return root.Find(q.path)
}

// FindOne returns the first match under root, or nil.
func (q *Query) FindOne(root *mdast.Node) *mdast.Node {
	return root.FindOne(q.path)
}
