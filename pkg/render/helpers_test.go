package render_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/render"
)

func doc(children ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewFragment(), children...)
}

func para(children ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewParagraph(), children...)
}

func header(level int, children ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewHeader(level), children...)
}

func text(s string) *mdast.Node {
	return mdast.NewText(s)
}

func strong(children ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewStrong(), children...)
}

func emph(children ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewEmphasis(), children...)
}

func strike(children ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewStrike(), children...)
}

func link(url, title string, children ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewLink(url, title), children...)
}

func image(url, title string, children ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewImage(url, title), children...)
}

func withReference(n *mdast.Node, ref string) *mdast.Node {
	n.Inline.Link.ReferenceLabel = ref
	return n
}

func list(ordered bool, items ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewList(ordered), items...)
}

func item(children ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewListItem(), children...)
}

func task(checked bool, children ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewTaskItem(checked), children...)
}

func quote(children ...*mdast.Node) *mdast.Node {
	return mdast.WithChildren(mdast.NewBlockQuote(), children...)
}

func indented(content string) *mdast.Node {
	code := mdast.NewCodeBlock("", content)
	code.Block.CodeBlock.Indented = true
	return code
}

func thematic(char byte) *mdast.Node {
	tb := mdast.NewThematicBreak()
	tb.Block.ThematicChar = char
	return tb
}

func markdown(t *testing.T, root *mdast.Node) string {
	t.Helper()

	out, err := render.ToString(render.NewMarkdown(), root)
	require.NoError(t, err)
	return out
}

func parse(t testing.TB, input string) *mdast.Node {
	t.Helper()

	p, err := parser.ForBackend(parser.BackendGFM)
	require.NoError(t, err)
	tree, err := p.ParseString(context.Background(), input)
	require.NoError(t, err)
	return tree
}

func pretty(n *mdast.Node) string {
	return n.Pretty(mdast.PrettyOptions{})
}
