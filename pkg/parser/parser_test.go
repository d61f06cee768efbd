package parser_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/parser"
)

func TestParser_TidiesAndFixesLines(t *testing.T) {
	t.Parallel()

	tok := parser.TokenizerFunc(func(context.Context, []byte) ([]mdast.Token, error) {
		return []mdast.Token{
			open(mdast.NodeParagraph, 2, nil),
			text("a", 0),
			text("b", 0),
			open(mdast.NodeEmphasis, 0, nil),
			closeTok(mdast.NodeEmphasis),
			closeTok(mdast.NodeParagraph),
		}, nil
	})

	root, err := parser.New(tok).Parse(context.Background(), nil)
	require.NoError(t, err)

	want := mdast.WithChildren(mdast.NewFragment(),
		mdast.WithChildren(mdast.NewParagraph(), mdast.NewText("ab")),
	)
	assert.True(t, mdast.Equal(want, root), "got:\n%s", root.Pretty(mdast.PrettyOptions{}))
	assert.Equal(t, 1, root.Line)
	assert.Equal(t, 2, root.FirstChild().FirstChild().Line)
}

func TestParser_WithoutTidy(t *testing.T) {
	t.Parallel()

	tok := parser.TokenizerFunc(func(context.Context, []byte) ([]mdast.Token, error) {
		return []mdast.Token{text("a", 1), text("b", 1)}, nil
	})

	root, err := parser.New(tok, parser.WithoutTidy()).Parse(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, root.ChildCount())
}

func TestParser_PropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := parser.TokenizerFunc(func(context.Context, []byte) ([]mdast.Token, error) {
		return nil, boom
	})
	_, err := parser.New(failing).Parse(context.Background(), nil)
	require.ErrorIs(t, err, boom)

	unbalanced := parser.TokenizerFunc(func(context.Context, []byte) ([]mdast.Token, error) {
		return []mdast.Token{open(mdast.NodeBlockQuote, 1, nil)}, nil
	})
	_, err = parser.New(unbalanced).Parse(context.Background(), nil)
	require.ErrorIs(t, err, parser.ErrUnbalanced)
}

func TestParser_ChecksContextBetweenPhases(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	tok := parser.TokenizerFunc(func(context.Context, []byte) ([]mdast.Token, error) {
		cancel()
		return nil, nil
	})

	_, err := parser.New(tok).Parse(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParser_LogsAtDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.New(logging.Config{Level: "debug", Output: &buf}))

	p, err := parser.ForBackend("gfm")
	require.NoError(t, err)

	_, err = p.ParseString(ctx, "# Hi\n")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "parsed document")
	assert.Contains(t, out, "backend=gfm")
	assert.Contains(t, out, "nodes=3")
}

func TestBackends(t *testing.T) {
	t.Parallel()

	names := parser.Backends()
	for _, want := range []string{"commonmark", "gfm", "json", "yaml"} {
		assert.Contains(t, names, want)
	}
	assert.IsIncreasing(t, names)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "gfm", "GFM", "commonmark", "json", "yaml"} {
		tok, err := parser.Lookup(name)
		require.NoError(t, err, name)
		assert.NotNil(t, tok, name)
	}

	_, err := parser.Lookup("rst")
	require.ErrorIs(t, err, parser.ErrUnknownBackend)
	assert.True(t, strings.Contains(err.Error(), "gfm"), "error should list the available backends")
}

func TestRegister(t *testing.T) {
	t.Parallel()

	parser.Register("Upper-Test", func() parser.Tokenizer {
		return parser.TokenizerFunc(func(_ context.Context, content []byte) ([]mdast.Token, error) {
			return []mdast.Token{
				open(mdast.NodeParagraph, 1, nil),
				text(strings.ToUpper(string(content)), 1),
				closeTok(mdast.NodeParagraph),
			}, nil
		})
	})

	p, err := parser.ForBackend("upper-test")
	require.NoError(t, err)
	assert.Equal(t, "upper-test", p.Name())

	root, err := p.ParseString(context.Background(), "shout")
	require.NoError(t, err)
	assert.Equal(t, "SHOUT", mdast.PlainText(root))
}

func TestForBackend_StructuralRoundTrip(t *testing.T) {
	t.Parallel()

	md, err := parser.ForBackend("")
	require.NoError(t, err)
	assert.Equal(t, parser.DefaultBackend, md.Name())

	doc, err := md.ParseString(context.Background(), "# Title\n\n- [x] done\n- todo\n")
	require.NoError(t, err)

	yamlParser, err := parser.ForBackend("yaml")
	require.NoError(t, err)

	dump, err := yaml.Marshal(doc.ToDict())
	require.NoError(t, err)

	again, err := yamlParser.Parse(context.Background(), dump)
	require.NoError(t, err)
	assert.True(t, mdast.Equal(doc, again))
}
