package structural_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/parser/structural"
)

func sample() *mdast.Node {
	return mdast.WithChildren(mdast.NewFragment(),
		mdast.WithChildren(mdast.NewHeader(2), mdast.NewText("Title")),
		mdast.WithChildren(mdast.NewList(true),
			mdast.WithChildren(mdast.NewListItem(),
				mdast.WithChildren(mdast.NewParagraph(), mdast.NewText("one")),
			),
		),
	)
}

func TestTokenize_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(sample().ToDict())
	require.NoError(t, err)

	tokens, err := structural.New(structural.FormatJSON).Tokenize(context.Background(), data)
	require.NoError(t, err)
	require.NoError(t, mdast.ValidateTokens(tokens))

	assert.Equal(t, mdast.TokOpen, tokens[0].Kind)
	assert.Equal(t, mdast.NodeFragment, tokens[0].Node)
	assert.Equal(t, mdast.Stream(sample()), tokens)
}

func TestDecode_YAML(t *testing.T) {
	t.Parallel()

	data, err := yaml.Marshal(sample().ToDict())
	require.NoError(t, err)

	root, err := structural.Decode(structural.FormatYAML, data)
	require.NoError(t, err)
	assert.True(t, mdast.Equal(sample(), root))
}

func TestDecode_HandWritten(t *testing.T) {
	t.Parallel()

	input := `
variant: paragraph
attributes: {}
children:
  - variant: text
    attributes: {content: "hi "}
  - variant: strong
    children:
      - variant: text
        attributes: {content: there}
`
	root, err := structural.Decode(structural.FormatYAML, []byte(input))
	require.NoError(t, err)
	assert.Equal(t, mdast.NodeParagraph, root.Kind)
	assert.Equal(t, "hi there", mdast.PlainText(root))
}

func TestDecode_JSONWithComments(t *testing.T) {
	t.Parallel()

	input := `{
	// hand-edited dump
	"variant": "header",
	"attributes": {"level": 3},
	"children": [
		{"variant": "text", "attributes": {"content": "Notes"}}, /* trailing comma next */
	],
}`
	root, err := structural.Decode(structural.FormatJSON, []byte(input))
	require.NoError(t, err)
	assert.Equal(t, mdast.NodeHeader, root.Kind)
	assert.Equal(t, 3, root.Level())
	assert.Equal(t, "Notes", mdast.PlainText(root))
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		input  string
	}{
		{"not json", structural.FormatJSON, "# heading"},
		{"unknown field", structural.FormatJSON, `{"variant":"fragment","kids":[]}`},
		{"missing variant", structural.FormatJSON, `{"attributes":{}}`},
		{"bad variant", structural.FormatYAML, "variant: table\n"},
		{"bad nesting", structural.FormatJSON, `{"variant":"list","children":[{"variant":"text"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := structural.Decode(tt.format, []byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, structural.ErrDecode), "got %v", err)
		})
	}
}

func TestTokenize_BlankAndCancelled(t *testing.T) {
	t.Parallel()

	tok := structural.New(structural.FormatYAML)

	tokens, err := tok.Tokenize(context.Background(), []byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, tokens)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tok.Tokenize(ctx, []byte(`variant: fragment`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_DefaultsToJSON(t *testing.T) {
	t.Parallel()

	assert.Equal(t, structural.FormatJSON, structural.New("xml").Format())
	assert.Equal(t, structural.FormatYAML, structural.New(structural.FormatYAML).Format())
}
