package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/parser"
)

func open(kind mdast.NodeKind, line int, attrs map[string]any) mdast.Token {
	return mdast.Token{Kind: mdast.TokOpen, Node: kind, Attrs: attrs, Line: line}
}

func closeTok(kind mdast.NodeKind) mdast.Token {
	return mdast.Token{Kind: mdast.TokClose, Node: kind}
}

func text(content string, line int) mdast.Token {
	return mdast.Token{Kind: mdast.TokText, Content: content, Line: line}
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	tokens := []mdast.Token{
		open(mdast.NodeHeader, 1, map[string]any{"level": 2}),
		text("Title", 1),
		closeTok(mdast.NodeHeader),
		open(mdast.NodeParagraph, 3, nil),
		text("Hello ", 3),
		open(mdast.NodeStrong, 3, nil),
		text("World", 3),
		closeTok(mdast.NodeInvalid),
		{Kind: mdast.TokLeaf, Node: mdast.NodeSoftBreak, Line: 3},
		closeTok(mdast.NodeParagraph),
		{Kind: mdast.TokLeaf, Node: mdast.NodeThematicBreak, Attrs: map[string]any{"char": "*"}, Line: 5},
	}

	root, err := parser.Assemble(tokens)
	require.NoError(t, err)

	want := mdast.WithChildren(mdast.NewFragment(),
		mdast.WithChildren(mdast.NewHeader(2), mdast.NewText("Title")),
		mdast.WithChildren(mdast.NewParagraph(),
			mdast.NewText("Hello "),
			mdast.WithChildren(mdast.NewStrong(), mdast.NewText("World")),
			mdast.NewSoftBreak(),
		),
		mdast.NewThematicBreak(),
	)
	want.LastChild().Block.ThematicChar = '*'

	assert.True(t, mdast.Equal(want, root), "got:\n%s", root.Pretty(mdast.PrettyOptions{}))

	para := root.Children()[1]
	assert.Equal(t, 3, para.Line)
	assert.Equal(t, 5, root.LastChild().Line)
}

func TestAssemble_RoundTripsStream(t *testing.T) {
	t.Parallel()

	doc := mdast.WithChildren(mdast.NewFragment(),
		mdast.WithChildren(mdast.NewBlockQuote(),
			mdast.WithChildren(mdast.NewList(false),
				mdast.WithChildren(mdast.NewTaskItem(true),
					mdast.WithChildren(mdast.NewParagraph(), mdast.NewText("done")),
					mdast.NewCodeBlock("sh", "ls\n"),
				),
			),
		),
	)

	root, err := parser.Assemble(mdast.Stream(doc))
	require.NoError(t, err)

	// The streamed root Fragment lands inside the implicit one.
	require.Equal(t, 1, root.ChildCount())
	root.Tidy()
	assert.True(t, mdast.Equal(doc, root))
}

func TestAssemble_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tokens  []mdast.Token
		wantErr error
	}{
		{
			name:    "close without open",
			tokens:  []mdast.Token{closeTok(mdast.NodeParagraph)},
			wantErr: parser.ErrUnbalanced,
		},
		{
			name:    "mismatched close",
			tokens:  []mdast.Token{open(mdast.NodeParagraph, 1, nil), closeTok(mdast.NodeHeader)},
			wantErr: parser.ErrUnbalanced,
		},
		{
			name:    "unclosed",
			tokens:  []mdast.Token{open(mdast.NodeBlockQuote, 1, nil)},
			wantErr: parser.ErrUnbalanced,
		},
		{
			name: "paragraph inside paragraph",
			tokens: []mdast.Token{
				open(mdast.NodeParagraph, 1, nil),
				open(mdast.NodeParagraph, 1, nil),
			},
			wantErr: mdast.ErrNotAllowed,
		},
		{
			name:    "text inside list",
			tokens:  []mdast.Token{open(mdast.NodeList, 1, nil), text("x", 1), closeTok(mdast.NodeList)},
			wantErr: mdast.ErrNotAllowed,
		},
		{
			name:    "bad attribute",
			tokens:  []mdast.Token{open(mdast.NodeHeader, 1, map[string]any{"level": "one"}), closeTok(mdast.NodeHeader)},
			wantErr: mdast.ErrBadAttribute,
		},
		{
			name:    "unknown kind",
			tokens:  []mdast.Token{{Kind: mdast.TokLeaf, Node: mdast.NodeKind(99)}},
			wantErr: mdast.ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parser.Assemble(tt.tokens)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestAssemble_StructureErrorDetails(t *testing.T) {
	t.Parallel()

	_, err := parser.Assemble([]mdast.Token{
		open(mdast.NodeList, 1, nil),
		open(mdast.NodeParagraph, 1, nil),
	})

	var structErr *mdast.StructureError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, mdast.NodeList, structErr.Parent)
	assert.Equal(t, mdast.NodeParagraph, structErr.Child)
}

func TestAssemble_Empty(t *testing.T) {
	t.Parallel()

	root, err := parser.Assemble(nil)
	require.NoError(t, err)
	assert.Equal(t, mdast.NodeFragment, root.Kind)
	assert.False(t, root.HasChildren())
}
