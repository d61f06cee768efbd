package mdtree_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree"
	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/render"
)

func TestParseAndRender(t *testing.T) {
	t.Parallel()

	root, err := mdtree.ParseString(context.Background(), "Title\n=====\n\nSome *text*.\n")
	require.NoError(t, err)
	assert.Equal(t, mdast.NodeFragment, root.Kind)

	out, err := mdtree.RenderString(root)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nSome *text*.\n", out)
}

func TestParseWithBackend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root, err := mdtree.ParseString(ctx, "# Title\n")
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, mdtree.Render(&buf, root, render.FormatJSON, render.Options{}))

	again, err := mdtree.ParseString(ctx, buf.String(), mdtree.WithBackend("json"))
	require.NoError(t, err)
	assert.True(t, mdast.Equal(root, again), "json round trip changed the tree")

	_, err = mdtree.ParseString(ctx, "# x", mdtree.WithBackend("rst"))
	require.ErrorIs(t, err, parser.ErrUnknownBackend)
}

func TestToDict(t *testing.T) {
	t.Parallel()

	root, err := mdtree.ParseString(context.Background(), "# Title\n", mdtree.WithoutTidy())
	require.NoError(t, err)

	dict := mdtree.ToDict(root)
	assert.Equal(t, "fragment", dict.Variant)
	require.Len(t, dict.Children, 1)
	assert.Equal(t, "header", dict.Children[0].Variant)
	assert.Equal(t, 1, dict.Children[0].Attributes["level"])
}

func ExampleParseString() {
	root, err := mdtree.ParseString(context.Background(), "# Intro\n\n## Install\n\n## Usage\n")
	if err != nil {
		panic(err)
	}
	for _, h := range root.Find(mdast.Of(mdast.NodeHeader)) {
		fmt.Println(h.Label())
	}
	// Output:
	// Header(level=1)
	// Header(level=2)
	// Header(level=2)
}
