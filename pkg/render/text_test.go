package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/render"
)

func TestText(t *testing.T) {
	t.Parallel()

	root := doc(
		header(1, text("Hello, World!")),
		para(text("Some "), mdast.NewInlineCode("code"), text(" here.")),
		mdast.NewCodeBlock("go", "x := 1\n"),
		para(image("a.png", "", text("alt text"))),
	)

	tests := []struct {
		name string
		opts render.Options
		want string
	}{
		{
			name: "words only",
			want: "Hello, World! Some here.\n",
		},
		{
			name: "with code",
			opts: render.Options{IncludeCode: true},
			want: "Hello, World! Some code here. x := 1\n",
		},
		{
			name: "with alt text",
			opts: render.Options{IncludeAltText: true},
			want: "Hello, World! Some here. alt text\n",
		},
		{
			name: "without punctuation",
			opts: render.Options{StripPunctuation: true},
			want: "Hello World Some here\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := render.ToString(render.NewText(tt.opts), root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestText_Empty(t *testing.T) {
	t.Parallel()

	out, err := render.ToString(render.NewText(render.Options{}), doc(mdast.NewThematicBreak()))
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = render.ToString(render.NewText(render.Options{}), nil)
	require.ErrorIs(t, err, mdast.ErrNilNode)
}
