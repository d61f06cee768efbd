package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/render"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  render.Format
	}{
		{"", render.FormatMarkdown},
		{"markdown", render.FormatMarkdown},
		{"MD", render.FormatMarkdown},
		{"json", render.FormatJSON},
		{" yml ", render.FormatYAML},
		{"yaml", render.FormatYAML},
		{"txt", render.FormatText},
		{"text", render.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := render.ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}

	_, err := render.ParseFormat("html")
	require.ErrorIs(t, err, render.ErrUnknownFormat)
	assert.Contains(t, err.Error(), `"html"`)
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range render.Formats() {
		r, err := render.New(format, render.Options{})
		require.NoError(t, err, format)
		assert.NotNil(t, r)
	}

	r, err := render.New(render.FormatMarkdown, render.Options{})
	require.NoError(t, err)
	assert.IsType(t, &render.MarkdownRenderer{}, r)

	_, err = render.New("html", render.Options{})
	require.ErrorIs(t, err, render.ErrUnknownFormat)
	assert.False(t, render.Format("html").IsValid())
}
