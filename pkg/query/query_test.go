package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/query"
)

const sampleMarkdown = `# Title

Intro with a [link](https://example.com) and **bold** text.

## Install

- [x] download
- [ ] run ` + "`make`" + `

### Details

1. one
2. two
`

func sampleTree(t *testing.T) *mdast.Node {
	t.Helper()

	p, err := parser.ForBackend(parser.BackendGFM)
	require.NoError(t, err)
	doc, err := p.ParseString(context.Background(), sampleMarkdown)
	require.NoError(t, err)
	return doc
}

func contents(nodes []*mdast.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, mdast.PlainText(n))
	}
	return out
}

func TestCompile_Find(t *testing.T) {
	t.Parallel()

	doc := sampleTree(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"header", []string{"Title", "Install", "Details"}},
		{"Header", []string{"Title", "Install", "Details"}},
		{"header[level == 2]", []string{"Install"}},
		{"header[level >= 2] / text", []string{"Install", "Details"}},
		{"header[text startsWith 'Inst']", []string{"Install"}},
		{"listitem[checked]", []string{"download"}},
		{"list[ordered] / text", []string{"one", "two"}},
		{"strong | link", []string{"link", "bold"}},
		{"link[url contains 'example']", []string{"link"}},
		{"paragraph / inlinecode", []string{"make"}},
		{"*[kind == 'strong']", []string{"bold"}},
		{"header[level == 4]", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()

			q, err := query.Compile(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, contents(q.Find(doc)))
		})
	}
}

func TestCompile_LinePredicate(t *testing.T) {
	t.Parallel()

	doc := sampleTree(t)

	q := query.MustCompile("header[line > 1]")
	got := q.Find(doc)
	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Line)
}

func TestCompile_SlashInsidePredicate(t *testing.T) {
	t.Parallel()

	doc := sampleTree(t)

	q, err := query.Compile("link[url == 'https://example.com' && 4 / 2 == 2]")
	require.NoError(t, err)
	assert.Len(t, q.Find(doc), 1)
	assert.Len(t, q.Path().Steps(), 1)
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"empty step", "header//text"},
		{"trailing slash", "header/"},
		{"unknown variant", "table"},
		{"unknown in union", "text|table"},
		{"unclosed bracket", "header[level == 1"},
		{"stray bracket", "header]"},
		{"text after predicate", "header[level == 1]x"},
		{"empty predicate", "header[]"},
		{"predicate without variant", "[level == 1]"},
		{"attribute of another variant", "text[level == 1]"},
		{"non boolean predicate", "header[level]"},
		{"syntax error", "header[level ==]"},
		{"unterminated string", "link[url == 'x]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := query.Compile(tt.query)
			require.Error(t, err)
			assert.ErrorIs(t, err, query.ErrBadPath)
			assert.ErrorIs(t, err, mdast.ErrBadPath)
		})
	}
}

func TestCompile_UnionSharesAttributes(t *testing.T) {
	t.Parallel()

	doc := sampleTree(t)

	// Text nodes lack level, so they see its zero value.
	q, err := query.Compile("header|text[level == 0]")
	require.NoError(t, err)
	for _, n := range q.Find(doc) {
		assert.Equal(t, mdast.NodeText, n.Kind)
	}
}

func TestWithOnError(t *testing.T) {
	t.Parallel()

	doc := sampleTree(t)

	// Levels 2 and 3 index past the end of the array.
	var failed []string
	q, err := query.Compile("header[[10, 20][level] == 20]",
		query.WithOnError(func(n *mdast.Node, err error) {
			failed = append(failed, mdast.PlainText(n))
		}))
	require.NoError(t, err)

	assert.Equal(t, []string{"Title"}, contents(q.Find(doc)))
	assert.Equal(t, []string{"Install", "Details"}, failed)
}

func TestQuery_SelectAndFindOne(t *testing.T) {
	t.Parallel()

	doc := sampleTree(t)
	q := query.MustCompile(" header / text ")

	assert.Equal(t, "header / text", q.String())
	assert.Equal(t, "Title", q.FindOne(doc).Content())

	count := 0
	for range q.Select(doc) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestMustCompile_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { query.MustCompile("nope") })
}
