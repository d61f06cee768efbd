package pretty

import (
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// Decorate colours a node label for mdast.PrettyOptions. The kind name is
// styled by category and the argument list is dimmed.
func (s *Styles) Decorate(n *mdast.Node, label string) string {
	name, args, found := strings.Cut(label, "(")

	style := s.Block
	switch {
	case n.Kind.IsLeaf():
		style = s.Leaf
	case n.Kind.IsInline():
		style = s.Inline
	}

	out := style.Render(name)
	if found {
		out += s.Args.Render("(" + args)
	}
	return out
}

// FormatTree returns the pretty-printed tree rooted at root.
func (s *Styles) FormatTree(root *mdast.Node, showLines bool) string {
	if root == nil {
		return ""
	}
	return root.Pretty(mdast.PrettyOptions{
		ShowLines: showLines,
		Decorate:  s.Decorate,
	})
}
