// Package mdtree is a structural document model for Markdown.
//
// A document is parsed into a tree of *mdast.Node values that can be walked,
// queried with path expressions (package query), edited in place and
// rendered back to Markdown, JSON, YAML or plain text (package render).
//
//	root, err := mdtree.ParseString(ctx, "# Title\n\nSome *text*.\n")
//	if err != nil {
//		return err
//	}
//	for _, h := range root.Find(mdast.Of(mdast.NodeHeader)) {
//		fmt.Println(h.Label())
//	}
//	out, err := mdtree.RenderString(root)
//
// This package only wires the defaults together; every piece is usable on
// its own from the packages under pkg/.
package mdtree
