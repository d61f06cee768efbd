package mdast_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

func kinds(nodes []*mdast.Node) []mdast.NodeKind {
	out := make([]mdast.NodeKind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}

func sampleDocument() *mdast.Node {
	return mdast.WithChildren(mdast.NewFragment(),
		mdast.WithChildren(mdast.NewHeader(1), mdast.NewText("Hello World!")),
		mdast.WithChildren(mdast.NewParagraph(), mdast.NewText("This is a sample document.")),
	)
}

func TestAppendSibling_AfterEveryHeader(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	original := doc.LastChild()

	for _, header := range doc.Find(mdast.Of(mdast.NodeHeader)) {
		added := mdast.WithChildren(mdast.NewParagraph(), mdast.NewText("inserted"))
		if err := header.AppendSibling(added); err != nil {
			t.Fatalf("AppendSibling: %v", err)
		}
	}

	want := []mdast.NodeKind{mdast.NodeHeader, mdast.NodeParagraph, mdast.NodeParagraph}
	if diff := cmp.Diff(want, kinds(doc.Children())); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if doc.Children()[1] == original || doc.LastChild() != original {
		t.Error("new paragraph should sit between the header and the original paragraph")
	}
}

func TestSiblingInsertion_Order(t *testing.T) {
	t.Parallel()

	mid := mdast.NewText("m")
	para := mdast.WithChildren(mdast.NewParagraph(), mid)

	if err := mid.AppendSibling(mdast.NewText("a1"), mdast.NewText("a2")); err != nil {
		t.Fatal(err)
	}
	if err := mid.PrependSibling(mdast.NewText("p1"), mdast.NewText("p2")); err != nil {
		t.Fatal(err)
	}
	if err := para.Prepend(mdast.NewText("first")); err != nil {
		t.Fatal(err)
	}
	if err := para.Extend([]*mdast.Node{mdast.NewText("last")}); err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, child := range para.Children() {
		got = append(got, child.Content())
	}
	want := []string{"first", "p1", "p2", "m", "a1", "a2", "last"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSiblingInsertion_Detached(t *testing.T) {
	t.Parallel()

	root := mdast.NewFragment()
	if err := root.AppendSibling(mdast.NewParagraph()); !errors.Is(err, mdast.ErrDetached) {
		t.Errorf("AppendSibling on root: expected ErrDetached, got %v", err)
	}
	if err := root.PrependSibling(mdast.NewParagraph()); !errors.Is(err, mdast.ErrDetached) {
		t.Errorf("PrependSibling on root: expected ErrDetached, got %v", err)
	}
	if err := root.Replace(mdast.NewParagraph()); !errors.Is(err, mdast.ErrDetached) {
		t.Errorf("Replace on root: expected ErrDetached, got %v", err)
	}
}

func TestInsertion_IsAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edit    func(doc *mdast.Node) error
		wantErr error
	}{
		{
			name: "header into list",
			edit: func(doc *mdast.Node) error {
				return doc.FindOne(mdast.Of(mdast.NodeList)).Append(mdast.NewListItem(), mdast.NewHeader(1))
			},
			wantErr: mdast.ErrNotAllowed,
		},
		{
			name: "paragraph beside text",
			edit: func(doc *mdast.Node) error {
				return doc.FindOne(mdast.Of(mdast.NodeText)).AppendSibling(mdast.NewText("ok"), mdast.NewParagraph())
			},
			wantErr: mdast.ErrNotAllowed,
		},
		{
			name: "fragment hiding a block inside a paragraph",
			edit: func(doc *mdast.Node) error {
				frag := mdast.WithChildren(mdast.NewFragment(), mdast.NewText("x"), mdast.NewThematicBreak())
				return doc.FindOne(mdast.Of(mdast.NodeParagraph)).Append(frag)
			},
			wantErr: mdast.ErrNotAllowed,
		},
		{
			name: "ancestor into descendant",
			edit: func(doc *mdast.Node) error {
				item := doc.FindOne(mdast.Of(mdast.NodeListItem))
				return item.Append(doc.FindOne(mdast.Of(mdast.NodeList)))
			},
			wantErr: mdast.ErrCycle,
		},
		{
			name: "same node twice",
			edit: func(doc *mdast.Node) error {
				text := mdast.NewText("dup")
				return doc.FindOne(mdast.Of(mdast.NodeParagraph)).Append(text, text)
			},
			wantErr: mdast.ErrDuplicate,
		},
		{
			name: "nil node",
			edit: func(doc *mdast.Node) error {
				return doc.Append(mdast.NewParagraph(), nil)
			},
			wantErr: mdast.ErrNilNode,
		},
		{
			name: "replace text with block",
			edit: func(doc *mdast.Node) error {
				return doc.FindOne(mdast.Of(mdast.NodeText)).Replace(mdast.NewBlockQuote())
			},
			wantErr: mdast.ErrNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mdast.WithChildren(mdast.NewFragment(),
				mdast.WithChildren(mdast.NewParagraph(), mdast.NewText("intro")),
				mdast.WithChildren(mdast.NewList(false),
					mdast.WithChildren(mdast.NewListItem(),
						mdast.WithChildren(mdast.NewParagraph(), mdast.NewText("item")),
					),
				),
			)
			before := doc.ToDict()

			err := tt.edit(doc)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if diff := cmp.Diff(before, doc.ToDict()); diff != "" {
				t.Errorf("tree changed after failed edit (-before +after):\n%s", diff)
			}
		})
	}
}

func TestStructureError(t *testing.T) {
	t.Parallel()

	err := mdast.NewList(false).Append(mdast.NewParagraph())

	var structErr *mdast.StructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected *StructureError, got %T", err)
	}
	if structErr.Parent != mdast.NodeList || structErr.Child != mdast.NodeParagraph {
		t.Errorf("unexpected error fields %+v", structErr)
	}
	if structErr.Error() != "List cannot contain Paragraph" {
		t.Errorf("unexpected message %q", structErr.Error())
	}
}

func TestAppend_MovesFromPreviousParent(t *testing.T) {
	t.Parallel()

	text := mdast.NewText("moving")
	from := mdast.WithChildren(mdast.NewParagraph(), text)
	to := mdast.NewParagraph()

	if err := to.Append(text); err != nil {
		t.Fatal(err)
	}
	if from.HasChildren() {
		t.Error("text should be removed from its old parent")
	}
	if text.Parent() != to {
		t.Error("text should belong to the new parent")
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	header := doc.FirstChild()

	a := mdast.WithChildren(mdast.NewParagraph(), mdast.NewText("a"))
	b := mdast.NewThematicBreak()
	if err := header.Replace(a, b); err != nil {
		t.Fatal(err)
	}

	want := []mdast.NodeKind{mdast.NodeParagraph, mdast.NodeThematicBreak, mdast.NodeParagraph}
	if diff := cmp.Diff(want, kinds(doc.Children())); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if header.Parent() != nil || header.Next() != nil {
		t.Error("replaced node should be detached")
	}

	// Replacing with nothing removes the node.
	if err := b.Replace(); err != nil {
		t.Fatal(err)
	}
	if doc.ChildCount() != 2 {
		t.Errorf("expected 2 children, got %d", doc.ChildCount())
	}
}

func TestReplace_WithOwnSibling(t *testing.T) {
	t.Parallel()

	x, y, z := mdast.NewText("x"), mdast.NewText("y"), mdast.NewText("z")
	para := mdast.WithChildren(mdast.NewParagraph(), x, y, z)

	if err := y.Replace(x); err != nil {
		t.Fatal(err)
	}

	children := para.Children()
	if len(children) != 2 || children[0] != x || children[1] != z {
		t.Errorf("expected [x z], got %d children", len(children))
	}
	if y.Parent() != nil {
		t.Error("replaced node should be detached")
	}
}

func TestUnlinkAndDelete(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	header := doc.FirstChild()

	if got := header.Unlink(); got != header {
		t.Error("Unlink should return the node")
	}
	if header.Parent() != nil || header.Prev() != nil || header.Next() != nil {
		t.Error("unlinked node should have no links")
	}
	if doc.FirstChild().Kind != mdast.NodeParagraph || doc.ChildCount() != 1 {
		t.Error("parent should no longer hold the node")
	}
	if header.ChildCount() != 1 {
		t.Error("unlinked subtree should stay intact")
	}

	// The detached node can be reinserted.
	if err := doc.Prepend(header); err != nil {
		t.Fatal(err)
	}

	para := doc.LastChild()
	text := para.FirstChild()
	para.Delete()
	if doc.ChildCount() != 1 || para.HasChildren() || text.Parent() != nil {
		t.Error("Delete should detach the node and release its children")
	}
}

func TestWithChildren_PanicsOnBadShape(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	mdast.WithChildren(mdast.NewList(false), mdast.NewText("nope"))
}
