// Package mdast provides an editable Markdown AST.
//
// A tree is made of *Node values linked to their parent and siblings. Every
// node has a NodeKind, and the kind of a parent fixes which kinds it may
// contain: a List holds only ListItems, a Paragraph holds only inline nodes,
// and so on. All insertion methods enforce these rules and leave the tree
// untouched when they fail.
//
// Trees come from a parser (see package parser) or are built directly:
//
//	doc := mdast.WithChildren(mdast.NewFragment(),
//		mdast.WithChildren(mdast.NewHeader(1), mdast.NewText("Hello")),
//	)
//
// A tree is not safe for concurrent use.
package mdast

import "iter"

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is. It must not change while
	// the node is attached to a parent.
	Kind NodeKind

	// Line is the 1-based source line the node starts on, or 0 when unknown.
	// Line numbers are advisory and are not updated by edits.
	Line int

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs

	parent     *Node
	firstChild *Node
	lastChild  *Node
	prev       *Node
	next       *Node
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	return n.Kind.IsBlock()
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	return n.Kind.IsInline()
}

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Root returns the top of the tree containing n.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// FirstChild returns the first direct child, or nil.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last direct child, or nil.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// Next returns the following sibling, or nil at the end.
func (n *Node) Next() *Node {
	return n.next
}

// Prev returns the preceding sibling, or nil at the start.
func (n *Node) Prev() *Node {
	return n.prev
}

// First returns the first node in n's sibling sequence. A root is its own
// only sibling.
func (n *Node) First() *Node {
	if n.parent == nil {
		return n
	}
	return n.parent.firstChild
}

// Last returns the last node in n's sibling sequence.
func (n *Node) Last() *Node {
	if n.parent == nil {
		return n
	}
	return n.parent.lastChild
}

// Index returns n's position among its siblings, or -1 for a root.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	idx := 0
	for sib := n.prev; sib != nil; sib = sib.prev {
		idx++
	}
	return idx
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.firstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.firstChild; child != nil; child = child.next {
		count++
	}
	return count
}

// Children returns a slice of all direct children. The slice is a snapshot
// and is not affected by later edits.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.firstChild; child != nil; child = child.next {
		children = append(children, child)
	}
	return children
}

// All iterates over the direct children as they are linked at each step.
// Removing the current child during iteration ends the sequence early.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for child := n.firstChild; child != nil; child = child.next {
			if !yield(child) {
				return
			}
		}
	}
}

// ContainedBy reports whether any ancestor of n has the given kind.
func (n *Node) ContainedBy(kind NodeKind) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p.Kind == kind {
			return true
		}
	}
	return false
}

// HasAncestor reports whether ancestor appears on n's parent chain.
func (n *Node) HasAncestor(ancestor *Node) bool {
	if ancestor == nil {
		return false
	}
	for p := n.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// IsAllowedChild reports whether a node of the given kind may be added to
// n's children. A Fragment defers to its nearest non-Fragment ancestor, and
// a Fragment without one accepts anything.
func (n *Node) IsAllowedChild(kind NodeKind) bool {
	if !kind.Valid() {
		return false
	}
	ctx := n.effective()
	if ctx == nil {
		return true
	}
	return allowedChild(ctx.Kind, kind)
}

// effective returns n, or for a Fragment the closest ancestor that is not a
// Fragment. It returns nil when there is none.
func (n *Node) effective() *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.Kind != NodeFragment {
			return cur
		}
	}
	return nil
}

func allowedChild(parent, child NodeKind) bool {
	switch parent {
	case NodeFragment:
		return true
	case NodeParagraph, NodeHeader, NodeStrong, NodeEmphasis, NodeStrike, NodeImage:
		return child.IsInline()
	case NodeLink:
		return child.IsInline() && child != NodeLink
	case NodeList:
		return child == NodeListItem || child == NodeFragment
	case NodeListItem, NodeBlockQuote:
		return child.IsBlock() && child != NodeListItem
	default:
		return false
	}
}

// checkPlacement validates child, and the contents of child if it is a
// Fragment, against the node that would end up as its effective parent.
func checkPlacement(parent, child *Node) error {
	ctx := parent.effective()
	if ctx == nil {
		return nil
	}
	return checkUnder(ctx, child)
}

func checkUnder(ctx, child *Node) error {
	if !allowedChild(ctx.Kind, child.Kind) {
		return &StructureError{Parent: ctx.Kind, Child: child.Kind}
	}
	if child.Kind != NodeFragment {
		return nil
	}
	for c := child.firstChild; c != nil; c = c.next {
		if err := checkUnder(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
