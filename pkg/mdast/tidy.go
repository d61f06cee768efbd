package mdast

// Tidy normalizes the subtree rooted at n in place:
//
//   - Fragments below n are replaced by their children.
//   - Text, InlineCode and HTMLInline nodes with empty content are removed.
//   - Adjacent Text nodes are merged into the first one.
//   - Paragraph, Strong, Emphasis, Strike and List nodes without children
//     are removed.
//   - Adjacent Strike siblings are merged into the first one, and a Strike
//     that is the only child of a Strike is replaced by its children.
//   - Fenced code blocks get the fence they render with, see
//     CodeBlockAttrs.Fence.
//   - In a root Fragment that holds blocks, each run of inline children is
//     wrapped in a Paragraph. A root Fragment holding only inline nodes is
//     an inline snippet and is left as it is.
//
// Headers, block quotes, list items, links and images are kept even when
// empty because they still render to something. Tidy is idempotent.
func (n *Node) Tidy() {
	if n.Kind == NodeCodeBlock && n.Block != nil && n.Block.CodeBlock != nil && !n.Block.CodeBlock.Indented {
		code := n.Block.CodeBlock
		code.FenceChar, code.FenceLength = code.Fence()
	}

	for child := n.firstChild; child != nil; {
		next := child.next
		child.Tidy()
		child = next
	}

	for child := n.firstChild; child != nil; {
		next := child.next
		if child.Kind == NodeFragment {
			child.spliceOut()
		}
		child = next
	}

	for child := n.firstChild; child != nil; {
		next := child.next
		switch {
		case droppable(child):
			child.unlink()
		case child.Kind == NodeText && child.prev != nil && child.prev.Kind == NodeText:
			prev := child.prev
			prev.ensureAttrs()
			prev.Inline.Text += child.Content()
			if prev.Line == 0 {
				prev.Line = child.Line
			}
			child.unlink()
		case child.Kind == NodeStrike && child.prev != nil && child.prev.Kind == NodeStrike:
			prev := child.prev
			moved := child.Children()
			child.unlink()
			prev.insertAfter(prev.lastChild, moved)
			prev.Tidy()
		}
		child = next
	}

	if n.Kind == NodeFragment && n.parent == nil {
		n.wrapInlineRuns()
	}

	// Runs after the drop pass so that emptied siblings no longer hide the
	// single nested Strike.
	if n.Kind == NodeStrike {
		if only := n.firstChild; only != nil && only == n.lastChild && only.Kind == NodeStrike {
			only.spliceOut()
		}
	}
}

// spliceOut moves n's children into n's place and detaches n.
func (n *Node) spliceOut() {
	parent := n.parent
	anchor := n.prev
	children := n.Children()
	n.unlink()
	parent.insertAfter(anchor, children)
}

// wrapInlineRuns moves each run of inline children into a new Paragraph,
// unless every child is inline.
func (n *Node) wrapInlineRuns() {
	hasBlock := false
	for child := n.firstChild; child != nil && !hasBlock; child = child.next {
		hasBlock = !child.Kind.IsInline()
	}
	if !hasBlock {
		return
	}

	for child := n.firstChild; child != nil; {
		if !child.Kind.IsInline() {
			child = child.next
			continue
		}

		var run []*Node
		for c := child; c != nil && c.Kind.IsInline(); c = c.next {
			run = append(run, c)
		}
		anchor, next := child.prev, run[len(run)-1].next

		para := NewParagraph()
		para.Line = child.Line
		para.insertAfter(nil, run)
		n.insertAfter(anchor, []*Node{para})
		child = next
	}
}

func droppable(n *Node) bool {
	switch n.Kind {
	case NodeText, NodeInlineCode, NodeHTMLInline:
		return n.Content() == ""
	case NodeParagraph, NodeStrong, NodeEmphasis, NodeStrike, NodeList:
		return n.firstChild == nil
	default:
		return false
	}
}
