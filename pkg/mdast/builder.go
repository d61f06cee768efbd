package mdast

import "fmt"

// NewNode creates a new node of the specified kind with default attributes.
// The node has no parent or children.
func NewNode(kind NodeKind) *Node {
	block, inline := newAttrs(kind)
	return &Node{
		Kind:   kind,
		Block:  block,
		Inline: inline,
	}
}

// NewNodeWithAttributes creates a node and applies dump-style attributes.
func NewNodeWithAttributes(kind NodeKind, attrs map[string]any) (*Node, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint16(kind))
	}
	node := NewNode(kind)
	if len(attrs) == 0 {
		return node, nil
	}
	if err := node.SetAttributes(attrs); err != nil {
		return nil, err
	}
	return node, nil
}

// NewFragment creates an empty fragment, the root of a document.
func NewFragment() *Node {
	return NewNode(NodeFragment)
}

// NewParagraph creates an empty paragraph.
func NewParagraph() *Node {
	return NewNode(NodeParagraph)
}

// NewHeader creates a header. The level is clamped to 1-6.
func NewHeader(level int) *Node {
	node := NewNode(NodeHeader)
	node.Block.HeadingLevel = clampLevel(level)
	return node
}

// NewList creates a tight list. Ordered lists start at 1.
func NewList(ordered bool) *Node {
	node := NewNode(NodeList)
	node.Block.List.Ordered = ordered
	return node
}

// NewListItem creates an empty list item.
func NewListItem() *Node {
	return NewNode(NodeListItem)
}

// NewTaskItem creates a GFM task list item.
func NewTaskItem(checked bool) *Node {
	node := NewNode(NodeListItem)
	node.Block.ListItem.Task = true
	node.Block.ListItem.Checked = checked
	return node
}

// NewBlockQuote creates an empty block quote.
func NewBlockQuote() *Node {
	return NewNode(NodeBlockQuote)
}

// NewCodeBlock creates a backtick-fenced code block.
func NewCodeBlock(info, content string) *Node {
	node := NewNode(NodeCodeBlock)
	node.Block.CodeBlock.Info = info
	node.Block.CodeBlock.Content = content
	return node
}

// NewThematicBreak creates a thematic break drawn with '-'.
func NewThematicBreak() *Node {
	return NewNode(NodeThematicBreak)
}

// NewHTMLBlock creates a raw HTML block.
func NewHTMLBlock(content string) *Node {
	node := NewNode(NodeHTMLBlock)
	node.Block.HTML = content
	return node
}

// NewText creates a text node.
func NewText(content string) *Node {
	node := NewNode(NodeText)
	node.Inline.Text = content
	return node
}

// NewStrong creates an empty strong emphasis span.
func NewStrong() *Node {
	return NewNode(NodeStrong)
}

// NewEmphasis creates an empty emphasis span.
func NewEmphasis() *Node {
	return NewNode(NodeEmphasis)
}

// NewStrike creates an empty strikethrough span.
func NewStrike() *Node {
	return NewNode(NodeStrike)
}

// NewInlineCode creates a code span.
func NewInlineCode(content string) *Node {
	node := NewNode(NodeInlineCode)
	node.Inline.Text = content
	return node
}

// NewHTMLInline creates a raw inline HTML node.
func NewHTMLInline(content string) *Node {
	node := NewNode(NodeHTMLInline)
	node.Inline.Text = content
	return node
}

// NewLink creates an empty link.
func NewLink(destination, title string) *Node {
	node := NewNode(NodeLink)
	node.Inline.Link.Destination = destination
	node.Inline.Link.Title = title
	return node
}

// NewAutolink creates a link whose text is its destination.
func NewAutolink(destination string) *Node {
	return WithChildren(NewLink(destination, ""), NewText(destination))
}

// NewImage creates an image. Its children form the alt text.
func NewImage(destination, title string) *Node {
	node := NewNode(NodeImage)
	node.Inline.Link.Destination = destination
	node.Inline.Link.Title = title
	return node
}

// NewSoftBreak creates a soft line break.
func NewSoftBreak() *Node {
	return NewNode(NodeSoftBreak)
}

// NewHardBreak creates a hard line break.
func NewHardBreak() *Node {
	return NewNode(NodeHardBreak)
}

// WithChildren appends children to parent and returns parent. It panics if
// the children are not allowed, so it is meant for literal trees whose
// shape is known to be valid.
func WithChildren(parent *Node, children ...*Node) *Node {
	if err := parent.Append(children...); err != nil {
		panic(fmt.Sprintf("mdast: WithChildren: %v", err))
	}
	return parent
}

// unlink removes n from its parent's child list. It is a no-op for roots.
func (n *Node) unlink() {
	parent := n.parent
	if parent == nil {
		return
	}

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		parent.firstChild = n.next
	}

	if n.next != nil {
		n.next.prev = n.prev
	} else {
		parent.lastChild = n.prev
	}

	n.parent = nil
	n.prev = nil
	n.next = nil
}

// linkAfter attaches the detached node n to parent right after anchor. A nil
// anchor inserts n as the first child.
func (n *Node) linkAfter(parent, anchor *Node) {
	n.parent = parent
	n.prev = anchor

	if anchor != nil {
		n.next = anchor.next
		anchor.next = n
	} else {
		n.next = parent.firstChild
		parent.firstChild = n
	}

	if n.next != nil {
		n.next.prev = n
	} else {
		parent.lastChild = n
	}
}
