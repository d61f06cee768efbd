package mdast

import (
	"fmt"
	"slices"
)

// Append adds nodes to the end of n's children, in order. Nodes that are
// attached elsewhere are moved. Nothing changes if any node is rejected.
func (n *Node) Append(nodes ...*Node) error {
	if err := n.checkInsert(nodes, nil); err != nil {
		return err
	}
	n.insertAfter(anchorBefore(n.lastChild, nodes), nodes)
	return nil
}

// Extend is Append for a slice.
func (n *Node) Extend(nodes []*Node) error {
	return n.Append(nodes...)
}

// Prepend adds nodes to the start of n's children, in order.
func (n *Node) Prepend(nodes ...*Node) error {
	if err := n.checkInsert(nodes, nil); err != nil {
		return err
	}
	n.insertAfter(nil, nodes)
	return nil
}

// AppendSibling inserts nodes directly after n, in order. It fails with
// ErrDetached when n has no parent.
func (n *Node) AppendSibling(nodes ...*Node) error {
	if n.parent == nil {
		return fmt.Errorf("append sibling to %s: %w", n.Kind, ErrDetached)
	}
	if err := n.parent.checkInsert(nodes, n); err != nil {
		return err
	}
	n.parent.insertAfter(n, nodes)
	return nil
}

// PrependSibling inserts nodes directly before n, in order. It fails with
// ErrDetached when n has no parent.
func (n *Node) PrependSibling(nodes ...*Node) error {
	if n.parent == nil {
		return fmt.Errorf("prepend sibling to %s: %w", n.Kind, ErrDetached)
	}
	if err := n.parent.checkInsert(nodes, n); err != nil {
		return err
	}
	n.parent.insertAfter(anchorBefore(n.prev, nodes), nodes)
	return nil
}

// Replace puts nodes in n's place and detaches n. Passing no nodes removes
// n. It fails with ErrDetached when n has no parent.
func (n *Node) Replace(nodes ...*Node) error {
	parent := n.parent
	if parent == nil {
		return fmt.Errorf("replace %s: %w", n.Kind, ErrDetached)
	}
	if len(nodes) == 1 && nodes[0] == n {
		return nil
	}
	if err := parent.checkInsert(nodes, n); err != nil {
		return err
	}

	anchor := anchorBefore(n.prev, nodes)
	n.unlink()
	parent.insertAfter(anchor, nodes)
	return nil
}

// Unlink detaches n and its subtree from the parent and returns n, which is
// then a root of its own. Unlinking a root does nothing.
func (n *Node) Unlink() *Node {
	n.unlink()
	return n
}

// Remove is an alias for Unlink.
func (n *Node) Remove() *Node {
	return n.Unlink()
}

// Delete detaches n and releases its children. n must not be used after.
func (n *Node) Delete() {
	n.unlink()
	for child := n.firstChild; child != nil; {
		next := child.next
		child.parent, child.prev, child.next = nil, nil, nil
		child = next
	}
	n.firstChild, n.lastChild = nil, nil
}

// checkInsert validates inserting nodes as children of n. self is the node
// the insertion is relative to, which may not be part of nodes.
func (n *Node) checkInsert(nodes []*Node, self *Node) error {
	seen := make(map[*Node]struct{}, len(nodes))
	for _, child := range nodes {
		if child == nil {
			return ErrNilNode
		}
		if _, dup := seen[child]; dup {
			return fmt.Errorf("insert %s: %w", child.Kind, ErrDuplicate)
		}
		seen[child] = struct{}{}

		if child == self {
			return fmt.Errorf("insert %s next to itself: %w", child.Kind, ErrDuplicate)
		}
		if child == n || n.HasAncestor(child) {
			return fmt.Errorf("insert %s into %s: %w", child.Kind, n.Kind, ErrCycle)
		}
		if !child.Kind.Valid() {
			return fmt.Errorf("insert into %s: %w", n.Kind, ErrUnknownKind)
		}
		if err := checkPlacement(n, child); err != nil {
			return err
		}
	}
	return nil
}

// insertAfter detaches each node and links them, in order, after anchor.
func (n *Node) insertAfter(anchor *Node, nodes []*Node) {
	for _, child := range nodes {
		child.unlink()
	}
	for _, child := range nodes {
		child.linkAfter(n, anchor)
		anchor = child
	}
}

// anchorBefore walks back from start past any node that is about to be
// moved, so the anchor stays put while nodes are detached. A nil result
// means the head of the child list.
func anchorBefore(start *Node, nodes []*Node) *Node {
	anchor := start
	for anchor != nil && slices.Contains(nodes, anchor) {
		anchor = anchor.prev
	}
	return anchor
}
