package mdast

// FixMissingLocations assigns a line to every node in the subtree rooted at n
// that has none. Such a node takes the line of the closest node before it in
// document order, so built trees read as non-decreasing line numbers. The
// walk starts from the line of n or its nearest ancestor that has one, or
// line 1.
func (n *Node) FixMissingLocations() {
	last := 1
	for cur := n; cur != nil; cur = cur.parent {
		if cur.Line > 0 {
			last = cur.Line
			break
		}
	}

	//nolint:errcheck // the callback never fails
	Walk(n, func(node *Node) error {
		if node.Line <= 0 {
			node.Line = last
		} else {
			last = node.Line
		}
		return nil
	})
}
