package mdast

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// SkipChildren may be returned from a Walk or WalkWithContext enter callback
// to skip the children of the current node without stopping the walk.
var SkipChildren = errors.New("skip children") //nolint:revive,staticcheck // sentinel, not a failure

// Walk performs a pre-order traversal of the AST starting at root.
// The callback walkFunc is called for each node. If walkFunc returns a non-nil error,
// the walk stops immediately and returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	return WalkWithContext(root, WalkContextFunc(walkFunc), nil)
}

// WalkContextFunc is the function signature for WalkWithContext callbacks.
// The enter callback is called before visiting children.
// The leave callback is called after visiting children.
// Return a non-nil error from either to stop the walk.
type WalkContextFunc func(n *Node) error

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkContextFunc) error {
	if root == nil {
		return nil
	}

	// Enter the current node.
	if enter != nil {
		err := enter(root)
		switch {
		case errors.Is(err, SkipChildren):
			return leaveNode(root, leave)
		case err != nil:
			return err
		}
	}

	// Visit children. The next sibling is read before descending so the
	// callbacks may detach the current child.
	for child := root.firstChild; child != nil; {
		next := child.next
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
		child = next
	}

	return leaveNode(root, leave)
}

func leaveNode(n *Node, leave WalkContextFunc) error {
	if leave == nil {
		return nil
	}
	return leave(n)
}

// PlainText returns the concatenated Text and InlineCode content below n,
// with soft and hard breaks as newlines.
func PlainText(n *Node) string {
	var out []byte
	//nolint:errcheck // the callback never fails
	Walk(n, func(node *Node) error {
		switch node.Kind {
		case NodeText, NodeInlineCode:
			out = append(out, node.Content()...)
		case NodeSoftBreak, NodeHardBreak:
			out = append(out, '\n')
		default:
		}
		return nil
	})
	return string(out)
}
