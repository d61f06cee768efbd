package mdast

import (
	"fmt"
	"maps"
	"reflect"
)

// Dict is the structural form of a node: its kind, attributes and children.
// It maps one-to-one onto JSON and YAML documents.
type Dict struct {
	Variant    string         `json:"variant"        yaml:"variant"`
	Attributes map[string]any `json:"attributes"     yaml:"attributes"`
	Children   []Dict         `json:"children"       yaml:"children"`
	Line       int            `json:"line,omitempty" yaml:"line,omitempty"`
}

// ToDict converts the subtree rooted at n to its structural form.
func (n *Node) ToDict() Dict {
	d := Dict{
		Variant:    n.Kind.Tag(),
		Attributes: n.Attributes(),
		Children:   make([]Dict, 0, n.ChildCount()),
		Line:       n.Line,
	}
	for child := n.firstChild; child != nil; child = child.next {
		d.Children = append(d.Children, child.ToDict())
	}
	return d
}

// FromDict builds a tree from its structural form. Read-only attributes are
// ignored and all nesting rules are enforced.
func FromDict(d Dict) (*Node, error) {
	kind, err := ParseKind(d.Variant)
	if err != nil {
		return nil, err
	}

	node, err := NewNodeWithAttributes(kind, d.Attributes)
	if err != nil {
		return nil, err
	}
	node.Line = max(d.Line, 0)

	for i, childDict := range d.Children {
		child, err := FromDict(childDict)
		if err != nil {
			return nil, fmt.Errorf("%s child %d: %w", kind.Tag(), i, err)
		}
		if err := node.Append(child); err != nil {
			return nil, fmt.Errorf("%s child %d: %w", kind.Tag(), i, err)
		}
	}
	return node, nil
}

// Equal reports whether two trees have the same kinds, attributes and
// children. Line numbers are ignored.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if !maps.EqualFunc(a.Attributes(), b.Attributes(), func(x, y any) bool {
		return reflect.DeepEqual(x, y)
	}) {
		return false
	}

	ca, cb := a.firstChild, b.firstChild
	for ca != nil && cb != nil {
		if !Equal(ca, cb) {
			return false
		}
		ca, cb = ca.next, cb.next
	}
	return ca == nil && cb == nil
}

// Clone returns a deep copy of the subtree rooted at n. The copy is a root.
func (n *Node) Clone() *Node {
	out := &Node{
		Kind:   n.Kind,
		Line:   n.Line,
		Block:  n.Block.clone(),
		Inline: n.Inline.clone(),
	}
	for child := n.firstChild; child != nil; child = child.next {
		child.Clone().linkAfter(out, out.lastChild)
	}
	return out
}
