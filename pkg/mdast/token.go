package mdast

import "fmt"

// TokenKind classifies an event in a token stream.
type TokenKind uint8

// Token kinds. A stream is a flat sequence of open/close pairs with text and
// leaf events between them.
const (
	// TokOpen starts a container node; everything up to the matching
	// TokClose becomes its children.
	TokOpen TokenKind = iota

	// TokClose ends the innermost open container.
	TokClose

	// TokText is a run of plain text.
	TokText

	// TokLeaf is a childless node such as a code block or a soft break.
	TokLeaf
)

func (k TokenKind) String() string {
	switch k {
	case TokOpen:
		return "Open"
	case TokClose:
		return "Close"
	case TokText:
		return "Text"
	case TokLeaf:
		return "Leaf"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

// Token is one event of a token stream produced by a tokenizer backend.
type Token struct {
	// Kind classifies the event.
	Kind TokenKind

	// Node is the kind of node opened, closed or emitted as a leaf.
	// It is ignored for TokText.
	Node NodeKind

	// Attrs holds dump-style attributes for TokOpen and TokLeaf.
	Attrs map[string]any

	// Content is the text of a TokText event.
	Content string

	// Line is the 1-based source line of the event, or 0 when unknown.
	Line int
}

// String returns a compact description used in test failures and logs.
func (t Token) String() string {
	switch t.Kind {
	case TokText:
		return fmt.Sprintf("text(%q)@%d", t.Content, t.Line)
	case TokClose:
		return fmt.Sprintf("close(%s)", t.Node.Tag())
	default:
		return fmt.Sprintf("%s(%s)@%d", t.Kind, t.Node.Tag(), t.Line)
	}
}

// ValidateTokens checks that opens and closes in tokens pair up with
// matching kinds and that every node kind is defined. It does not check
// nesting rules.
func ValidateTokens(tokens []Token) error {
	var open []NodeKind
	for i, tok := range tokens {
		switch tok.Kind {
		case TokOpen:
			if !tok.Node.Valid() {
				return fmt.Errorf("token %d: %w", i, ErrUnknownKind)
			}
			open = append(open, tok.Node)
		case TokClose:
			if len(open) == 0 {
				return fmt.Errorf("token %d: close without open: %w", i, ErrUnbalanced)
			}
			top := open[len(open)-1]
			if tok.Node != NodeInvalid && tok.Node != top {
				return fmt.Errorf("token %d: close %s inside %s: %w", i, tok.Node, top, ErrUnbalanced)
			}
			open = open[:len(open)-1]
		case TokLeaf:
			if !tok.Node.Valid() {
				return fmt.Errorf("token %d: %w", i, ErrUnknownKind)
			}
		case TokText:
		default:
			return fmt.Errorf("token %d: %v: %w", i, tok.Kind, ErrUnbalanced)
		}
	}
	if len(open) > 0 {
		return fmt.Errorf("%d unclosed %s: %w", len(open), open[len(open)-1], ErrUnbalanced)
	}
	return nil
}

// Stream flattens the subtree rooted at n, n included, into a token stream.
// Text nodes become TokText events and childless leaf kinds become TokLeaf.
func Stream(n *Node) []Token {
	var tokens []Token
	//nolint:errcheck // callbacks never fail
	WalkWithContext(n,
		func(node *Node) error {
			switch {
			case node.Kind == NodeText:
				tokens = append(tokens, Token{Kind: TokText, Content: node.Content(), Line: node.Line})
			case node.Kind.IsLeaf():
				tokens = append(tokens, Token{Kind: TokLeaf, Node: node.Kind, Attrs: node.writableAttributes(), Line: node.Line})
			default:
				tokens = append(tokens, Token{Kind: TokOpen, Node: node.Kind, Attrs: node.writableAttributes(), Line: node.Line})
			}
			return nil
		},
		func(node *Node) error {
			if !node.Kind.IsLeaf() {
				tokens = append(tokens, Token{Kind: TokClose, Node: node.Kind})
			}
			return nil
		},
	)
	return tokens
}

// writableAttributes is Attributes without read-only entries, or nil when
// the kind has none.
func (n *Node) writableAttributes() map[string]any {
	attrs := n.Attributes()
	for _, spec := range attrSpecs[n.Kind] {
		if spec.ReadOnly {
			delete(attrs, spec.Name)
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
