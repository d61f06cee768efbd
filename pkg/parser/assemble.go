package parser

import (
	"fmt"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// Assemble builds a tree from a token stream. The result is always a root
// Fragment; top-level events become its children. Every node is inserted
// through the checked edit API, so a stream that breaks the nesting rules
// fails with a *mdast.StructureError.
func Assemble(tokens []mdast.Token) (*mdast.Node, error) {
	root := mdast.NewFragment()
	stack := []*mdast.Node{root}

	for i, tok := range tokens {
		top := stack[len(stack)-1]

		switch tok.Kind {
		case mdast.TokOpen:
			node, err := nodeFor(tok)
			if err != nil {
				return nil, fmt.Errorf("token %d: %w", i, err)
			}
			if err := top.Append(node); err != nil {
				return nil, fmt.Errorf("token %d (line %d): %w", i, tok.Line, err)
			}
			stack = append(stack, node)

		case mdast.TokClose:
			if len(stack) == 1 {
				return nil, fmt.Errorf("token %d: close %s without open: %w", i, tok.Node, ErrUnbalanced)
			}
			if tok.Node != mdast.NodeInvalid && tok.Node != top.Kind {
				return nil, fmt.Errorf("token %d: close %s inside %s: %w", i, tok.Node, top.Kind, ErrUnbalanced)
			}
			stack = stack[:len(stack)-1]

		case mdast.TokText:
			text := mdast.NewText(tok.Content)
			text.Line = tok.Line
			if err := top.Append(text); err != nil {
				return nil, fmt.Errorf("token %d (line %d): %w", i, tok.Line, err)
			}

		case mdast.TokLeaf:
			node, err := nodeFor(tok)
			if err != nil {
				return nil, fmt.Errorf("token %d: %w", i, err)
			}
			if err := top.Append(node); err != nil {
				return nil, fmt.Errorf("token %d (line %d): %w", i, tok.Line, err)
			}

		default:
			return nil, fmt.Errorf("token %d: %v: %w", i, tok.Kind, ErrUnbalanced)
		}
	}

	if len(stack) > 1 {
		return nil, fmt.Errorf("%d unclosed, innermost %s: %w", len(stack)-1, stack[len(stack)-1].Kind, ErrUnbalanced)
	}
	return root, nil
}

func nodeFor(tok mdast.Token) (*mdast.Node, error) {
	node, err := mdast.NewNodeWithAttributes(tok.Node, tok.Attrs)
	if err != nil {
		return nil, err
	}
	node.Line = tok.Line
	return node, nil
}
