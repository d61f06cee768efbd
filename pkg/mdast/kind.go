package mdast

import (
	"fmt"
	"strings"
)

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	// NodeInvalid is the zero value and never appears in a tree.
	NodeInvalid NodeKind = iota

	// NodeFragment is a container without markup of its own. It is the root of
	// every parsed document.
	NodeFragment

	// Block-level nodes.
	NodeParagraph
	NodeHeader
	NodeList
	NodeListItem
	NodeBlockQuote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock

	// Inline-level nodes.
	NodeText
	NodeStrong
	NodeEmphasis
	NodeStrike
	NodeInlineCode
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	nodeKindCount
)

var kindNames = [...]string{
	NodeInvalid:       "Invalid",
	NodeFragment:      "Fragment",
	NodeParagraph:     "Paragraph",
	NodeHeader:        "Header",
	NodeList:          "List",
	NodeListItem:      "ListItem",
	NodeBlockQuote:    "BlockQuote",
	NodeCodeBlock:     "CodeBlock",
	NodeThematicBreak: "ThematicBreak",
	NodeHTMLBlock:     "HTMLBlock",
	NodeText:          "Text",
	NodeStrong:        "Strong",
	NodeEmphasis:      "Emphasis",
	NodeStrike:        "Strike",
	NodeInlineCode:    "InlineCode",
	NodeLink:          "Link",
	NodeImage:         "Image",
	NodeSoftBreak:     "SoftBreak",
	NodeHardBreak:     "HardBreak",
	NodeHTMLInline:    "HTMLInline",
}

// String returns the CamelCase name of the kind, e.g. "ListItem".
func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint16(k))
}

// Tag returns the lowercase name used in structural dumps and query paths,
// e.g. "listitem".
func (k NodeKind) Tag() string {
	return strings.ToLower(k.String())
}

// Valid reports whether k is one of the defined node kinds.
func (k NodeKind) Valid() bool {
	return k > NodeInvalid && k < nodeKindCount
}

// IsBlock reports whether k is a block-level kind. Fragment counts as both
// block and inline since it can stand in for either.
func (k NodeKind) IsBlock() bool {
	switch k {
	case NodeFragment, NodeParagraph, NodeHeader, NodeList, NodeListItem,
		NodeBlockQuote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock:
		return true
	default:
		return false
	}
}

// IsInline reports whether k is an inline-level kind.
func (k NodeKind) IsInline() bool {
	switch k {
	case NodeFragment, NodeText, NodeStrong, NodeEmphasis, NodeStrike,
		NodeInlineCode, NodeLink, NodeImage, NodeSoftBreak, NodeHardBreak,
		NodeHTMLInline:
		return true
	default:
		return false
	}
}

// IsLeaf reports whether nodes of kind k can never have children.
func (k NodeKind) IsLeaf() bool {
	switch k {
	case NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock, NodeText,
		NodeInlineCode, NodeSoftBreak, NodeHardBreak, NodeHTMLInline:
		return true
	default:
		return false
	}
}

// Kinds returns every valid node kind in declaration order.
func Kinds() []NodeKind {
	kinds := make([]NodeKind, 0, nodeKindCount-1)
	for k := NodeFragment; k < nodeKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind resolves a kind by name. Matching ignores case, so "ListItem",
// "listitem" and "LISTITEM" are equivalent.
func ParseKind(name string) (NodeKind, error) {
	for k := NodeFragment; k < nodeKindCount; k++ {
		if strings.EqualFold(kindNames[k], name) {
			return k, nil
		}
	}
	return NodeInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint16(k))
	}
	return []byte(k.Tag()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
