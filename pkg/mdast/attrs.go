package mdast

import (
	"fmt"
	"math"
	"strings"
)

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeader.
	HeadingLevel int

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// ListItem holds task state for NodeListItem.
	ListItem *ListItemAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs

	// ThematicChar is the character of a thematic break ('-', '*' or '_').
	ThematicChar byte

	// HTML is the raw content of a NodeHTMLBlock.
	HTML string
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// BulletMarker is the bullet character used ("-", "+", "*").
	BulletMarker string

	// StartNumber is the starting number for ordered lists.
	StartNumber int

	// Delimiter is the delimiter for ordered lists ("." or ")").
	Delimiter string

	// Tight is true if this is a tight list (no blank lines between items).
	Tight bool
}

// ListItemAttrs holds the GFM task state of a list item.
type ListItemAttrs struct {
	// Task is true when the item starts with a checkbox.
	Task bool

	// Checked is true for "[x]".
	Checked bool
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// FenceChar is the fence character ('`' or '~').
	FenceChar byte

	// FenceLength is the number of fence characters.
	FenceLength int

	// Info is the info string (language identifier, etc.).
	Info string

	// Indented is true for indented code blocks (vs fenced).
	Indented bool

	// Content is the literal code, including the final newline.
	Content string
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the content of NodeText, NodeInlineCode and NodeHTMLInline.
	Text string

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string

	// Title is the optional link title.
	Title string

	// ReferenceLabel is the label for reference-style links.
	// Empty for inline links and autolinks.
	ReferenceLabel string
}

// Header levels.
const (
	MinHeaderLevel = 1
	MaxHeaderLevel = 6
)

// Code fence defaults.
const (
	DefaultFenceChar   = '`'
	MinFenceLength     = 3
	DefaultBullet      = "-"
	DefaultDelimiter   = "."
	DefaultThematicHR  = '-'
	defaultStartNumber = 1
)

// AttrType is the value type of an attribute in a structural dump.
type AttrType uint8

// Attribute value types.
const (
	AttrString AttrType = iota
	AttrInt
	AttrBool
)

func (t AttrType) String() string {
	switch t {
	case AttrString:
		return "string"
	case AttrInt:
		return "int"
	case AttrBool:
		return "bool"
	default:
		return "unknown"
	}
}

// AttrSpec describes one attribute of a node kind.
type AttrSpec struct {
	Name string
	Type AttrType

	// ReadOnly attributes are derived from the tree and ignored on input.
	ReadOnly bool
}

var contentSpec = []AttrSpec{{Name: "content", Type: AttrString}}

var attrSpecs = map[NodeKind][]AttrSpec{
	NodeText:       contentSpec,
	NodeInlineCode: contentSpec,
	NodeHTMLInline: contentSpec,
	NodeHTMLBlock:  contentSpec,
	NodeHeader:     {{Name: "level", Type: AttrInt}},
	NodeList: {
		{Name: "ordered", Type: AttrBool},
		{Name: "tight", Type: AttrBool},
		{Name: "start", Type: AttrInt},
		{Name: "bullet", Type: AttrString},
		{Name: "delimiter", Type: AttrString},
	},
	NodeListItem: {
		{Name: "task", Type: AttrBool},
		{Name: "checked", Type: AttrBool},
	},
	NodeCodeBlock: {
		{Name: "content", Type: AttrString},
		{Name: "info", Type: AttrString},
		{Name: "fenced", Type: AttrBool},
		{Name: "fence_char", Type: AttrString},
		{Name: "fence_length", Type: AttrInt},
	},
	NodeThematicBreak: {{Name: "char", Type: AttrString}},
	NodeLink: {
		{Name: "url", Type: AttrString},
		{Name: "title", Type: AttrString},
		{Name: "reference", Type: AttrString},
		{Name: "is_autolink", Type: AttrBool, ReadOnly: true},
	},
	NodeImage: {
		{Name: "url", Type: AttrString},
		{Name: "title", Type: AttrString},
		{Name: "reference", Type: AttrString},
	},
}

// AttributeSpecs returns the attributes defined for kind, in dump order.
// Kinds without attributes return nil.
func AttributeSpecs(kind NodeKind) []AttrSpec {
	return attrSpecs[kind]
}

// newAttrs allocates the default attributes for kind.
func newAttrs(kind NodeKind) (*BlockAttrs, *InlineAttrs) {
	switch kind {
	case NodeHeader:
		return &BlockAttrs{HeadingLevel: MinHeaderLevel}, nil
	case NodeList:
		return &BlockAttrs{List: &ListAttrs{
			BulletMarker: DefaultBullet,
			StartNumber:  defaultStartNumber,
			Delimiter:    DefaultDelimiter,
			Tight:        true,
		}}, nil
	case NodeListItem:
		return &BlockAttrs{ListItem: &ListItemAttrs{}}, nil
	case NodeCodeBlock:
		return &BlockAttrs{CodeBlock: &CodeBlockAttrs{
			FenceChar:   DefaultFenceChar,
			FenceLength: MinFenceLength,
		}}, nil
	case NodeThematicBreak:
		return &BlockAttrs{ThematicChar: DefaultThematicHR}, nil
	case NodeHTMLBlock, NodeParagraph, NodeBlockQuote:
		return &BlockAttrs{}, nil
	case NodeLink, NodeImage:
		return nil, &InlineAttrs{Link: &LinkAttrs{}}
	case NodeText, NodeInlineCode, NodeHTMLInline, NodeStrong, NodeEmphasis,
		NodeStrike, NodeSoftBreak, NodeHardBreak:
		return nil, &InlineAttrs{}
	default:
		return nil, nil
	}
}

func (a *BlockAttrs) clone() *BlockAttrs {
	if a == nil {
		return nil
	}
	out := *a
	if a.List != nil {
		list := *a.List
		out.List = &list
	}
	if a.ListItem != nil {
		item := *a.ListItem
		out.ListItem = &item
	}
	if a.CodeBlock != nil {
		code := *a.CodeBlock
		out.CodeBlock = &code
	}
	return &out
}

func (a *InlineAttrs) clone() *InlineAttrs {
	if a == nil {
		return nil
	}
	out := *a
	if a.Link != nil {
		link := *a.Link
		out.Link = &link
	}
	return &out
}

// Attributes returns the node's attributes keyed by their dump names.
// Values are string, int or bool.
func (n *Node) Attributes() map[string]any {
	specs := attrSpecs[n.Kind]
	if len(specs) == 0 {
		return map[string]any{}
	}

	attrs := make(map[string]any, len(specs))
	for _, spec := range specs {
		attrs[spec.Name] = n.attr(spec.Name)
	}
	return attrs
}

// Attr returns a single attribute by dump name, and false when kind has no
// such attribute.
func (n *Node) Attr(name string) (any, bool) {
	for _, spec := range attrSpecs[n.Kind] {
		if spec.Name == name {
			return n.attr(name), true
		}
	}
	return nil, false
}

//nolint:cyclop // flat mapping from dump names to fields
func (n *Node) attr(name string) any {
	block, inline := n.Block, n.Inline
	if block == nil {
		block = &BlockAttrs{}
	}
	if inline == nil {
		inline = &InlineAttrs{}
	}

	switch n.Kind {
	case NodeHeader:
		return n.Level()
	case NodeHTMLBlock:
		return block.HTML
	case NodeThematicBreak:
		return string(n.ThematicChar())
	case NodeText, NodeInlineCode, NodeHTMLInline:
		return inline.Text
	case NodeList:
		list := n.ListAttrs()
		switch name {
		case "ordered":
			return list.Ordered
		case "tight":
			return list.Tight
		case "start":
			return list.StartNumber
		case "bullet":
			return list.BulletMarker
		case "delimiter":
			return list.Delimiter
		}
	case NodeListItem:
		item := block.ListItem
		if item == nil {
			item = &ListItemAttrs{}
		}
		if name == "task" {
			return item.Task
		}
		return item.Checked
	case NodeCodeBlock:
		code := n.CodeAttrs()
		switch name {
		case "content":
			return code.Content
		case "info":
			return code.Info
		case "fenced":
			return !code.Indented
		case "fence_char":
			return string(code.FenceChar)
		case "fence_length":
			return code.FenceLength
		}
	case NodeLink, NodeImage:
		link := n.LinkAttrs()
		switch name {
		case "url":
			return link.Destination
		case "title":
			return link.Title
		case "reference":
			return link.ReferenceLabel
		case "is_autolink":
			return n.IsAutolink()
		}
	default:
	}
	return nil
}

// SetAttributes updates attributes from a dump-style map. Integer values may
// arrive as any Go numeric type as long as they are whole numbers. Read-only
// keys are ignored. The node is left unchanged if any value is rejected.
func (n *Node) SetAttributes(attrs map[string]any) error {
	staged := &Node{Kind: n.Kind, Block: n.Block.clone(), Inline: n.Inline.clone()}
	staged.ensureAttrs()

	for name, raw := range attrs {
		spec, ok := lookupSpec(n.Kind, name)
		if !ok {
			return fmt.Errorf("%w: %s has no attribute %q", ErrBadAttribute, n.Kind, name)
		}
		if spec.ReadOnly {
			continue
		}
		value, err := coerce(spec, raw)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", n.Kind.Tag(), name, err)
		}
		if err := staged.setAttr(name, value); err != nil {
			return fmt.Errorf("%s.%s: %w", n.Kind.Tag(), name, err)
		}
	}

	n.Block, n.Inline = staged.Block, staged.Inline
	return nil
}

func lookupSpec(kind NodeKind, name string) (AttrSpec, bool) {
	for _, spec := range attrSpecs[kind] {
		if spec.Name == name {
			return spec, true
		}
	}
	return AttrSpec{}, false
}

func coerce(spec AttrSpec, raw any) (any, error) {
	switch spec.Type {
	case AttrString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case AttrBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case AttrInt:
		v, err := coerceInt(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w: want %s, got %T", ErrBadAttribute, spec.Type, raw)
}

func coerceInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil //nolint:gosec // attribute values are small
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		return int(v), nil //nolint:gosec // attribute values are small
	case float32:
		return coerceInt(float64(v))
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %v is not a whole number", ErrBadAttribute, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: want int, got %T", ErrBadAttribute, raw)
	}
}

//nolint:cyclop,gocognit // flat mapping from dump names to fields
func (n *Node) setAttr(name string, value any) error {
	switch n.Kind {
	case NodeHeader:
		n.Block.HeadingLevel = clampLevel(value.(int))
	case NodeHTMLBlock:
		n.Block.HTML = value.(string)
	case NodeThematicBreak:
		s := value.(string)
		if len(s) != 1 || !strings.ContainsAny(s, "-*_") {
			return fmt.Errorf("%w: thematic break char %q", ErrBadAttribute, s)
		}
		n.Block.ThematicChar = s[0]
	case NodeText, NodeInlineCode, NodeHTMLInline:
		n.Inline.Text = value.(string)
	case NodeList:
		list := n.Block.List
		switch name {
		case "ordered":
			list.Ordered = value.(bool)
		case "tight":
			list.Tight = value.(bool)
		case "start":
			if value.(int) < 0 {
				return fmt.Errorf("%w: negative start %d", ErrBadAttribute, value)
			}
			list.StartNumber = value.(int)
		case "bullet":
			s := value.(string)
			if s != "-" && s != "+" && s != "*" {
				return fmt.Errorf("%w: bullet %q", ErrBadAttribute, s)
			}
			list.BulletMarker = s
		case "delimiter":
			s := value.(string)
			if s != "." && s != ")" {
				return fmt.Errorf("%w: delimiter %q", ErrBadAttribute, s)
			}
			list.Delimiter = s
		}
	case NodeListItem:
		if name == "task" {
			n.Block.ListItem.Task = value.(bool)
		} else {
			n.Block.ListItem.Checked = value.(bool)
		}
	case NodeCodeBlock:
		code := n.Block.CodeBlock
		switch name {
		case "content":
			code.Content = value.(string)
		case "info":
			code.Info = value.(string)
		case "fenced":
			code.Indented = !value.(bool)
		case "fence_char":
			s := value.(string)
			if s != "`" && s != "~" {
				return fmt.Errorf("%w: fence char %q", ErrBadAttribute, s)
			}
			code.FenceChar = s[0]
		case "fence_length":
			code.FenceLength = max(value.(int), MinFenceLength)
		}
	case NodeLink, NodeImage:
		link := n.Inline.Link
		switch name {
		case "url":
			link.Destination = value.(string)
		case "title":
			link.Title = value.(string)
		case "reference":
			link.ReferenceLabel = value.(string)
		}
	default:
	}
	return nil
}

func clampLevel(level int) int {
	return min(max(level, MinHeaderLevel), MaxHeaderLevel)
}

// Level returns the header level, or 0 for other kinds.
func (n *Node) Level() int {
	if n.Kind != NodeHeader {
		return 0
	}
	if n.Block == nil {
		return MinHeaderLevel
	}
	return clampLevel(n.Block.HeadingLevel)
}

// Content returns the literal content of Text, InlineCode, HTMLInline,
// HTMLBlock and CodeBlock nodes, and "" for other kinds.
func (n *Node) Content() string {
	switch n.Kind {
	case NodeText, NodeInlineCode, NodeHTMLInline:
		if n.Inline != nil {
			return n.Inline.Text
		}
	case NodeHTMLBlock:
		if n.Block != nil {
			return n.Block.HTML
		}
	case NodeCodeBlock:
		return n.CodeAttrs().Content
	default:
	}
	return ""
}

// SetContent replaces the literal content of a leaf that carries one.
// It reports false for other kinds.
func (n *Node) SetContent(content string) bool {
	switch n.Kind {
	case NodeText, NodeInlineCode, NodeHTMLInline:
		n.ensureAttrs()
		n.Inline.Text = content
	case NodeHTMLBlock:
		n.ensureAttrs()
		n.Block.HTML = content
	case NodeCodeBlock:
		n.ensureAttrs()
		n.Block.CodeBlock.Content = content
	default:
		return false
	}
	return true
}

// ListAttrs returns the list attributes, or defaults for a list built
// without them. Other kinds get a zero value.
func (n *Node) ListAttrs() ListAttrs {
	if n.Kind == NodeList && n.Block != nil && n.Block.List != nil {
		return *n.Block.List
	}
	if n.Kind == NodeList {
		block, _ := newAttrs(NodeList)
		return *block.List
	}
	return ListAttrs{}
}

// CodeAttrs returns the code block attributes.
func (n *Node) CodeAttrs() CodeBlockAttrs {
	if n.Kind == NodeCodeBlock && n.Block != nil && n.Block.CodeBlock != nil {
		return *n.Block.CodeBlock
	}
	if n.Kind == NodeCodeBlock {
		block, _ := newAttrs(NodeCodeBlock)
		return *block.CodeBlock
	}
	return CodeBlockAttrs{}
}

// Fence returns the fence a fenced rendering of the block uses. A backtick
// in the info string forces '~', and the run is longer than any run of the
// fence character inside the content.
func (c CodeBlockAttrs) Fence() (byte, int) {
	char := c.FenceChar
	if char != '`' && char != '~' {
		char = DefaultFenceChar
	}
	if char == '`' && strings.ContainsRune(c.Info, '`') {
		char = '~'
	}

	longest, run := 0, 0
	for i := range len(c.Content) {
		if c.Content[i] != char {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return char, max(c.FenceLength, MinFenceLength, longest+1)
}

// LinkAttrs returns the link or image attributes.
func (n *Node) LinkAttrs() LinkAttrs {
	if n.Inline != nil && n.Inline.Link != nil {
		return *n.Inline.Link
	}
	return LinkAttrs{}
}

// Task reports whether a list item is a task, and whether it is checked.
func (n *Node) Task() (task, checked bool) {
	if n.Kind != NodeListItem || n.Block == nil || n.Block.ListItem == nil {
		return false, false
	}
	return n.Block.ListItem.Task, n.Block.ListItem.Checked
}

// ThematicChar returns the character of a thematic break.
func (n *Node) ThematicChar() byte {
	if n.Kind != NodeThematicBreak || n.Block == nil || n.Block.ThematicChar == 0 {
		return DefaultThematicHR
	}
	return n.Block.ThematicChar
}

// IsAutolink reports whether a link would be written as <url>: its only
// child is a Text equal to the destination (ignoring a mailto: prefix) and
// the destination is usable inside angle brackets.
func (n *Node) IsAutolink() bool {
	if n.Kind != NodeLink {
		return false
	}
	link := n.LinkAttrs()
	if link.ReferenceLabel != "" || link.Title != "" || !autolinkable(link.Destination) {
		return false
	}
	child := n.firstChild
	if child == nil || child != n.lastChild || child.Kind != NodeText {
		return false
	}
	text := child.Content()
	if text == link.Destination {
		return true
	}
	return strings.HasPrefix(link.Destination, "mailto:") &&
		"mailto:"+text == link.Destination && strings.Contains(text, "@")
}

// autolinkable reports whether dest is an absolute URI that survives being
// wrapped in angle brackets.
func autolinkable(dest string) bool {
	scheme, rest, ok := strings.Cut(dest, ":")
	if !ok || len(scheme) < 2 || len(scheme) > 32 || rest == "" {
		return false
	}
	for i, c := range scheme {
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isOther := (c >= '0' && c <= '9') || c == '+' || c == '.' || c == '-'
		if !isAlpha && (i == 0 || !isOther) {
			return false
		}
	}
	for _, c := range dest {
		if c <= ' ' || c == '<' || c == '>' || c == 0x7f {
			return false
		}
	}
	return true
}

func (n *Node) ensureAttrs() {
	block, inline := newAttrs(n.Kind)
	switch {
	case n.Block == nil:
		n.Block = block
	case block != nil:
		if n.Block.List == nil {
			n.Block.List = block.List
		}
		if n.Block.ListItem == nil {
			n.Block.ListItem = block.ListItem
		}
		if n.Block.CodeBlock == nil {
			n.Block.CodeBlock = block.CodeBlock
		}
	}
	switch {
	case n.Inline == nil:
		n.Inline = inline
	case inline != nil && n.Inline.Link == nil:
		n.Inline.Link = inline.Link
	}
}
