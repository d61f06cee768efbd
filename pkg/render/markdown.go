package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// MarkdownRenderer writes a tree as CommonMark with the GFM strikethrough
// and task list extensions.
//
// Output is chosen so that parsing it gives back the same tree. Text is
// escaped wherever a parser would read it as markup, and list markers and
// thematic break characters are switched where the stored ones would merge
// or reinterpret neighbouring blocks.
type MarkdownRenderer struct{}

// NewMarkdown returns a Markdown renderer.
func NewMarkdown() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render implements Renderer.
func (r *MarkdownRenderer) Render(w io.Writer, root *mdast.Node) error {
	if err := checkRoot(FormatMarkdown, root); err != nil {
		return err
	}

	doc := (&mdWriter{seen: make(map[string]bool)}).document(root)
	if _, err := io.WriteString(w, doc); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// mdWriter renders one document. It collects reference definitions so they
// can be written after the body.
type mdWriter struct {
	defs []string
	seen map[string]bool
}

func (m *mdWriter) document(root *mdast.Node) string {
	var body string
	switch {
	case root.Kind == mdast.NodeFragment:
		body = m.blocks(children(root), seqOpts{})
	case root.IsInline():
		body = m.inlines([]*mdast.Node{root}, false)
	default:
		body, _ = m.block(root, blockCtx{})
	}

	parts := make([]string, 0, 2)
	if body != "" {
		parts = append(parts, body)
	}
	if len(m.defs) > 0 {
		parts = append(parts, strings.Join(m.defs, "\n"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// blockInfo records how a block was written, for choosing how its next
// sibling is written.
type blockInfo struct {
	kind     mdast.NodeKind
	node     *mdast.Node
	marker   string
	indented bool
}

// seqOpts configures a run of sibling blocks.
type seqOpts struct {
	// tight joins blocks without blank lines where that is safe.
	tight bool

	// itemMarker is the list marker in front of the first block.
	itemMarker string
}

// blockCtx is what a block needs to know about its surroundings.
type blockCtx struct {
	prev       blockInfo
	tight      bool
	first      bool
	itemMarker string
}

// blocks renders siblings. Inline siblings, which only occur below a
// detached fragment, are written as one paragraph.
func (m *mdWriter) blocks(nodes []*mdast.Node, opts seqOpts) string {
	var (
		b    strings.Builder
		prev blockInfo
	)

	for i := 0; i < len(nodes); i++ {
		n := nodes[i]

		var (
			out  string
			info blockInfo
		)
		if n.IsInline() {
			j := i + 1
			for j < len(nodes) && nodes[j].IsInline() {
				j++
			}
			out = m.inlines(nodes[i:j], false)
			info = blockInfo{kind: mdast.NodeParagraph}
			i = j - 1
		} else {
			out, info = m.block(n, blockCtx{
				prev:       prev,
				tight:      opts.tight,
				first:      b.Len() == 0,
				itemMarker: opts.itemMarker,
			})
		}
		if out == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteString(separator(prev, info, opts.tight))
		}
		b.WriteString(out)
		prev = info
	}

	return b.String()
}

// separator returns what goes between two rendered sibling blocks. Loose
// content always gets a blank line. Tight content gets one only where the
// next block would otherwise continue or merge with the previous one.
func separator(prev, next blockInfo, tight bool) string {
	if !tight {
		return "\n\n"
	}
	switch {
	case next.kind == mdast.NodeParagraph,
		next.kind == mdast.NodeHTMLBlock,
		prev.kind == mdast.NodeHTMLBlock,
		next.indented,
		prev.kind == mdast.NodeBlockQuote && next.kind == mdast.NodeBlockQuote,
		prev.kind == mdast.NodeParagraph && next.kind == mdast.NodeList && !interruptsParagraph(next.node):
		return "\n\n"
	default:
		return "\n"
	}
}

// interruptsParagraph reports whether list can start directly below a
// paragraph line.
func interruptsParagraph(list *mdast.Node) bool {
	if list == nil || list.Kind != mdast.NodeList {
		return true
	}
	attrs := list.ListAttrs()
	if attrs.Ordered && attrs.StartNumber != 1 {
		return false
	}
	first := list.FirstChild()
	return first != nil && first.HasChildren()
}

//nolint:cyclop // one case per block kind
func (m *mdWriter) block(n *mdast.Node, ctx blockCtx) (string, blockInfo) {
	info := blockInfo{kind: n.Kind, node: n}

	switch n.Kind {
	case mdast.NodeParagraph:
		return m.inlines(children(n), false), info

	case mdast.NodeHeader:
		prefix := strings.Repeat("#", n.Level())
		content := m.inlines(children(n), true)
		if content == "" {
			return prefix, info
		}
		return prefix + " " + content, info

	case mdast.NodeThematicBreak:
		return strings.Repeat(string(thematicChar(n, ctx)), 3), info

	case mdast.NodeCodeBlock:
		out, indented := codeBlock(n, ctx)
		info.indented = indented
		return out, info

	case mdast.NodeHTMLBlock:
		return strings.TrimRight(n.Content(), "\r\n"), info

	case mdast.NodeBlockQuote:
		return m.blockQuote(n), info

	case mdast.NodeList:
		out, marker := m.list(n, ctx.prev)
		info.marker = marker
		return out, info

	case mdast.NodeListItem:
		return m.item(n, mdast.DefaultBullet, true), info

	case mdast.NodeFragment:
		return m.blocks(children(n), seqOpts{tight: ctx.tight, itemMarker: ctx.itemMarker}), info

	default:
		return m.inlines([]*mdast.Node{n}, false), blockInfo{kind: mdast.NodeParagraph}
	}
}

// thematicChar picks the break character. A "-" break directly below a
// paragraph line would underline it as a heading, and a break repeating the
// marker of its list item would read as a break instead of an item.
func thematicChar(n *mdast.Node, ctx blockCtx) byte {
	char := n.ThematicChar()
	if char != '-' && char != '*' && char != '_' {
		char = mdast.DefaultThematicHR
	}
	if char == '-' && ctx.tight && ctx.prev.kind == mdast.NodeParagraph {
		char = '*'
	}
	if ctx.first && ctx.itemMarker == string(char) {
		if char == '-' {
			return '*'
		}
		return '-'
	}
	return char
}

// codeBlock renders a code block indented when it was indented and can be,
// and fenced otherwise.
func codeBlock(n *mdast.Node, ctx blockCtx) (string, bool) {
	attrs := n.CodeAttrs()
	content := attrs.Content

	startsItem := ctx.first && ctx.itemMarker != ""
	if attrs.Indented && attrs.Info == "" && canIndent(content) && !startsItem &&
		ctx.prev.kind != mdast.NodeList && !ctx.prev.indented {
		lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
		for i, line := range lines {
			if line != "" {
				lines[i] = "    " + line
			}
		}
		return strings.Join(lines, "\n"), true
	}

	char, length := attrs.Fence()
	fence := strings.Repeat(string(char), length)

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return fence + infoString(attrs.Info) + "\n" + content + fence, false
}

// canIndent reports whether content survives as an indented code block,
// which loses leading and trailing blank lines.
func canIndent(content string) bool {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return false
	}
	lines := strings.Split(content, "\n")
	return strings.TrimSpace(lines[0]) != "" && strings.TrimSpace(lines[len(lines)-1]) != ""
}

func (m *mdWriter) blockQuote(n *mdast.Node) string {
	inner := m.blocks(children(n), seqOpts{})
	if inner == "" {
		return ">"
	}
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

// list renders a list and returns the marker it used, which is switched
// when the previous sibling is a list with the same marker.
func (m *mdWriter) list(n *mdast.Node, prev blockInfo) (string, string) {
	attrs := n.ListAttrs()

	marker := attrs.BulletMarker
	if attrs.Ordered {
		marker = attrs.Delimiter
		if marker != "." && marker != ")" {
			marker = mdast.DefaultDelimiter
		}
	} else if marker != "-" && marker != "*" && marker != "+" {
		marker = mdast.DefaultBullet
	}
	if prev.kind == mdast.NodeList && prev.marker == marker {
		marker = alternateMarker(marker)
	}

	items := children(n)
	parts := make([]string, 0, len(items))
	number := max(attrs.StartNumber, 0)
	for _, item := range items {
		itemMarker := marker
		if attrs.Ordered {
			itemMarker = strconv.Itoa(number) + marker
			number++
		}
		parts = append(parts, m.item(item, itemMarker, attrs.Tight))
	}

	sep := "\n"
	if !attrs.Tight {
		sep = "\n\n"
	}
	return strings.Join(parts, sep), marker
}

func alternateMarker(marker string) string {
	switch marker {
	case "-":
		return "*"
	case ".":
		return ")"
	case ")":
		return "."
	default:
		return "-"
	}
}

// item renders a list item behind marker, indenting continuation lines to
// the item's content column.
func (m *mdWriter) item(n *mdast.Node, marker string, tight bool) string {
	blocks := children(n)
	body := m.blocks(blocks, seqOpts{tight: tight, itemMarker: marker})

	if task, checked := n.Task(); task && (len(blocks) == 0 || startsWithText(blocks[0])) {
		box := "[ ]"
		if checked {
			box = "[x]"
		}
		if body == "" {
			body = box
		} else {
			body = box + " " + body
		}
	}

	if body == "" {
		return marker
	}

	indent := strings.Repeat(" ", len(marker)+1)
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = marker + " " + line
		case line != "":
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

func startsWithText(n *mdast.Node) bool {
	return n.Kind == mdast.NodeParagraph || n.IsInline()
}

// children returns the children of n with nested fragments spliced in.
func children(n *mdast.Node) []*mdast.Node {
	var out []*mdast.Node
	for child := range n.All() {
		if child.Kind == mdast.NodeFragment {
			out = append(out, children(child)...)
			continue
		}
		out = append(out, child)
	}
	return out
}

// inlines renders a run of inline nodes as the content of one block.
func (m *mdWriter) inlines(nodes []*mdast.Node, header bool) string {
	w := &inlineWriter{m: m, header: header, fresh: true}
	w.seq(nodes, true)
	return w.b.String()
}

// addDefinition records the definition for a reference link or image. The
// first definition of a label wins.
func (m *mdWriter) addDefinition(attrs mdast.LinkAttrs) {
	key := normalizeLabel(attrs.ReferenceLabel)
	if m.seen[key] {
		return
	}
	m.seen[key] = true
	m.defs = append(m.defs, "["+label(attrs.ReferenceLabel)+"]: "+destination(attrs.Destination)+title(attrs.Title))
}
