package goldmark

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// entityRef matches a named or numeric character reference at the start of
// a slice.
var entityRef = regexp.MustCompile(`^&(?:#[xX][0-9a-fA-F]{1,6}|#[0-9]{1,7}|[a-zA-Z][a-zA-Z0-9]{0,31});`)

// emitter converts a goldmark AST into an mdast token stream.
//
// Goldmark does not record positions for every node (thematic breaks,
// empty fences, setext underlines), so the emitter keeps a cursor into the
// source. Everything before the cursor belongs to nodes already emitted.
type emitter struct {
	source []byte
	lines  *lineIndex
	tokens []mdast.Token
	cursor int

	// links counts enclosing links. Links never nest, so inner ones are
	// flattened to their content.
	links int
}

func newEmitter(source []byte) *emitter {
	return &emitter{
		source: source,
		lines:  newLineIndex(source),
	}
}

func (e *emitter) emitChildren(gmParent ast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		e.emit(child)
	}
}

//nolint:cyclop // one case per goldmark node type
func (e *emitter) emit(gmNode ast.Node) {
	switch node := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		e.container(node, mdast.NodeHeader, map[string]any{"level": node.Level})
		e.skipSetextUnderline(node)

	case *ast.Paragraph, *ast.TextBlock:
		e.container(gmNode, mdast.NodeParagraph, nil)

	case *ast.List:
		e.container(node, mdast.NodeList, listAttrs(node))

	case *ast.ListItem:
		e.container(node, mdast.NodeListItem, taskAttrs(node))

	case *ast.Blockquote:
		e.container(node, mdast.NodeBlockQuote, nil)

	case *ast.FencedCodeBlock:
		e.fencedCode(node)

	case *ast.CodeBlock:
		e.leaf(node, mdast.NodeCodeBlock, map[string]any{
			"content": e.linesValue(node.Lines()),
			"fenced":  false,
		})

	case *ast.ThematicBreak:
		e.thematicBreak()

	case *ast.HTMLBlock:
		e.htmlBlock(node)

	// Inline-level nodes.
	case *ast.Text:
		e.text(node)

	case *ast.String:
		e.push(mdast.Token{Kind: mdast.TokText, Content: string(node.Value)})

	case *ast.Emphasis:
		kind := mdast.NodeEmphasis
		if node.Level >= 2 {
			kind = mdast.NodeStrong
		}
		e.container(node, kind, nil)

	case *ast.CodeSpan:
		e.codeSpan(node)

	case *ast.Link:
		if e.links > 0 {
			e.emitChildren(node)
			return
		}
		e.links++
		e.container(node, mdast.NodeLink, linkAttrs(node.Destination, node.Title))
		e.links--

	case *ast.Image:
		e.container(node, mdast.NodeImage, linkAttrs(node.Destination, node.Title))

	case *ast.AutoLink:
		if e.links > 0 {
			e.push(mdast.Token{Kind: mdast.TokText, Content: string(node.Label(e.source))})
			return
		}
		e.push(mdast.Token{Kind: mdast.TokOpen, Node: mdast.NodeLink, Attrs: map[string]any{"url": autoLinkURL(node, e.source)}})
		e.push(mdast.Token{Kind: mdast.TokText, Content: string(node.Label(e.source))})
		e.push(mdast.Token{Kind: mdast.TokClose, Node: mdast.NodeLink})

	case *ast.RawHTML:
		e.rawHTML(node)

	// GFM extension nodes.
	case *east.Strikethrough:
		e.container(node, mdast.NodeStrike, nil)

	case *east.TaskCheckBox:
		// Carried as attributes of the enclosing list item.

	default:
		// Unsupported extension nodes keep their content.
		e.emitChildren(gmNode)
	}
}

func (e *emitter) push(tok mdast.Token) {
	e.tokens = append(e.tokens, tok)
}

// container emits an open token, the children and the matching close. A
// container without a position of its own takes the line of its first
// positioned descendant.
func (e *emitter) container(gmNode ast.Node, kind mdast.NodeKind, attrs map[string]any) {
	open := len(e.tokens)
	e.push(mdast.Token{Kind: mdast.TokOpen, Node: kind, Attrs: attrs, Line: e.blockLine(gmNode)})
	e.emitChildren(gmNode)
	e.push(mdast.Token{Kind: mdast.TokClose, Node: kind})

	if e.tokens[open].Line == 0 {
		for _, tok := range e.tokens[open+1:] {
			if tok.Line > 0 {
				e.tokens[open].Line = tok.Line
				break
			}
		}
	}
	e.consume(gmNode)
}

func (e *emitter) leaf(gmNode ast.Node, kind mdast.NodeKind, attrs map[string]any) {
	e.push(mdast.Token{Kind: mdast.TokLeaf, Node: kind, Attrs: attrs, Line: e.blockLine(gmNode)})
	e.consume(gmNode)
}

// blockLine returns the line of a block node's first source line, or 0.
func (e *emitter) blockLine(gmNode ast.Node) int {
	if gmNode.Type() != ast.TypeBlock || gmNode.Lines().Len() == 0 {
		return 0
	}
	return e.lines.lineAt(gmNode.Lines().At(0).Start)
}

// consume moves the cursor past a block node's source lines.
func (e *emitter) consume(gmNode ast.Node) {
	if gmNode.Type() != ast.TypeBlock || gmNode.Lines().Len() == 0 {
		return
	}
	lines := gmNode.Lines()
	e.advance(lines.At(lines.Len() - 1).Stop)
}

func (e *emitter) advance(offset int) {
	e.cursor = max(e.cursor, offset)
}

// nextLine returns the first line that starts at or after the cursor.
func (e *emitter) nextLine() int {
	line := e.lines.lineAt(e.cursor)
	if e.cursor > e.lines.start(line) {
		line++
	}
	return max(line, 1)
}

// skipSetextUnderline consumes the underline of a setext heading so it is
// not mistaken for a thematic break.
func (e *emitter) skipSetextUnderline(heading *ast.Heading) {
	lines := heading.Lines()
	if lines.Len() == 0 {
		return
	}
	first := lines.At(0).Start
	lineStart := e.lines.start(e.lines.lineAt(first))
	if bytes.IndexByte(e.source[lineStart:first], '#') >= 0 {
		return
	}
	last := e.lines.lineAt(lines.At(lines.Len() - 1).Start)
	e.advance(e.lines.end(last + 1))
}

func (e *emitter) linesValue(lines *text.Segments) string {
	var b strings.Builder
	for i := range lines.Len() {
		seg := lines.At(i)
		b.Write(seg.Value(e.source))
	}
	return b.String()
}

func (e *emitter) fencedCode(node *ast.FencedCodeBlock) {
	openLine := e.fenceLine(node)

	fenceChar, fenceLength := byte(mdast.DefaultFenceChar), mdast.MinFenceLength
	if c, n, ok := fenceOf(e.lines.text(openLine)); ok {
		fenceChar, fenceLength = c, n
	}

	info := ""
	if node.Info != nil {
		info = unescape(node.Info.Segment.Value(e.source))
	}

	e.push(mdast.Token{
		Kind: mdast.TokLeaf,
		Node: mdast.NodeCodeBlock,
		Attrs: map[string]any{
			"content":      e.linesValue(node.Lines()),
			"info":         info,
			"fenced":       true,
			"fence_char":   string(fenceChar),
			"fence_length": fenceLength,
		},
		Line: openLine,
	})

	last := openLine
	if lines := node.Lines(); lines.Len() > 0 {
		last = e.lines.lineAt(lines.At(lines.Len() - 1).Start)
	}
	e.advance(e.lines.end(last))

	if c, n, ok := fenceOf(e.lines.text(last + 1)); ok && c == fenceChar && n >= fenceLength {
		e.advance(e.lines.end(last + 1))
	}
}

// fenceLine finds the line holding the opening fence of node.
func (e *emitter) fenceLine(node *ast.FencedCodeBlock) int {
	if node.Info != nil {
		return e.lines.lineAt(node.Info.Segment.Start)
	}
	if node.Lines().Len() > 0 {
		return e.lines.lineAt(node.Lines().At(0).Start) - 1
	}
	for line := e.nextLine(); line <= e.lines.count(); line++ {
		if _, _, ok := fenceOf(e.lines.text(line)); ok {
			return line
		}
	}
	return 0
}

func (e *emitter) thematicBreak() {
	char, found := byte(mdast.DefaultThematicHR), 0
	for line := e.nextLine(); line <= e.lines.count(); line++ {
		if c, ok := thematicChar(e.lines.text(line)); ok {
			char, found = c, line
			e.advance(e.lines.end(line))
			break
		}
	}
	e.push(mdast.Token{
		Kind:  mdast.TokLeaf,
		Node:  mdast.NodeThematicBreak,
		Attrs: map[string]any{"char": string(char)},
		Line:  found,
	})
}

func (e *emitter) htmlBlock(node *ast.HTMLBlock) {
	content := e.linesValue(node.Lines())
	if node.HasClosure() {
		content += string(node.ClosureLine.Value(e.source))
		e.advance(node.ClosureLine.Stop)
	}
	e.leaf(node, mdast.NodeHTMLBlock, map[string]any{"content": content})
}

func (e *emitter) text(node *ast.Text) {
	value := node.Segment.Value(e.source)
	breaks := node.SoftLineBreak() || node.HardLineBreak()
	if breaks {
		value = bytes.TrimRight(value, " \t\r\n")
	}

	content := string(value)
	if !node.IsRaw() {
		content = unescape(value)
	}

	line := e.lines.lineAt(node.Segment.Start)
	e.push(mdast.Token{Kind: mdast.TokText, Content: content, Line: line})

	switch {
	case node.HardLineBreak():
		e.push(mdast.Token{Kind: mdast.TokLeaf, Node: mdast.NodeHardBreak, Line: line})
	case node.SoftLineBreak():
		e.push(mdast.Token{Kind: mdast.TokLeaf, Node: mdast.NodeSoftBreak, Line: line})
	}
}

// codeSpan joins the raw span content. Line endings inside a span become
// spaces.
func (e *emitter) codeSpan(node *ast.CodeSpan) {
	var b strings.Builder
	line := 0
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			if line == 0 {
				line = e.lines.lineAt(t.Segment.Start)
			}
			value := t.Segment.Value(e.source)
			if trimmed := bytes.TrimRight(value, "\r\n"); len(trimmed) < len(value) {
				b.Write(trimmed)
				b.WriteByte(' ')
				continue
			}
			b.Write(value)
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
	}
	e.push(mdast.Token{
		Kind:  mdast.TokLeaf,
		Node:  mdast.NodeInlineCode,
		Attrs: map[string]any{"content": b.String()},
		Line:  line,
	})
}

func (e *emitter) rawHTML(node *ast.RawHTML) {
	var b strings.Builder
	line := 0
	for i := range node.Segments.Len() {
		seg := node.Segments.At(i)
		if i == 0 {
			line = e.lines.lineAt(seg.Start)
		}
		b.Write(seg.Value(e.source))
	}
	e.push(mdast.Token{
		Kind:  mdast.TokLeaf,
		Node:  mdast.NodeHTMLInline,
		Attrs: map[string]any{"content": b.String()},
		Line:  line,
	})
}

func listAttrs(list *ast.List) map[string]any {
	attrs := map[string]any{
		"ordered": list.IsOrdered(),
		"tight":   list.IsTight,
	}
	if list.IsOrdered() {
		attrs["start"] = list.Start
		attrs["delimiter"] = string(list.Marker)
	} else {
		attrs["bullet"] = string(list.Marker)
	}
	return attrs
}

// taskAttrs reports the checkbox that goldmark places as the first inline
// of an item's first paragraph.
func taskAttrs(item *ast.ListItem) map[string]any {
	first := item.FirstChild()
	if first == nil {
		return nil
	}
	if box, ok := first.FirstChild().(*east.TaskCheckBox); ok {
		return map[string]any{"task": true, "checked": box.IsChecked}
	}
	return nil
}

// autoLinkURL returns the destination of an autolink. Email autolinks get
// the mailto scheme that goldmark adds only when rendering HTML.
func autoLinkURL(node *ast.AutoLink, source []byte) string {
	url := string(node.URL(source))
	if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		return "mailto:" + url
	}
	return url
}

func linkAttrs(destination, title []byte) map[string]any {
	return map[string]any{
		"url":   unescape(destination),
		"title": unescape(title),
	}
}

// unescape resolves backslash escapes and character references in one pass,
// so an escaped ampersand never starts a reference.
func unescape(value []byte) string {
	if bytes.IndexAny(value, `\&`) < 0 {
		return string(value)
	}

	var b bytes.Buffer
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '\\' && i+1 < len(value) && util.IsPunct(value[i+1]):
			b.WriteByte(value[i+1])
			i++
		case c == '&':
			ref := entityRef.Find(value[i:])
			if ref == nil {
				b.WriteByte(c)
				continue
			}
			b.Write(util.ResolveNumericReferences(util.ResolveEntityNames(ref)))
			i += len(ref) - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// fenceOf reports the fence run that opens or closes a code block on line,
// after any blockquote and list markers.
func fenceOf(line []byte) (byte, int, bool) {
	rest := line
	for {
		rest = bytes.TrimLeft(rest, " \t")
		if len(rest) == 0 {
			return 0, 0, false
		}
		if c := rest[0]; c == '`' || c == '~' {
			n := 0
			for n < len(rest) && rest[n] == c {
				n++
			}
			if n < mdast.MinFenceLength {
				return 0, 0, false
			}
			return c, n, true
		}
		skip := containerMarkerLen(rest)
		if skip == 0 {
			return 0, 0, false
		}
		rest = rest[skip:]
	}
}

// thematicChar reports the character of a thematic break on line, after any
// blockquote and list markers. "- - -" is a break, not a list.
func thematicChar(line []byte) (byte, bool) {
	rest := bytes.TrimRight(line, " \t\r")
	for {
		rest = bytes.TrimLeft(rest, " \t")
		if len(rest) == 0 {
			return 0, false
		}
		if c, ok := breakRun(rest); ok {
			return c, true
		}
		skip := containerMarkerLen(rest)
		if skip == 0 {
			return 0, false
		}
		rest = rest[skip:]
	}
}

func breakRun(s []byte) (byte, bool) {
	c := s[0]
	if c != '-' && c != '*' && c != '_' {
		return 0, false
	}
	count := 0
	for _, b := range s {
		switch b {
		case c:
			count++
		case ' ', '\t':
		default:
			return 0, false
		}
	}
	return c, count >= 3
}

// containerMarkerLen returns the length of a leading "> " or list marker,
// or 0.
func containerMarkerLen(s []byte) int {
	if s[0] == '>' {
		return 1
	}

	const maxOrderedDigits = 9
	i := 0
	for i < len(s) && i < maxOrderedDigits && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	switch {
	case i > 0:
		if i >= len(s) || (s[i] != '.' && s[i] != ')') {
			return 0
		}
		i++
	case s[0] == '-' || s[0] == '*' || s[0] == '+':
		i = 1
	default:
		return 0
	}

	if i == len(s) || s[i] == ' ' || s[i] == '\t' {
		return i
	}
	return 0
}
