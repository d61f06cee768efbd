package render

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// inlineWriter renders inline content. Breaks are held back until more
// content follows, so a block never starts or ends with one and never
// holds an empty line.
type inlineWriter struct {
	m      *mdWriter
	header bool
	b      bytes.Buffer

	// pending is the break waiting to be written.
	pending string

	// fresh is true while nothing has been written on the current line.
	fresh bool

	// shieldNext is set after a closing delimiter that needs whitespace or
	// punctuation after it. The next text then starts with a character
	// reference.
	shieldNext bool
}

// write appends non-empty output, flushing a pending break first.
func (w *inlineWriter) write(s string) {
	if s == "" {
		return
	}
	w.flush()
	w.b.WriteString(s)
	w.fresh = false
	w.shieldNext = false
}

func (w *inlineWriter) flush() {
	if w.pending == "" {
		return
	}
	w.b.WriteString(w.pending)
	w.pending = ""
	w.fresh = !w.header
	w.shieldNext = false
}

func (w *inlineWriter) lineBreak(hard bool) {
	if w.b.Len() == 0 || w.pending != "" {
		return
	}
	switch {
	case w.header:
		w.pending = " "
	case hard:
		w.pending = "\\\n"
	default:
		w.pending = "\n"
	}
}

// seq renders siblings. atEdge is true when the sequence ends its line, so
// trailing whitespace of its last text needs protecting.
//
//nolint:cyclop // one case per inline kind
func (w *inlineWriter) seq(nodes []*mdast.Node, atEdge bool) {
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]

		switch n.Kind {
		case mdast.NodeText:
			var text strings.Builder
			j := i
			for ; j < len(nodes) && nodes[j].Kind == mdast.NodeText; j++ {
				text.WriteString(nodes[j].Content())
			}
			i = j - 1

			var next *mdast.Node
			if j < len(nodes) {
				next = nodes[j]
			}
			w.text(text.String(), next, atEdge)

		case mdast.NodeSoftBreak:
			w.lineBreak(false)

		case mdast.NodeHardBreak:
			w.lineBreak(true)

		case mdast.NodeStrong, mdast.NodeEmphasis:
			w.span(n, w.child(n))

		case mdast.NodeStrike:
			// GFM has no way to separate two strikes, so a run of them is
			// written as one.
			var kids []*mdast.Node
			j := i
			for ; j < len(nodes) && (nodes[j].Kind == mdast.NodeStrike || isEmptyText(nodes[j])); j++ {
				kids = append(kids, children(nodes[j])...)
			}
			i = j - 1
			w.span(n, w.inner(kids))

		case mdast.NodeInlineCode:
			w.write(codeSpan(n.Content()))

		case mdast.NodeHTMLInline:
			w.write(n.Content())

		case mdast.NodeLink:
			w.write(w.link(n))

		case mdast.NodeImage:
			w.write(w.image(n))

		case mdast.NodeFragment:
			w.seq(children(n), atEdge && i == len(nodes)-1)

		default:
		}
	}
}

func (w *inlineWriter) text(s string, next *mdast.Node, atEdge bool) {
	if s == "" {
		return
	}
	w.flush()
	shield := w.shieldNext

	breakNext := next != nil && (next.Kind == mdast.NodeSoftBreak || next.Kind == mdast.NodeHardBreak)
	pos := textPos{
		lineStart:  w.fresh,
		lineEnd:    (next == nil && atEdge) || (breakNext && !w.header),
		headerEnd:  w.header && next == nil && atEdge,
		beforeLink: next != nil && next.Kind == mdast.NodeLink,
	}
	if r, size := utf8.DecodeRuneInString(s); shield && !util.IsSpaceRune(r) && !util.IsPunctRune(r) {
		w.write(charRef(r))
		s = s[size:]
		pos.lineStart = false
	}
	w.write(escapeText(s, pos))
}

// child renders the content of an inline container. The container's own
// delimiter precedes it, so it never starts a line.
func (w *inlineWriter) child(n *mdast.Node) string {
	return w.inner(children(n))
}

func (w *inlineWriter) inner(nodes []*mdast.Node) string {
	sub := &inlineWriter{m: w.m, header: w.header}
	sub.seq(nodes, false)
	return sub.b.String()
}

// span writes an emphasis, strong or strike node around its rendered
// content. The delimiters must stay left- and right-flanking, so whitespace
// at the edges of the content becomes character references, and so does a
// neighbouring character that would keep a delimiter from opening or
// closing.
func (w *inlineWriter) span(n *mdast.Node, inner string) {
	if inner == "" {
		return
	}
	delim := delimiter(n)
	if delim == "" {
		w.write(inner)
		return
	}

	w.flush()
	delim = w.alternate(delim)
	inner = refEdges(inner)

	first, _ := utf8.DecodeRuneInString(inner)
	last, _ := utf8.DecodeLastRuneInString(inner)
	strict := delim[0] == '_'

	prev := w.lastRune()
	switch {
	case (strict || util.IsPunctRune(first)) && !util.IsSpaceRune(prev) && !util.IsPunctRune(prev):
		w.shieldLast()
	case delim[0] == '~' && bytes.HasSuffix(w.b.Bytes(), []byte(`\~`)):
		// A strike run cannot follow a tilde, escaped or not.
		w.shieldLast()
	}

	w.write(delim + inner + delim)
	w.shieldNext = strict || util.IsPunctRune(last)
}

// alternate swaps '*' and '_' when the output already ends with the same
// character, so that adjacent spans do not fuse into one delimiter run.
func (w *inlineWriter) alternate(delim string) string {
	switch last := w.lastRune(); {
	case last == '*' && delim[0] == '*':
		return strings.Repeat("_", len(delim))
	case last == '_' && delim[0] == '_':
		return strings.Repeat("*", len(delim))
	}
	return delim
}

// lastRune returns the last character written, or a newline at the start.
func (w *inlineWriter) lastRune() rune {
	r, size := utf8.DecodeLastRune(w.b.Bytes())
	if size == 0 {
		return '\n'
	}
	return r
}

// shieldLast rewrites the last character written as a character reference,
// dropping the backslash that escaped it, if any.
func (w *inlineWriter) shieldLast() {
	buf := w.b.Bytes()
	r, size := utf8.DecodeLastRune(buf)
	cut := len(buf) - size
	if size == 1 && util.IsPunct(buf[cut]) && cut > 0 && buf[cut-1] == '\\' {
		cut--
	}
	w.b.Truncate(cut)
	w.b.WriteString(charRef(r))
}

// refEdges writes whitespace at either end of s as character references.
func refEdges(s string) string {
	start, end := 0, len(s)
	for start < end {
		r, size := utf8.DecodeRuneInString(s[start:])
		if !util.IsSpaceRune(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(s[:end])
		if !util.IsSpaceRune(r) {
			break
		}
		end -= size
	}
	if start == 0 && end == len(s) {
		return s
	}

	var b strings.Builder
	for _, r := range s[:start] {
		b.WriteString(charRef(r))
	}
	b.WriteString(s[start:end])
	for _, r := range s[end:] {
		b.WriteString(charRef(r))
	}
	return b.String()
}

func charRef(r rune) string {
	return "&#" + strconv.Itoa(int(r)) + ";"
}

func isEmptyText(n *mdast.Node) bool {
	return n.Kind == mdast.NodeText && n.Content() == ""
}

// delimiter picks emphasis markers that parse back to the same nesting.
// "***x***" reads as emphasis around strong, so strong around emphasis
// switches the inner one to underscores. Nested strikes collapse.
func delimiter(n *mdast.Node) string {
	parent := n.Parent()
	for parent != nil && parent.Kind == mdast.NodeFragment {
		parent = parent.Parent()
	}
	nestedFirst := parent != nil && parent.FirstChild() == n

	switch n.Kind {
	case mdast.NodeStrike:
		if parent != nil && parent.Kind == mdast.NodeStrike {
			return ""
		}
		return "~~"
	case mdast.NodeStrong:
		if nestedFirst && parent.Kind == mdast.NodeStrong {
			return "__"
		}
		return "**"
	default:
		if parent != nil && (parent.Kind == mdast.NodeEmphasis || (nestedFirst && parent.Kind == mdast.NodeStrong)) {
			return "_"
		}
		return "*"
	}
}

func (w *inlineWriter) link(n *mdast.Node) string {
	attrs := n.LinkAttrs()

	if n.IsAutolink() {
		text := n.FirstChild().Content()
		if text == attrs.Destination || emailAddress.MatchString(text) {
			return "<" + text + ">"
		}
	}

	content := w.child(n)
	if attrs.ReferenceLabel != "" {
		w.m.addDefinition(attrs)
		return "[" + content + "][" + label(attrs.ReferenceLabel) + "]"
	}
	return "[" + content + "](" + destination(attrs.Destination) + title(attrs.Title) + ")"
}

func (w *inlineWriter) image(n *mdast.Node) string {
	attrs := n.LinkAttrs()
	alt := w.child(n)
	if attrs.ReferenceLabel != "" {
		w.m.addDefinition(attrs)
		return "![" + alt + "][" + label(attrs.ReferenceLabel) + "]"
	}
	return "![" + alt + "](" + destination(attrs.Destination) + title(attrs.Title) + ")"
}
