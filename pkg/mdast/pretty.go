package mdast

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tree drawing glyphs.
const (
	glyphFork = "├─"
	glyphEnd  = "└─"
	glyphPipe = "│ "
	glyphGap  = "  "
)

// PrettyOptions controls Pretty and Pprint output.
type PrettyOptions struct {
	// ShowLines prefixes each row with the source line as "[0007]".
	ShowLines bool

	// Decorate, when set, rewrites each node label before it is written.
	// It is used for terminal colours.
	Decorate func(n *Node, label string) string
}

// Pretty returns an indented tree dump of the subtree rooted at n.
func (n *Node) Pretty(opts PrettyOptions) string {
	var b strings.Builder
	//nolint:errcheck // strings.Builder does not fail
	n.Pprint(&b, opts)
	return b.String()
}

// Pprint writes an indented tree dump of the subtree rooted at n to w.
func (n *Node) Pprint(w io.Writer, opts PrettyOptions) error {
	bw := bufio.NewWriter(w)
	n.pprint(bw, opts, "", "")
	return bw.Flush()
}

func (n *Node) pprint(w *bufio.Writer, opts PrettyOptions, prefix, connector string) {
	if opts.ShowLines {
		fmt.Fprintf(w, "[%04d]", n.Line)
	}
	label := n.Label()
	if opts.Decorate != nil {
		label = opts.Decorate(n, label)
	}
	w.WriteString(prefix)
	w.WriteString(connector)
	w.WriteString(label)
	w.WriteByte('\n')

	childPrefix := prefix
	switch connector {
	case glyphFork:
		childPrefix += glyphPipe
	case glyphEnd:
		childPrefix += glyphGap
	}

	for child := n.firstChild; child != nil; child = child.next {
		glyph := glyphFork
		if child.next == nil {
			glyph = glyphEnd
		}
		child.pprint(w, opts, childPrefix, glyph)
	}
}

// Label returns a one-line description of n such as `Header(level=1)` or
// `Text("Hello")`.
func (n *Node) Label() string {
	return n.Kind.String() + "(" + strings.Join(n.labelArgs(), ", ") + ")"
}

func (n *Node) labelArgs() []string {
	switch n.Kind {
	case NodeText, NodeInlineCode:
		return []string{strconv.Quote(n.Content())}
	case NodeHTMLBlock, NodeHTMLInline:
		return []string{fmt.Sprintf("%d characters", len(n.Content()))}
	case NodeHeader:
		return []string{"level=" + strconv.Itoa(n.Level())}
	case NodeThematicBreak:
		return []string{strconv.Quote(string(n.ThematicChar()))}
	case NodeList:
		list := n.ListAttrs()
		args := []string{"ordered=" + strconv.FormatBool(list.Ordered)}
		if list.Ordered {
			args = append(args, "start="+strconv.Itoa(list.StartNumber), "delimiter="+strconv.Quote(list.Delimiter))
		} else {
			args = append(args, "bullet="+strconv.Quote(list.BulletMarker))
		}
		return append(args, "tight="+strconv.FormatBool(list.Tight))
	case NodeListItem:
		task, checked := n.Task()
		if !task {
			return nil
		}
		return []string{"task", "checked=" + strconv.FormatBool(checked)}
	case NodeCodeBlock:
		code := n.CodeAttrs()
		if code.Indented {
			return []string{"indented", fmt.Sprintf("%d characters", len(code.Content))}
		}
		return []string{
			"info=" + strconv.Quote(code.Info),
			"fence=" + strconv.Quote(strings.Repeat(string(code.FenceChar), code.FenceLength)),
			fmt.Sprintf("%d characters", len(code.Content)),
		}
	case NodeLink, NodeImage:
		link := n.LinkAttrs()
		args := []string{"url=" + strconv.Quote(link.Destination)}
		if link.Title != "" {
			args = append(args, "title="+strconv.Quote(link.Title))
		}
		if link.ReferenceLabel != "" {
			args = append(args, "reference="+strconv.Quote(link.ReferenceLabel))
		}
		if n.IsAutolink() {
			args = append(args, "autolink")
		}
		return args
	default:
		return nil
	}
}
