package render

import (
	"regexp"
	"strings"
)

// entityRef matches a named or numeric character reference at the start of
// a string.
var entityRef = regexp.MustCompile(`^&(?:#[xX][0-9a-fA-F]{1,6}|#[0-9]{1,7}|[a-zA-Z][a-zA-Z0-9]{0,31});`)

// emailAddress matches the addresses an email autolink accepts.
var emailAddress = regexp.MustCompile(
	`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
)

// inlineSpecial are the characters escaped wherever they appear in text.
const inlineSpecial = "\\`*[]<~"

// textPos describes where a run of text sits on its output line.
type textPos struct {
	lineStart  bool
	lineEnd    bool
	headerEnd  bool
	beforeLink bool
}

// escapeText makes s survive a parse unchanged. Whitespace that a parser
// would strip at either end of a line is written as character references,
// as are line endings.
func escapeText(s string, pos textPos) string {
	if s == "" {
		return ""
	}

	lead, trail := 0, len(s)
	if pos.lineStart {
		lead = len(s) - len(strings.TrimLeft(s, " \t"))
	}
	if pos.lineEnd {
		trail = max(len(strings.TrimRight(s, " \t")), lead)
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	writeRefs(&b, s[:lead])

	body := s[lead:trail]
	blockStart := pos.lineStart && lead == 0
	delim := -1
	if blockStart {
		delim = orderedDelimiter(body)
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\n':
			b.WriteString("&#10;")
		case c == '\r':
			b.WriteString("&#13;")
		case strings.IndexByte(inlineSpecial, c) >= 0,
			c == '_' && !intraword(body, i),
			c == '&' && entityRef.MatchString(body[i:]),
			i == 0 && blockStart && strings.IndexByte("#>-+=", c) >= 0,
			i == delim,
			i == len(body)-1 && trail == len(s) && pos.headerEnd && c == '#',
			i == len(body)-1 && trail == len(s) && pos.beforeLink && c == '!':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	writeRefs(&b, s[trail:])
	return b.String()
}

// writeRefs writes spaces and tabs as numeric character references.
func writeRefs(b *strings.Builder, ws string) {
	for i := range len(ws) {
		if ws[i] == '\t' {
			b.WriteString("&#9;")
		} else {
			b.WriteString("&#32;")
		}
	}
}

// orderedDelimiter returns the index of the "." or ")" that would make s an
// ordered list marker, or -1.
func orderedDelimiter(s string) int {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		return digits
	}
	return -1
}

// intraword reports whether the byte at i sits between two alphanumerics,
// where an underscore can neither open nor close emphasis.
func intraword(s string, i int) bool {
	return i > 0 && i < len(s)-1 && isAlnum(s[i-1]) && isAlnum(s[i+1])
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// codeSpan wraps content in a backtick run longer than any inside it.
// Line endings become spaces since a span cannot hold them.
func codeSpan(content string) string {
	if content == "" {
		return ""
	}
	content = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(content)

	fence := strings.Repeat("`", longestRun(content, '`')+1)
	pad := strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") ||
		(strings.HasPrefix(content, " ") && strings.HasSuffix(content, " ") && strings.Trim(content, " ") != "")
	if pad {
		return fence + " " + content + " " + fence
	}
	return fence + content + fence
}

// longestRun returns the length of the longest run of c in s.
func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := range len(s) {
		if s[i] != c {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}

// destination formats a link destination, switching to the <...> form when
// the bare form cannot hold it.
func destination(url string) string {
	angle := url == "" || strings.ContainsFunc(url, func(r rune) bool {
		return r <= ' ' || r == '(' || r == ')' || r == '<' || r == '>' || r == 0x7f
	})

	var b strings.Builder
	if angle {
		b.WriteByte('<')
	}
	for i := range len(url) {
		switch c := url[i]; {
		case c == '\\', c == '<', c == '>', c == '&' && entityRef.MatchString(url[i:]):
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString("&#10;")
		case c == '\r':
			b.WriteString("&#13;")
		default:
			b.WriteByte(c)
		}
	}
	if angle {
		b.WriteByte('>')
	}
	return b.String()
}

// title formats a link title with its leading space, or "" for no title.
func title(t string) string {
	if t == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(` "`)
	for i := range len(t) {
		switch c := t[i]; {
		case c == '\\', c == '"', c == '&' && entityRef.MatchString(t[i:]):
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString("&#10;")
		case c == '\r':
			b.WriteString("&#13;")
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// label escapes a reference label.
func label(l string) string {
	return strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`).Replace(l)
}

// normalizeLabel folds a reference label the way reference matching does.
func normalizeLabel(l string) string {
	return strings.ToLower(strings.Join(strings.Fields(l), " "))
}

// infoString escapes a fence info string.
func infoString(info string) string {
	return strings.NewReplacer(`\`, `\\`, `&`, `\&`).Replace(info)
}
