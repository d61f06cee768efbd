package goldmark

import "sort"

// lineInfo describes one source line as byte offsets.
type lineInfo struct {
	// StartOffset is the offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the offset of the line terminator ("\n" or "\r\n"),
	// or the end of content for an unterminated last line.
	NewlineStart int

	// EndOffset is the offset just past the terminator.
	EndOffset int
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	content []byte
	lines   []lineInfo
}

// newLineIndex builds the line table for content. It handles both LF and
// CRLF line endings.
func newLineIndex(content []byte) *lineIndex {
	idx := &lineIndex{content: content}
	lineStart := 0

	for pos, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := pos
		if pos > 0 && content[pos-1] == '\r' {
			newlineStart = pos - 1
		}
		idx.lines = append(idx.lines, lineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    pos + 1,
		})
		lineStart = pos + 1
	}

	idx.lines = append(idx.lines, lineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return idx
}

// count returns the number of lines. Content ending in a newline has an
// empty last line.
func (idx *lineIndex) count() int {
	return len(idx.lines)
}

// lineAt converts a byte offset to a 1-based line number. Offsets past the
// end map to the last line; negative offsets map to 0.
func (idx *lineIndex) lineAt(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset >= len(idx.content) {
		return len(idx.lines)
	}

	lineIdx := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].EndOffset > offset
	})
	if lineIdx >= len(idx.lines) {
		lineIdx = len(idx.lines) - 1
	}
	return lineIdx + 1
}

// text returns line number line without its terminator, or nil when out of
// range.
func (idx *lineIndex) text(line int) []byte {
	if line < 1 || line > len(idx.lines) {
		return nil
	}
	info := idx.lines[line-1]
	return idx.content[info.StartOffset:info.NewlineStart]
}

// end returns the offset just past line's terminator.
func (idx *lineIndex) end(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(idx.lines) {
		return len(idx.content)
	}
	return idx.lines[line-1].EndOffset
}

// start returns the offset of line's first byte.
func (idx *lineIndex) start(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(idx.lines) {
		return len(idx.content)
	}
	return idx.lines[line-1].StartOffset
}
