package langdetect

import (
	"fmt"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// FillFences sets the info string of every fenced code block under root
// that has none, using Detect on the block's content. Blocks whose language
// cannot be determined are left alone. It returns the number of blocks
// changed.
func FillFences(root *mdast.Node) (int, error) {
	if root == nil {
		return 0, nil
	}

	filled := 0
	for _, code := range root.Find(mdast.Of(mdast.NodeCodeBlock)) {
		attrs := code.CodeAttrs()
		if attrs.Indented || attrs.Info != "" {
			continue
		}

		lang := Detect([]byte(code.Content()))
		if lang == Text {
			continue
		}

		if err := code.SetAttributes(map[string]any{"info": lang}); err != nil {
			return filled, fmt.Errorf("set info on line %d: %w", code.Line, err)
		}
		filled++
	}
	return filled, nil
}
