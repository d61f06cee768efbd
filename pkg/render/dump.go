package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// bufWriterSize is the buffer size for dump output (64 KiB).
const bufWriterSize = 64 * 1024

// JSONRenderer writes the structural dump of a tree as JSON.
type JSONRenderer struct {
	compact bool
}

// NewJSON returns a JSON dump renderer.
func NewJSON(opts Options) *JSONRenderer {
	return &JSONRenderer{compact: opts.Compact}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(w io.Writer, root *mdast.Node) (err error) {
	if err := checkRoot(FormatJSON, root); err != nil {
		return err
	}

	bw := bufio.NewWriterSize(w, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("flush json: %w", flushErr)
		}
	}()

	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if !r.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(root.ToDict()); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// YAMLRenderer writes the structural dump of a tree as YAML.
type YAMLRenderer struct{}

// NewYAML returns a YAML dump renderer.
func NewYAML() *YAMLRenderer {
	return &YAMLRenderer{}
}

// Render implements Renderer.
func (r *YAMLRenderer) Render(w io.Writer, root *mdast.Node) error {
	if err := checkRoot(FormatYAML, root); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root.ToDict()); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}
