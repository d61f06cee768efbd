// Package structural reads the JSON and YAML structural dumps written by the
// json and yaml renderers, so a dumped tree can be edited by hand and fed
// back through the parse pipeline. JSON input may carry comments and
// trailing commas (JWCC).
package structural

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// Dump formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrDecode reports input that is not a structural dump.
var ErrDecode = errors.New("invalid structural dump")

// Tokenizer decodes a structural dump and streams the tree it describes.
type Tokenizer struct {
	format string
}

// New creates a tokenizer for FormatJSON or FormatYAML. Anything else is
// treated as JSON.
func New(format string) *Tokenizer {
	if format != FormatYAML {
		format = FormatJSON
	}
	return &Tokenizer{format: format}
}

// Format returns the dump format.
func (t *Tokenizer) Format() string {
	return t.format
}

// Tokenize decodes content and returns the token stream of the dumped tree.
// Blank input is an empty document.
func (t *Tokenizer) Tokenize(ctx context.Context, content []byte) ([]mdast.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tokenize cancelled: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	root, err := Decode(t.format, content)
	if err != nil {
		return nil, err
	}
	return mdast.Stream(root), nil
}

// Decode reads a dump in the given format and rebuilds the tree.
func Decode(format string, content []byte) (*mdast.Node, error) {
	var dict mdast.Dict

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &dict); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	default:
		standard, err := hujson.Standardize(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		dec := json.NewDecoder(bytes.NewReader(standard))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&dict); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}

	if dict.Variant == "" {
		return nil, fmt.Errorf("%w: missing variant", ErrDecode)
	}

	root, err := mdast.FromDict(dict)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return root, nil
}
