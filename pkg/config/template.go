package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. Otherwise the
	// template is a short, mostly commented file.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	return []byte(`# mdtree configuration
# See: https://github.com/yaklabco/mdtree

# Parser backend: gfm, commonmark, json or yaml
backend: gfm

# Output format: markdown, json, yaml or text
# renderer: markdown

# Colour output: auto, always or never
# color: auto

# Number of parallel fmt workers (0 = auto)
# jobs: 0

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# fmt settings
# format:
#   detect_lang: false
#   backup: false
`)
}

func generateFullTemplate() ([]byte, error) {
	defaults := NewConfig()
	defaults.Ignore = []string{"vendor/**", "node_modules/**", ".git/**"}

	body, err := defaults.ToYAML()
	if err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# mdtree configuration - Full Template\n")
	buf.WriteString("# See: https://github.com/yaklabco/mdtree\n")
	buf.WriteString("#\n")
	buf.WriteString("# Every setting is listed with its default value.\n\n")
	buf.WriteString(strings.TrimRight(string(body), "\n"))
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
