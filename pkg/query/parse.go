package query

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// splitSteps cuts src at every "/" outside brackets and quotes.
func splitSteps(src string) ([]string, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: empty query", ErrBadPath)
	}

	var (
		parts []string
		depth int
		quote byte
		start int
	)

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			if depth == 0 {
				return nil, fmt.Errorf("%w: quote outside predicate at offset %d", ErrBadPath, i)
			}
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unexpected ']' at offset %d", ErrBadPath, i)
			}
		case c == '/' && depth == 0:
			parts = append(parts, src[start:i])
			start = i + 1
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated string", ErrBadPath)
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unclosed '['", ErrBadPath)
	}
	return append(parts, src[start:]), nil
}

// compileStep turns `kinds [ "[" expr "]" ]` into a step.
func compileStep(src string, o options) (mdast.Step, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return mdast.Step{}, fmt.Errorf("%w: empty step", ErrBadPath)
	}

	head, pred := src, ""
	if open := strings.IndexByte(src, '['); open >= 0 {
		if !strings.HasSuffix(src, "]") {
			return mdast.Step{}, fmt.Errorf("%w: text after predicate", ErrBadPath)
		}
		head, pred = strings.TrimSpace(src[:open]), strings.TrimSpace(src[open+1:len(src)-1])
		if pred == "" {
			return mdast.Step{}, fmt.Errorf("%w: empty predicate", ErrBadPath)
		}
	}

	step, kinds, err := parseKinds(head)
	if err != nil {
		return mdast.Step{}, err
	}
	if pred == "" {
		return step, nil
	}

	match, err := compilePredicate(pred, kinds, o.onError)
	if err != nil {
		return mdast.Step{}, err
	}
	return step.Where(match), nil
}

// parseKinds reads `name ( "|" name )*` or "*". For "*" the returned kinds
// are every defined kind.
func parseKinds(head string) (mdast.Step, []mdast.NodeKind, error) {
	if head == "*" {
		return mdast.Any(), mdast.Kinds(), nil
	}
	if head == "" {
		return mdast.Step{}, nil, fmt.Errorf("%w: step names no variant", ErrBadPath)
	}

	var kinds []mdast.NodeKind
	for _, name := range strings.Split(head, "|") {
		kind, err := mdast.ParseKind(strings.TrimSpace(name))
		if err != nil {
			return mdast.Step{}, nil, fmt.Errorf("%w: %w", ErrBadPath, err)
		}
		kinds = append(kinds, kind)
	}

	step, err := mdast.NewStep(kinds...)
	if err != nil {
		return mdast.Step{}, nil, fmt.Errorf("%w: %w", ErrBadPath, err)
	}
	return step, kinds, nil
}
