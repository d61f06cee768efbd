package query

import (
	"fmt"
	"maps"
	"regexp"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// Names every predicate can use besides the attributes of its variants.
const (
	envLine = "line"
	envKind = "kind"
	envText = "text"
)

var textRef = regexp.MustCompile(`\b` + envText + `\b`)

type predicate struct {
	program  *vm.Program
	env      map[string]any
	needText bool
	onError  func(n *mdast.Node, err error)
}

// compilePredicate type-checks src against the attributes of kinds. An
// attribute that none of the kinds defines is a compile error.
func compilePredicate(src string, kinds []mdast.NodeKind, onError func(*mdast.Node, error)) (mdast.Predicate, error) {
	env := map[string]any{
		envLine: 0,
		envKind: "",
		envText: "",
	}
	for _, kind := range kinds {
		for _, spec := range mdast.AttributeSpecs(kind) {
			env[spec.Name] = zeroValue(spec.Type)
		}
	}

	program, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPath, err)
	}

	p := &predicate{
		program:  program,
		env:      env,
		needText: textRef.MatchString(src),
		onError:  onError,
	}
	return p.match, nil
}

func (p *predicate) match(n *mdast.Node) bool {
	env := maps.Clone(p.env)
	for name, value := range n.Attributes() {
		if _, ok := env[name]; ok {
			env[name] = value
		}
	}
	env[envLine] = n.Line
	env[envKind] = n.Kind.Tag()
	if p.needText {
		env[envText] = mdast.PlainText(n)
	}

	out, err := expr.Run(p.program, env)
	if err != nil {
		if p.onError != nil {
			p.onError(n, err)
		}
		return false
	}
	matched, _ := out.(bool)
	return matched
}

func zeroValue(t mdast.AttrType) any {
	switch t {
	case mdast.AttrInt:
		return 0
	case mdast.AttrBool:
		return false
	default:
		return ""
	}
}
