package mdast

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Selector is either a single Step or a Path of steps.
type Selector interface {
	selectorSteps() []Step
}

// Predicate filters the nodes a step matches.
type Predicate func(n *Node) bool

// Step matches nodes of a set of kinds that satisfy all of its predicates.
// The zero Step is invalid; build one with Of, NewStep or Any.
type Step struct {
	kinds []NodeKind
	any   bool
	preds []Predicate
}

// NewStep returns a step matching any of kinds. It fails with ErrBadPath
// when kinds is empty or holds an undefined kind.
func NewStep(kinds ...NodeKind) (Step, error) {
	if len(kinds) == 0 {
		return Step{}, fmt.Errorf("%w: step names no kind", ErrBadPath)
	}
	for _, kind := range kinds {
		if !kind.Valid() {
			return Step{}, fmt.Errorf("%w: %v", ErrBadPath, kind)
		}
	}
	return Step{kinds: slices.Clone(kinds)}, nil
}

// Of is like NewStep but panics on error. It is meant for steps written
// out in code.
func Of(kinds ...NodeKind) Step {
	step, err := NewStep(kinds...)
	if err != nil {
		panic(fmt.Sprintf("mdast: Of: %v", err))
	}
	return step
}

// Any returns a step matching every node.
func Any() Step {
	return Step{any: true}
}

// Where returns a copy of s that also requires pred to hold.
func (s Step) Where(pred Predicate) Step {
	out := s
	out.kinds = slices.Clone(s.kinds)
	out.preds = append(slices.Clip(s.preds), pred)
	return out
}

// Then returns the path s followed by next.
func (s Step) Then(next Selector) Path {
	return Path{steps: []Step{s}}.Then(next)
}

// Kinds returns the kinds the step matches, or nil for Any.
func (s Step) Kinds() []NodeKind {
	return slices.Clone(s.kinds)
}

// Matches reports whether n satisfies the step.
func (s Step) Matches(n *Node) bool {
	if !s.any && !slices.Contains(s.kinds, n.Kind) {
		return false
	}
	for _, pred := range s.preds {
		if !pred(n) {
			return false
		}
	}
	return true
}

func (s Step) valid() bool {
	return s.any || len(s.kinds) > 0
}

// String renders the step in query syntax. Predicates show as "[...]".
func (s Step) String() string {
	var b strings.Builder
	if s.any {
		b.WriteString("*")
	}
	for i, kind := range s.kinds {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(kind.Tag())
	}
	if len(s.preds) > 0 {
		b.WriteString("[...]")
	}
	return b.String()
}

func (s Step) selectorSteps() []Step {
	return []Step{s}
}

// Path is a sequence of steps. Each step after the first matches strict
// descendants of a node matched by the step before it.
type Path struct {
	steps []Step
}

// Compose joins selectors into one path. It fails with ErrBadPath if the
// result is empty or contains an invalid step.
func Compose(selectors ...Selector) (Path, error) {
	var path Path
	for _, sel := range selectors {
		if sel == nil {
			return Path{}, fmt.Errorf("%w: nil selector", ErrBadPath)
		}
		path = path.Then(sel)
	}
	if err := path.validate(); err != nil {
		return Path{}, err
	}
	return path, nil
}

// Then returns p followed by next.
func (p Path) Then(next Selector) Path {
	steps := slices.Clip(p.steps)
	return Path{steps: append(steps, next.selectorSteps()...)}
}

// Steps returns a copy of the path's steps.
func (p Path) Steps() []Step {
	return slices.Clone(p.steps)
}

// String renders the path in query syntax.
func (p Path) String() string {
	parts := make([]string, len(p.steps))
	for i, step := range p.steps {
		parts[i] = step.String()
	}
	return strings.Join(parts, " / ")
}

func (p Path) validate() error {
	if len(p.steps) == 0 {
		return fmt.Errorf("%w: empty path", ErrBadPath)
	}
	for i, step := range p.steps {
		if !step.valid() {
			return fmt.Errorf("%w: step %d matches nothing", ErrBadPath, i+1)
		}
	}
	return nil
}

func (p Path) selectorSteps() []Step {
	return p.steps
}

// Select yields the nodes matching sel in the subtree rooted at n, in
// document order. The first step may match n itself. A node reached through
// several matches of an earlier step is yielded once per match.
//
// The sequence is lazy and reads the tree as it goes, so the tree must not
// be changed until iteration is over. Use Find to edit matched nodes.
// Select panics if sel contains an invalid step.
func (n *Node) Select(sel Selector) iter.Seq[*Node] {
	steps := sel.selectorSteps()
	if err := (Path{steps: steps}).validate(); err != nil {
		panic(fmt.Sprintf("mdast: Select: %v", err))
	}
	return func(yield func(*Node) bool) {
		selectFrom(n, steps, true, yield)
	}
}

// Find returns all nodes matching sel as a snapshot taken at call time. The
// tree may be edited freely while ranging over the result.
func (n *Node) Find(sel Selector) []*Node {
	return slices.Collect(n.Select(sel))
}

// FindOne returns the first node matching sel, or nil. It stops walking at
// the first match.
func (n *Node) FindOne(sel Selector) *Node {
	for match := range n.Select(sel) {
		return match
	}
	return nil
}

func selectFrom(n *Node, steps []Step, includeSelf bool, yield func(*Node) bool) bool {
	return descend(n, includeSelf, func(m *Node) bool {
		if !steps[0].Matches(m) {
			return true
		}
		if len(steps) == 1 {
			return yield(m)
		}
		return selectFrom(m, steps[1:], false, yield)
	})
}

// descend visits n (when includeSelf is set) and its descendants in
// pre-order until visit returns false.
func descend(n *Node, includeSelf bool, visit func(*Node) bool) bool {
	if includeSelf && !visit(n) {
		return false
	}
	for child := n.firstChild; child != nil; child = child.next {
		if !descend(child, true, visit) {
			return false
		}
	}
	return true
}

// AttrEquals returns a predicate matching nodes whose named attribute
// equals value. Integers compare by value whatever their Go type.
func AttrEquals(name string, value any) Predicate {
	if v, err := coerceInt(value); err == nil {
		value = v
	}
	return func(n *Node) bool {
		got, ok := n.Attr(name)
		return ok && reflect.DeepEqual(got, value)
	}
}

// LevelIs matches headers of the given level.
func LevelIs(level int) Predicate {
	return func(n *Node) bool {
		return n.Kind == NodeHeader && n.Level() == level
	}
}
