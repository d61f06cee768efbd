package mdast

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by tree operations.
var (
	// ErrNotAllowed reports an insertion that would break the nesting rules.
	ErrNotAllowed = errors.New("child kind not allowed")

	// ErrDetached reports a sibling operation on a node without a parent.
	ErrDetached = errors.New("node has no parent")

	// ErrCycle reports an insertion of a node into its own subtree.
	ErrCycle = errors.New("node would become its own ancestor")

	// ErrDuplicate reports the same node passed twice to one insertion.
	ErrDuplicate = errors.New("node passed more than once")

	// ErrNilNode reports a nil node passed to an operation.
	ErrNilNode = errors.New("nil node")

	// ErrUnknownKind reports a kind name or value outside the defined set.
	ErrUnknownKind = errors.New("unknown node kind")

	// ErrBadAttribute reports an attribute that does not exist for a kind,
	// or a value of the wrong type.
	ErrBadAttribute = errors.New("bad attribute")

	// ErrUnbalanced reports a token stream whose opens and closes do not
	// pair up.
	ErrUnbalanced = errors.New("unbalanced token stream")

	// ErrBadPath reports a malformed query path.
	ErrBadPath = errors.New("malformed query path")
)

// StructureError describes a rejected parent/child pairing.
type StructureError struct {
	Parent NodeKind
	Child  NodeKind
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s cannot contain %s", e.Parent, e.Child)
}

// Unwrap returns ErrNotAllowed.
func (e *StructureError) Unwrap() error {
	return ErrNotAllowed
}
