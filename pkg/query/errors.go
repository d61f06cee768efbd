package query

import "github.com/yaklabco/mdtree/pkg/mdast"

// ErrBadPath reports a query string that cannot be compiled: bad syntax, an
// unknown variant, or a predicate that does not type-check. It is the same
// sentinel mdast uses for malformed steps.
var ErrBadPath = mdast.ErrBadPath
