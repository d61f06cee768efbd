package parser

import (
	"errors"

	"github.com/yaklabco/mdtree/pkg/mdast"
)

// ErrUnbalanced reports a token stream whose opens and closes do not pair up.
var ErrUnbalanced = mdast.ErrUnbalanced

// ErrUnknownBackend reports a backend name that is not registered.
var ErrUnknownBackend = errors.New("unknown backend")
