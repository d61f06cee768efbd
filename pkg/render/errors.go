package render

import "errors"

// ErrUnknownFormat is returned for a renderer name that is not registered.
var ErrUnknownFormat = errors.New("unknown render format")
