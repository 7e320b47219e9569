package engine

import "github.com/dshills/keyline/internal/engine/buffer"

// Errors returned by engine operations.
var (
	// ErrPointOutOfRange indicates a point outside the buffer reached an edit.
	ErrPointOutOfRange = buffer.ErrPointOutOfRange
)
