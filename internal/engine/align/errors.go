package align

import "errors"

// Errors returned by engine operations.
var (
	// ErrNothingToUndo indicates Undo was called before anything was appended.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrModeMismatch indicates a query that the engine's mode does not support,
	// such as Distance on a TrackingAlignment engine.
	ErrModeMismatch = errors.New("operation not supported in this mode")
)
