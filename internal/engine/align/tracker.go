package align

// DistanceTracker is an Engine fixed to EditDistance mode.
type DistanceTracker struct {
	engine *Engine
}

// NewDistanceTracker creates a tracker scoring against reference.
func NewDistanceTracker(reference string) *DistanceTracker {
	return &DistanceTracker{engine: New(reference, EditDistance)}
}

// Append appends one typed rune.
func (t *DistanceTracker) Append(r rune) { t.engine.Append(r) }

// AppendString appends every rune of s in order.
func (t *DistanceTracker) AppendString(s string) { t.engine.AppendString(s) }

// Undo removes the most recently appended rune.
func (t *DistanceTracker) Undo() error { return t.engine.Undo() }

// Len returns the number of typed runes.
func (t *DistanceTracker) Len() int { return t.engine.Len() }

// Distance returns the edit distance between the typed text and the reference.
func (t *DistanceTracker) Distance() int {
	return t.engine.distance()
}

// PositionTracker is an Engine fixed to TrackingAlignment mode.
type PositionTracker struct {
	engine *Engine
}

// NewPositionTracker creates a tracker locating typed text within reference.
func NewPositionTracker(reference string) *PositionTracker {
	return &PositionTracker{engine: New(reference, TrackingAlignment)}
}

// Append appends one typed rune.
func (t *PositionTracker) Append(r rune) { t.engine.Append(r) }

// AppendString appends every rune of s in order.
func (t *PositionTracker) AppendString(s string) { t.engine.AppendString(s) }

// Undo removes the most recently appended rune.
func (t *PositionTracker) Undo() error { return t.engine.Undo() }

// Len returns the number of typed runes.
func (t *PositionTracker) Len() int { return t.engine.Len() }

// Position returns the estimated rune index in the reference reached by the
// typed text, absorbing up to tolerance recent mismatches.
func (t *PositionTracker) Position(tolerance int) int {
	return t.engine.position(tolerance)
}
