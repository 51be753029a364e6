package align

import (
	"fmt"
	"slices"
)

// CheckpointInterval is the number of appended runes between row snapshots.
const CheckpointInterval = 10

// Mode selects the cost variant used by an Engine.
type Mode int

const (
	// EditDistance scores with the classic Levenshtein costs.
	EditDistance Mode = iota

	// TrackingAlignment makes skipping a reference rune free, which biases
	// the row toward where the typed text aligns.
	TrackingAlignment
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case EditDistance:
		return "distance"
	case TrackingAlignment:
		return "tracking"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// insertionCost is the cost of consuming a reference rune with no typed rune.
func (m Mode) insertionCost() int {
	if m == TrackingAlignment {
		return 0
	}
	return 1
}

// Engine incrementally aligns a typed sequence against a fixed reference.
//
// After k appended runes, row[y] holds the cost between typed[:k] and
// reference[:y]. len(row) is always len(reference)+1 and row[0] == len(typed).
type Engine struct {
	reference []rune
	typed     []rune
	row       []int

	// checkpoints has one slot per typed rune. Slot i holds a copy of row
	// taken right after typed[i] was appended when (i+1) is a multiple of
	// CheckpointInterval, and is nil otherwise.
	checkpoints [][]int

	mode Mode
}

// New creates an engine over reference. An empty reference is valid; the
// distance then always equals the typed length.
func New(reference string, mode Mode) *Engine {
	e := &Engine{
		reference: []rune(reference),
		mode:      mode,
	}
	e.row = initialRow(len(e.reference))
	return e
}

// initialRow returns the row for an empty typed sequence: 0, 1, ..., n.
func initialRow(n int) []int {
	row := make([]int, n+1)
	for y := range row {
		row[y] = y
	}
	return row
}

// Mode returns the cost variant fixed at construction.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Len returns the number of typed runes.
func (e *Engine) Len() int {
	return len(e.typed)
}

// Typed returns the typed runes as a string.
func (e *Engine) Typed() string {
	return string(e.typed)
}

// Reference returns the reference as a string.
func (e *Engine) Reference() string {
	return string(e.reference)
}

// Append extends the typed sequence by r and updates the row in a single
// sweep over the reference.
func (e *Engine) Append(r rune) {
	e.typed = append(e.typed, r)
	ins := e.mode.insertionCost()

	// The top-left neighbour of row[y] is row[y-1] before it was overwritten.
	diag := e.row[0]
	e.row[0] = len(e.typed)
	for y := 1; y <= len(e.reference); y++ {
		above := e.row[y]
		sub := 1
		if e.reference[y-1] == r {
			sub = 0
		}
		e.row[y] = min(above+1, e.row[y-1]+ins, diag+sub)
		diag = above
	}

	var snapshot []int
	if len(e.typed)%CheckpointInterval == 0 {
		snapshot = slices.Clone(e.row)
	}
	e.checkpoints = append(e.checkpoints, snapshot)
}

// AppendString appends every rune of s in order.
func (e *Engine) AppendString(s string) {
	for _, r := range s {
		e.Append(r)
	}
}

// Undo removes the most recently appended rune.
//
// The row is rebuilt from the nearest earlier checkpoint, or from the
// initial row when none exists, so at most CheckpointInterval-1 runes are
// replayed.
func (e *Engine) Undo() error {
	if len(e.typed) == 0 {
		return ErrNothingToUndo
	}
	e.checkpoints = e.checkpoints[:len(e.checkpoints)-1]
	e.typed = e.typed[:len(e.typed)-1]

	// Runes to replay, newest first.
	var replay []rune
	restored := false
	for len(e.checkpoints) > 0 {
		last := len(e.checkpoints) - 1
		if snapshot := e.checkpoints[last]; snapshot != nil {
			// The snapshot still describes typed[:last+1], so it stays in place.
			e.row = slices.Clone(snapshot)
			restored = true
			break
		}
		e.checkpoints = e.checkpoints[:last]
		replay = append(replay, e.typed[last])
		e.typed = e.typed[:last]
	}
	if !restored {
		e.row = initialRow(len(e.reference))
	}

	for i := len(replay) - 1; i >= 0; i-- {
		e.Append(replay[i])
	}
	return nil
}

// Distance returns the edit distance between the typed text and the whole
// reference. Only valid in EditDistance mode.
func (e *Engine) Distance() (int, error) {
	if e.mode != EditDistance {
		return 0, fmt.Errorf("distance on %s engine: %w", e.mode, ErrModeMismatch)
	}
	return e.distance(), nil
}

func (e *Engine) distance() int {
	return e.row[len(e.reference)]
}

// Position estimates how far into the reference the typed text has reached.
// Only valid in TrackingAlignment mode.
//
// Up to tolerance value changes in the tail of the row are absorbed as noise
// before a change is taken as the similarity boundary, so a single fresh typo
// does not make the estimate jump backward. While no more than tolerance
// runes have been typed the typed length is returned as is.
func (e *Engine) Position(tolerance int) (int, error) {
	if e.mode != TrackingAlignment {
		return 0, fmt.Errorf("position on %s engine: %w", e.mode, ErrModeMismatch)
	}
	return e.position(tolerance), nil
}

func (e *Engine) position(tolerance int) int {
	if len(e.typed) <= tolerance {
		return len(e.typed)
	}

	boundary := 0
	current := e.row[len(e.row)-1]
	remaining := tolerance
	for i := len(e.row) - 2; i >= 0; i-- {
		if e.row[i] == current {
			continue
		}
		if remaining > 0 {
			remaining--
			current = e.row[i]
			continue
		}
		boundary = i
		break
	}
	return boundary + tolerance + 1
}
