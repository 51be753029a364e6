// Package session tracks one typing run against a reference text.
//
// A Session feeds every keystroke into two alignment trackers over the
// normalized reference: one scores correctness by edit distance, the other
// follows the typist's position so the host can scroll the source text.
// Typed input is normalized the same way as the reference, so punctuation
// and repeated spaces collapse into a single space that is committed only
// when the next content character arrives.
package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/typist/internal/engine/align"
	"github.com/dshills/typist/internal/reference"
)

// Backspace is the input rune that erases the last committed character.
const Backspace = '\b'

// Session is the typing state for one reference. It is not safe for
// concurrent use; the host must deliver input from a single goroutine.
type Session struct {
	ref      *reference.Reference
	distance *align.DistanceTracker
	position *align.PositionTracker

	typed        []rune
	pendingSpace bool

	precision int
	id        string
	logger    Logger
}

// New creates a session over ref.
func New(ref *reference.Reference, opts ...Option) *Session {
	s := &Session{
		ref:       ref,
		distance:  align.NewDistanceTracker(ref.Text()),
		position:  align.NewPositionTracker(ref.Text()),
		precision: DefaultPrecision,
		id:        uuid.NewString(),
		logger:    nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Precision returns the position tolerance.
func (s *Session) Precision() int { return s.precision }

// Reference returns the normalized reference.
func (s *Session) Reference() *reference.Reference { return s.ref }

// Lines returns the reference's original lines for display.
func (s *Session) Lines() []string { return s.ref.Lines() }

// TypedText returns the normalized text typed so far.
func (s *Session) TypedText() string { return string(s.typed) }

// PendingSpace reports whether a space has been typed but not yet committed.
func (s *Session) PendingSpace() bool { return s.pendingSpace }

// AddChar applies one input rune. Backspace erases the last committed rune,
// or only the pending space if there is one.
func (s *Session) AddChar(r rune) error {
	if r == Backspace {
		return s.backspace()
	}

	if reference.IsSpace(r) {
		s.pendingSpace = true
		return nil
	}

	// No leading space, matching the reference normalization.
	if s.pendingSpace && len(s.typed) > 0 {
		s.push(' ')
	}
	s.pendingSpace = false
	for _, lr := range reference.Lower(r) {
		s.push(lr)
	}
	return nil
}

// AddString applies every rune of text in order.
func (s *Session) AddString(text string) error {
	for _, r := range text {
		if err := s.AddChar(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) backspace() error {
	if s.pendingSpace {
		s.pendingSpace = false
		return nil
	}
	if len(s.typed) == 0 {
		return nil
	}
	if err := s.distance.Undo(); err != nil {
		return fmt.Errorf("undo distance: %w", err)
	}
	if err := s.position.Undo(); err != nil {
		return fmt.Errorf("undo position: %w", err)
	}
	s.typed = s.typed[:len(s.typed)-1]
	return nil
}

func (s *Session) push(r rune) {
	s.typed = append(s.typed, r)
	s.distance.Append(r)
	s.position.Append(r)
}

// Distance returns the edit distance between the typed and normalized reference text.
func (s *Session) Distance() int {
	return s.distance.Distance()
}

// Correctness returns the share of the reference typed correctly, in [0, 1].
//
// An empty reference scores 1 while nothing is typed and 0 afterwards.
func (s *Session) Correctness() float64 {
	total := s.ref.Len()
	if total == 0 {
		if len(s.typed) == 0 {
			return 1
		}
		return 0
	}
	valid := max(0, total-s.distance.Distance())
	return float64(valid) / float64(total)
}

// Position returns the estimated index into the normalized reference.
func (s *Session) Position() int {
	if s.ref.Len() == 0 {
		return 0
	}
	return s.position.Position(s.precision)
}

// PositionInSourceText returns the rune offset in the raw reference text
// reached by the typist. Past the end of the mapped text it falls back to the
// raw text length.
func (s *Session) PositionInSourceText() int {
	if s.ref.Len() == 0 {
		return 0
	}
	pos := s.Position()
	if offset, ok := s.ref.SourceOffset(pos); ok {
		return offset
	}
	s.logger.Warn("position %d is past the mapped text (%d runes), using source length %d",
		pos, s.ref.Len(), s.ref.SourceLen())
	return s.ref.SourceLen()
}

// PositionInSourceLines returns the line in the raw reference text reached by
// the typist. Past the end of the mapped text it falls back to the line count.
func (s *Session) PositionInSourceLines() int {
	if s.ref.Len() == 0 {
		return 0
	}
	pos := s.Position()
	if line, ok := s.ref.LineIndex(pos); ok {
		return line
	}
	s.logger.Warn("position %d is past the mapped text (%d runes), using line count %d",
		pos, s.ref.Len(), s.ref.LineCount())
	return s.ref.LineCount()
}

// Finished reports whether the typed text matches the reference exactly.
func (s *Session) Finished() bool {
	return len(s.typed) > 0 && s.distance.Distance() == 0
}

// Stats is a snapshot of the session readouts.
type Stats struct {
	Typed       int
	Distance    int
	Correctness float64
	Offset      int
	Line        int
}

// Stats returns the current readouts in one call.
func (s *Session) Stats() Stats {
	st := Stats{
		Typed:       len(s.typed),
		Distance:    s.Distance(),
		Correctness: s.Correctness(),
		Offset:      s.PositionInSourceText(),
		Line:        s.PositionInSourceLines(),
	}
	s.logger.Debug("typed=%q correctness=%.3f offset=%d line=%d",
		string(s.typed), st.Correctness, st.Offset, st.Line)
	return st
}
