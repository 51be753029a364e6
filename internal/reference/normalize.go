// Package reference turns a raw multi-line reference text into the
// normalized form scored by the alignment engine, and maps normalized
// positions back to the original text and its lines.
package reference

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ignored runes fold into a logical space.
var ignored = [...]rune{'\n', '.', ',', '?', '!', ';', ':', '\r'}

// IsIgnored reports whether r is punctuation or a line break that scores as
// a space.
func IsIgnored(r rune) bool {
	for _, ig := range ignored {
		if r == ig {
			return true
		}
	}
	return false
}

// IsSpace reports whether r normalizes to a logical space.
func IsSpace(r rune) bool {
	return r == ' ' || IsIgnored(r)
}

// Lower returns the full Unicode lowercase mapping of r, which may be more
// than one rune.
func Lower(r rune) string {
	return cases.Lower(language.Und).String(string(r))
}

// Reference is the normalized form of a reference text.
type Reference struct {
	source    string
	sourceLen int

	text    string
	textLen int

	// offsets[i] and lineOf[i] locate normalized rune i in the source.
	offsets []int
	lineOf  []int

	lines      []string
	lineStarts []int
}

// Normalize lowercases raw, folds runs of spaces, line breaks and ignored
// punctuation into single spaces, and records where each normalized rune
// came from.
func Normalize(raw string) *Reference {
	ref := &Reference{
		source: raw,
		lines:      splitLines(raw),
		lineStarts: []int{0},
	}

	caser := cases.Lower(language.Und)
	var b strings.Builder
	pendingSpace := false
	started := false
	offset, line := 0, 0

	emit := func(r rune) {
		b.WriteRune(r)
		ref.offsets = append(ref.offsets, offset)
		ref.lineOf = append(ref.lineOf, line)
	}

	for _, r := range raw {
		if IsSpace(r) {
			pendingSpace = true
		} else {
			if pendingSpace && started {
				emit(' ')
			}
			for _, lr := range caser.String(string(r)) {
				emit(lr)
			}
			pendingSpace = false
			started = true
		}

		if r == '\n' {
			line++
			ref.lineStarts = append(ref.lineStarts, offset+1)
		}
		offset++
	}

	ref.sourceLen = offset
	ref.text = b.String()
	ref.textLen = len(ref.offsets)
	return ref
}

// splitLines splits on line feeds, dropping a trailing carriage return from
// each line and the empty segment after a final line break.
func splitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Text returns the normalized text.
func (r *Reference) Text() string { return r.text }

// Len returns the normalized text length in runes.
func (r *Reference) Len() int { return r.textLen }

// Source returns the raw text.
func (r *Reference) Source() string { return r.source }

// SourceLen returns the raw text length in runes.
func (r *Reference) SourceLen() int { return r.sourceLen }

// Lines returns the original lines, verbatim.
func (r *Reference) Lines() []string { return r.lines }

// LineCount returns the number of original lines.
func (r *Reference) LineCount() int { return len(r.lines) }

// SourceOffsets maps each normalized rune index to its rune offset in the
// raw text. The returned slice must not be modified.
func (r *Reference) SourceOffsets() []int { return r.offsets }

// LineIndexes maps each normalized rune index to its zero-based line in the
// raw text. The returned slice must not be modified.
func (r *Reference) LineIndexes() []int { return r.lineOf }

// SourceOffset returns the raw rune offset of normalized index i.
// ok is false when i is outside the normalized text.
func (r *Reference) SourceOffset(i int) (offset int, ok bool) {
	if i < 0 || i >= len(r.offsets) {
		return 0, false
	}
	return r.offsets[i], true
}

// LineIndex returns the raw line of normalized index i.
// ok is false when i is outside the normalized text.
func (r *Reference) LineIndex(i int) (line int, ok bool) {
	if i < 0 || i >= len(r.lineOf) {
		return 0, false
	}
	return r.lineOf[i], true
}

// LineStart returns the raw rune offset where line begins, or SourceLen for
// lines past the end.
func (r *Reference) LineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(r.lineStarts) {
		return r.sourceLen
	}
	return r.lineStarts[line]
}

// SourcePrefix returns the first n runes of the raw text.
func (r *Reference) SourcePrefix(n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for byteIdx := range r.source {
		if i == n {
			return r.source[:byteIdx]
		}
		i++
	}
	return r.source
}
