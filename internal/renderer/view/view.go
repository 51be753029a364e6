// Package view lays out a typing frame: the reference lines scrolled so the
// current line stays near the top, an optional echo of the typed text, and a
// status line.
package view

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/typist/internal/renderer/backend"
	"github.com/dshills/typist/internal/renderer/core"
)

// DefaultScrollOffset is the number of lines kept above the current line.
const DefaultScrollOffset = 3

// typedPrompt precedes the typed text echo.
const typedPrompt = "> "

// State is everything a frame shows.
type State struct {
	Title string
	Lines []string

	// Line is the current line. It may equal len(Lines) once the whole
	// reference has been typed.
	Line int
	// Column is the rune offset of the cursor within Line.
	Column int

	Typed       string
	Correctness float64
	Finished    bool

	// Message replaces the status text when set, e.g. after a reload.
	Message string
}

// View renders State frames to a backend.
type View struct {
	theme        Theme
	scrollOffset int
	showTyped    bool
}

// Option configures a View.
type Option func(*View)

// WithScrollOffset sets how many lines stay visible above the current line.
func WithScrollOffset(n int) Option {
	return func(v *View) {
		if n >= 0 {
			v.scrollOffset = n
		}
	}
}

// WithShowTyped toggles the typed text echo line.
func WithShowTyped(show bool) Option {
	return func(v *View) {
		v.showTyped = show
	}
}

// New creates a view with the given theme.
func New(theme Theme, opts ...Option) *View {
	v := &View{
		theme:        theme,
		scrollOffset: DefaultScrollOffset,
		showTyped:    true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// TextHeight returns the rows left for reference lines on a screen of the
// given height.
func (v *View) TextHeight(height int) int {
	h := height - 1
	if v.showTyped {
		h--
	}
	return max(h, 0)
}

// ScrollTop returns the first visible line when line is current.
func (v *View) ScrollTop(line, textHeight int) int {
	off := min(v.scrollOffset, max(textHeight-1, 0))
	return max(line-off, 0)
}

// Render draws st and shows the frame.
func (v *View) Render(b backend.Backend, st State) {
	width, height := b.Size()
	b.Clear()
	if width <= 0 || height <= 0 {
		b.Show()
		return
	}

	textHeight := v.TextHeight(height)
	top := v.ScrollTop(st.Line, textHeight)
	cursorX, cursorY := -1, -1

	for row := 0; row < textHeight; row++ {
		idx := top + row
		if idx >= len(st.Lines) {
			break
		}
		line := st.Lines[idx]
		switch {
		case idx < st.Line:
			drawText(b, 0, row, width, line, v.theme.Correct)
		case idx > st.Line:
			drawText(b, 0, row, width, line, v.theme.Pending)
		default:
			runes := []rune(line)
			col := min(max(st.Column, 0), len(runes))
			x := drawText(b, 0, row, width, string(runes[:col]), v.theme.Correct)
			drawText(b, x, row, width, string(runes[col:]), v.theme.Pending)
			cursorX, cursorY = x, row
		}
	}

	if v.showTyped && height >= 2 {
		v.renderTyped(b, height-2, width, st.Typed)
	}
	v.renderStatus(b, height-1, width, st)

	if cursorY >= 0 && cursorX < width && !st.Finished {
		b.ShowCursor(cursorX, cursorY)
	} else {
		b.HideCursor()
	}
	b.Show()
}

func (v *View) renderTyped(b backend.Backend, row, width int, typed string) {
	x := drawText(b, 0, row, width, typedPrompt, v.theme.Typed)
	drawText(b, x, row, width, Tail(typed, width-x), v.theme.Typed)
}

// drawText draws s from column x, clipping at maxX, and returns the column
// after the last cell drawn. Control characters are skipped.
func drawText(b backend.Backend, x, y, maxX int, s string, style core.Style) int {
	for _, c := range core.CellsFromString(s, style) {
		if c.Width == 0 {
			continue
		}
		if x+c.Width > maxX {
			break
		}
		b.SetCell(x, y, c)
		if c.Width == 2 {
			b.SetCell(x+1, y, core.ContinuationCell())
		}
		x += c.Width
	}
	return x
}

// Truncate returns the longest prefix of s, in whole grapheme clusters,
// whose display width is at most width.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	end, w := 0, 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var cw int
		cluster, rest, cw, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if w+cw > width {
			break
		}
		w += cw
		end += len(cluster)
	}
	return s[:end]
}

// Tail returns the longest suffix of s, in whole grapheme clusters, whose
// display width is at most width.
func Tail(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var starts, widths []int
	offset := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var cw int
		cluster, rest, cw, state = uniseg.FirstGraphemeClusterInString(rest, state)
		starts = append(starts, offset)
		widths = append(widths, cw)
		offset += len(cluster)
	}

	start, w := len(s), 0
	for i := len(starts) - 1; i >= 0; i-- {
		if w+widths[i] > width {
			break
		}
		w += widths[i]
		start = starts[i]
	}
	return s[start:]
}
