package view

import (
	"fmt"
	"math"

	"github.com/rivo/uniseg"

	"github.com/dshills/typist/internal/renderer/backend"
	"github.com/dshills/typist/internal/renderer/core"
)

// StatusText returns the left and right halves of the status line.
func StatusText(st State) (left, right string) {
	left = " " + st.Title
	if st.Finished {
		left += " [done]"
	}
	if st.Message != "" {
		left += " - " + st.Message
	}

	total := len(st.Lines)
	line := min(st.Line+1, total)
	right = fmt.Sprintf("%d%%  %d/%d ", int(math.Round(st.Correctness*100)), line, total)
	return left, right
}

// renderStatus fills the status row and draws the title on the left and
// the score and line counter on the right.
func (v *View) renderStatus(b backend.Backend, row, width int, st State) {
	style := v.theme.Status
	blank := core.Cell{Grapheme: " ", Width: 1, Style: style}
	for x := 0; x < width; x++ {
		b.SetCell(x, row, blank)
	}

	left, right := StatusText(st)
	rightWidth := uniseg.StringWidth(right)
	if rightWidth >= width {
		drawText(b, 0, row, width, Truncate(right, width), style)
		return
	}
	drawText(b, 0, row, width-rightWidth-1, left, style)
	drawText(b, width-rightWidth, row, width, right, style)
}
