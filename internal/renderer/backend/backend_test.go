package backend

import (
	"testing"

	"github.com/dshills/typist/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewStyledCell("X", core.NewStyle(core.ColorFromIndex(1)))
	b.SetCell(10, 5, cell)

	got := b.GetCell(10, 5)
	if !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	empty := b.GetCell(-1, 0)
	if !empty.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendRow(t *testing.T) {
	b := NewNullBackend(10, 2)
	b.Init()

	for i, c := range core.CellsFromString("hi there", core.DefaultStyle()) {
		b.SetCell(i, 1, c)
	}

	if got := b.Row(1); got != "hi there" {
		t.Errorf("Row(1) = %q", got)
	}
	if got := b.Row(0); got != "" {
		t.Errorf("Row(0) = %q, want empty", got)
	}
	if got := b.Row(5); got != "" {
		t.Errorf("Row(5) = %q, want empty", got)
	}
}

func TestNullBackendClear(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.SetCell(10, 10, core.NewStyledCell("X", core.DefaultStyle()))
	b.Clear()

	if got := b.GetCell(10, 10); !got.Equals(core.EmptyCell()) {
		t.Error("clear should reset all cells")
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.ShowCursor(10, 5)
	x, y, visible := b.CursorPosition()
	if x != 10 || y != 5 || !visible {
		t.Errorf("expected cursor at (10, 5) visible, got (%d, %d) visible=%v", x, y, visible)
	}

	b.HideCursor()
	_, _, visible = b.CursorPosition()
	if visible {
		t.Error("cursor should be hidden")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'a'})
	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'a' {
		t.Errorf("PollEvent = %+v", ev)
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.Resize(40, 10)
	w, h := b.Size()
	if w != 40 || h != 10 {
		t.Errorf("Size after resize = (%d, %d)", w, h)
	}
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 40 || ev.Height != 10 {
		t.Errorf("resize event = %+v", ev)
	}
}

func TestNullBackendCounters(t *testing.T) {
	b := NewNullBackend(10, 1)
	b.Init()

	b.Show()
	b.Show()
	b.Beep()
	if b.ShowCount() != 2 || b.BeepCount() != 1 {
		t.Errorf("shows=%d beeps=%d", b.ShowCount(), b.BeepCount())
	}
}

func TestModMask(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) || !m.Has(ModShift) {
		t.Error("mask should contain ctrl and shift")
	}
	if m.Has(ModAlt) {
		t.Error("mask should not contain alt")
	}
}
