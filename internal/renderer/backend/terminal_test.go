package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/typist/internal/renderer/core"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyRune, KeyRune},
		{tcell.KeyEnter, KeyEnter},
		{tcell.KeyTab, KeyTab},
		{tcell.KeyBackspace, KeyBackspace},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyEscape, KeyEscape},
		{tcell.KeyCtrlC, KeyCtrlC},
		{tcell.KeyCtrlR, KeyCtrlR},
		{tcell.KeyF5, KeyNone},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConvertToTcellKey_RoundTrip(t *testing.T) {
	for _, k := range []Key{KeyEscape, KeyEnter, KeyTab, KeyBackspace, KeyDelete, KeyUp, KeyDown, KeyPageUp, KeyPageDown, KeyCtrlC, KeyCtrlD, KeyCtrlL, KeyCtrlR} {
		if got := convertKey(convertToTcellKey(k)); got != k {
			t.Errorf("round trip of %v = %v", k, got)
		}
	}
}

func TestConvertMod(t *testing.T) {
	m := convertMod(tcell.ModCtrl | tcell.ModAlt)
	if !m.Has(ModCtrl) || !m.Has(ModAlt) || m.Has(ModShift) {
		t.Errorf("convertMod = %b", m)
	}
	if convertToTcellMod(ModShift|ModMeta) != tcell.ModShift|tcell.ModMeta {
		t.Error("convertToTcellMod mismatch")
	}
}

func TestConvertEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'x' {
		t.Errorf("key event = %+v", ev)
	}

	ev = convertEvent(tcell.NewEventResize(100, 40))
	if ev.Type != EventResize || ev.Width != 100 || ev.Height != 40 {
		t.Errorf("resize event = %+v", ev)
	}

	ev = convertEvent(tcell.NewEventInterrupt(nil))
	if ev.Type != EventInterrupt {
		t.Errorf("interrupt event = %+v", ev)
	}
}

func TestConvertStyle(t *testing.T) {
	s := convertStyle(core.NewStyle(core.ColorFromIndex(2)).Bold())
	fg, _, attrs := s.Decompose()
	if fg != tcell.PaletteColor(2) {
		t.Errorf("foreground = %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("bold should be set")
	}

	fg, bg, attrs := convertStyle(core.DefaultStyle()).Decompose()
	if fg != tcell.ColorDefault || bg != tcell.ColorDefault || attrs != tcell.AttrNone {
		t.Errorf("default style = %v %v %v", fg, bg, attrs)
	}
}

func TestTerminal_SimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := newTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Shutdown()

	screen.SetSize(20, 5)
	w, h := term.Size()
	if w != 20 || h != 5 {
		t.Fatalf("Size = (%d, %d)", w, h)
	}

	for i, c := range core.CellsFromString("hi", core.DefaultStyle()) {
		term.SetCell(i, 1, c)
	}
	term.Show()

	mainc, _, _, _ := screen.GetContent(1, 1) //nolint:staticcheck // GetContent is the correct API
	if mainc != 'i' {
		t.Errorf("content at (1,1) = %q, want 'i'", mainc)
	}
}
