package view

import (
	"fmt"

	"github.com/dshills/typist/internal/renderer/core"
)

// Theme holds the styles used for each part of a frame.
type Theme struct {
	Correct core.Style
	Pending core.Style
	Status  core.Style
	Typed   core.Style
}

// DefaultTheme returns green typed text, gray pending text and a blue
// status bar.
func DefaultTheme() Theme {
	theme, _ := NewTheme("green", "gray", "#5f87af")
	return theme
}

// NewTheme builds a theme from color names or hex strings.
func NewTheme(correct, pending, status string) (Theme, error) {
	c, err := core.ParseColor(correct)
	if err != nil {
		return Theme{}, fmt.Errorf("correct color: %w", err)
	}
	p, err := core.ParseColor(pending)
	if err != nil {
		return Theme{}, fmt.Errorf("pending color: %w", err)
	}
	s, err := core.ParseColor(status)
	if err != nil {
		return Theme{}, fmt.Errorf("status color: %w", err)
	}
	return Theme{
		Correct: core.NewStyle(c),
		Pending: core.NewStyle(p),
		Status:  core.DefaultStyle().WithBackground(s).Bold(),
		Typed:   core.DefaultStyle(),
	}, nil
}
