// ABOUTME: Lipgloss styles for the picker: prompt, selection marker, match highlight, header
// ABOUTME: Highlight colors accept basic ANSI names, 256-color numbers, or #rrggbb

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ansiNames maps basic color names to their ANSI numbers.
var ansiNames = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
}

// colorSpec turns a configured color into a lipgloss color spec.
func colorSpec(name string) lipgloss.Color {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		n = "green"
	}
	if c, ok := ansiNames[n]; ok {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(n)
}

type styles struct {
	Prompt    lipgloss.Style
	Cursor    lipgloss.Style
	Marker    lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Title     lipgloss.Style
	Dim       lipgloss.Style
}

func newStyles(highlight string) styles {
	c := colorSpec(highlight)
	return styles{
		Prompt:    lipgloss.NewStyle().Foreground(c).Bold(true),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Marker:    lipgloss.NewStyle().Foreground(c).Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(c).Bold(true),
		Selected:  lipgloss.NewStyle().Bold(true),
		Title:     lipgloss.NewStyle().Foreground(c).Bold(true),
		Dim:       lipgloss.NewStyle().Faint(true),
	}
}
