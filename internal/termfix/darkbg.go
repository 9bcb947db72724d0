// ABOUTME: Fixes the picker's background assumption before Bubble Tea initializes
// ABOUTME: Imported for side effects by cmd/fuzzyd ahead of any bubbletea import

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// With an explicit background lipgloss never sends the OSC 10/11
	// queries whose late replies would land in the query line.
	// This package must not import bubbletea, directly or transitively.
	lipgloss.SetHasDarkBackground(true)
}
