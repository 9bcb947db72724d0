// ABOUTME: Entry point for the interactive picker
// ABOUTME: Runs the Bubble Tea program on the alternate screen and returns the choice

package ui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/fuzzyd-go/internal/finder"
)

// Run shows the picker until the user accepts, cancels, or interrupts.
// A cancelled picker returns (nil, nil).
func Run(ctx context.Context, r Ranker, opts Options) (*finder.Item, error) {
	p := tea.NewProgram(
		New(r, opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
	)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("bubble tea: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("bubble tea: unexpected model %T", final)
	}
	return m.Choice(), m.Err()
}
