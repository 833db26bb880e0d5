// ABOUTME: Entry point for the Bubble Tea backend
// ABOUTME: Creates the tea.Program with mouse and focus reporting and blocks until exit

package btea

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the program for m. Cancelling ctx ends it.
func NewProgram(ctx context.Context, m Model, opts ...tea.ProgramOption) *tea.Program {
	base := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	}
	return tea.NewProgram(m, append(base, opts...)...)
}

// Run blocks until the program exits. A cancelled context is a clean exit.
func Run(p *tea.Program) error {
	if _, err := p.Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
