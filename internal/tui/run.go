package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phrazzld/learncards/internal/domain"
)

// Run starts the terminal frontend and blocks until the user quits.
func Run(chunker domain.Chunker, logger *slog.Logger, opts ...tea.ProgramOption) error {
	model, err := NewModel(chunker, logger)
	if err != nil {
		return fmt.Errorf("failed to create TUI model: %w", err)
	}

	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
