package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// cardWidth is the outer width of one card, borders excluded.
const cardWidth = 26

// Styles holds all the TUI styling definitions
type Styles struct {
	App   lipgloss.Style
	Title lipgloss.Style

	// Input
	Input lipgloss.Style

	// Cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardFlipped  lipgloss.Style

	// Footer
	Help  lipgloss.Style
	Error lipgloss.Style
}

// DefaultStyles creates the default style set using the default renderer.
func DefaultStyles() Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

// NewStyles creates the style set using the given renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	card := r.NewStyle().
		Width(cardWidth).
		Height(5).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Align(lipgloss.Center, lipgloss.Center)

	return Styles{
		App: r.NewStyle().Padding(1, 2),
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1),

		Input: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")),

		Card:         card,
		CardSelected: card.BorderForeground(lipgloss.Color("212")),
		CardFlipped: card.
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")),

		Help:  r.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Error: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}
