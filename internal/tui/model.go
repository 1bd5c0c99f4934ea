package tui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phrazzld/learncards/internal/domain"
)

const (
	helpUnprocessed = "ctrl+s create learning cards • ctrl+c quit"
	helpProcessed   = "←↓↑→/hjkl move • enter/space flip • r start over • q quit"
)

// Model is the root BubbleTea model. It owns one deck directly.
type Model struct {
	deck   *domain.Deck
	styles Styles
	logger *slog.Logger

	input textarea.Model

	// cursor indexes the selected card in processed mode.
	cursor   int
	width    int
	err      error
	quitting bool
}

// NewModel creates the root TUI model around an empty deck.
func NewModel(chunker domain.Chunker, logger *slog.Logger) (Model, error) {
	deck, err := domain.NewDeck(chunker)
	if err != nil {
		return Model{}, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	ti := textarea.New()
	ti.Placeholder = "Enter your text here to convert it into learning cards..."
	ti.ShowLineNumbers = false
	ti.CharLimit = 0
	ti.SetWidth(60)
	ti.SetHeight(8)
	ti.Focus()

	return Model{
		deck:   deck,
		styles: DefaultStyles(),
		logger: logger.With(slog.String("component", "tui")),
		input:  ti,
		width:  80,
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(20, msg.Width-8))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.deck.Mode() == domain.ModeProcessed {
			return m.handleProcessedKey(msg)
		}
		if msg.String() == "ctrl+s" {
			m.submit()
			return m, nil
		}
	}

	if m.deck.Mode() == domain.ModeUnprocessed {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		// Keep the deck's source text in step with the field.
		if err := m.deck.SetSourceText(m.input.Value()); err != nil {
			m.err = err
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) submit() {
	text := m.input.Value()
	applied, err := m.deck.Submit(text)
	if err != nil {
		m.err = err
		return
	}
	if !applied {
		return
	}

	m.err = nil
	m.cursor = 0
	m.input.Blur()
	m.logger.Debug("cards created",
		slog.Int("card_count", m.deck.Len()),
		slog.Int("text_bytes", len(text)))
}

func (m Model) handleProcessedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.columns()
	last := m.deck.Len() - 1

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "left", "h":
		m.cursor = max(0, m.cursor-1)
	case "right", "l":
		m.cursor = min(last, m.cursor+1)
	case "up", "k":
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case "down", "j":
		if m.cursor+cols <= last {
			m.cursor += cols
		}
	case "enter", " ", "space":
		cards := m.deck.Cards()
		if m.cursor < len(cards) {
			m.deck.Flip(cards[m.cursor].ID)
		}
	case "r":
		m.deck.Reset()
		m.input.Reset()
		m.cursor = 0
		m.err = nil
		return m, m.input.Focus()
	}
	return m, nil
}

// columns is the number of cards per grid row at the current width.
func (m Model) columns() int {
	// Border adds one column on each side, plus one column of spacing.
	return max(1, (m.width-4)/(cardWidth+3))
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.styles.Title.Render("Learning Cards")}

	if m.deck.Mode() == domain.ModeUnprocessed {
		sections = append(sections, m.styles.Input.Render(m.input.View()))
		sections = append(sections, m.styles.Help.Render(helpUnprocessed))
	} else {
		sections = append(sections, m.renderGrid())
		sections = append(sections, m.styles.Help.Render(helpProcessed))
	}

	if m.err != nil {
		sections = append(sections, m.styles.Error.Render(errorMessage(m.err)))
	}

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderGrid() string {
	cards := m.deck.Cards()
	cols := m.columns()

	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		rendered := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			rendered = append(rendered, m.renderCard(cards[i], i == m.cursor), " ")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderCard(card domain.Card, selected bool) string {
	style := m.styles.Card
	text := card.Summary
	if card.IsFlipped {
		style = m.styles.CardFlipped
		text = card.Content
	}
	if selected {
		style = style.BorderForeground(m.styles.CardSelected.GetBorderTopForeground())
	}
	return style.Render(text)
}

func errorMessage(err error) string {
	if errors.Is(err, domain.ErrDeckProcessed) {
		return "Cards have already been created; press r to start over"
	}
	return "Error: " + err.Error()
}
