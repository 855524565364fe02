// Package tui is the terminal front-end of the calculator.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"calcpad/internal/calculator"
	"calcpad/internal/keypad"
	"calcpad/internal/theme"
)

const title = "calcpad"

// Model hosts one calculator state. Theme persistence failures are reported
// in the status line and never stop the calculator.
type Model struct {
	state  calculator.State
	mode   theme.Mode
	store  theme.Store
	styles styles
	keys   keyMap
	help   help.Model
	status string
	logger *zap.Logger
}

// New loads the saved theme from store and starts at the initial state.
func New(store theme.Store, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		state:  calculator.Initial(),
		mode:   theme.Default,
		store:  store,
		keys:   defaultKeyMap(),
		help:   help.New(),
		logger: logger,
	}

	if store != nil {
		mode, err := store.Load()
		switch {
		case err != nil:
			m.status = "could not load theme: " + err.Error()
			logger.Warn("load theme", zap.Error(err))
		case mode == theme.Light || mode == theme.Dark:
			m.mode = mode
		}
	}
	m.styles = newStyles(m.mode)
	return m
}

func (m Model) State() calculator.State { return m.state }
func (m Model) Mode() theme.Mode         { return m.mode }
func (m Model) Status() string           { return m.status }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Theme):
			return m.toggleTheme(), nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		tok, ok := decodeKey(msg)
		if !ok {
			return m, nil
		}
		m.state = calculator.Reduce(m.state, tok)
		m.logger.Debug("key reduced",
			zap.String("key", tok.String()),
			zap.String("current", m.state.Current()),
		)
	}
	return m, nil
}

func (m Model) toggleTheme() Model {
	m.mode = m.mode.Toggle()
	m.styles = newStyles(m.mode)
	m.status = ""

	if m.store == nil {
		return m
	}
	if err := m.store.Save(m.mode); err != nil {
		m.status = "could not save theme: " + err.Error()
		m.logger.Warn("save theme", zap.String("mode", string(m.mode)), zap.Error(err))
	}
	return m
}

func (m Model) View() string {
	d := calculator.Render(m.state)

	lines := []string{
		m.styles.Title.Render(title),
		m.styles.Previous.Render(keypad.PreviousLine(d)),
		m.styles.Current.Render(d.Current),
		"",
		m.renderKeypad(d.Operator),
	}
	if m.status != "" {
		lines = append(lines, "", m.styles.Status.Render(m.status))
	}

	return m.styles.Panel.Render(strings.Join(lines, "\n")) + "\n" + m.help.View(m.keys)
}

func (m Model) renderKeypad(pending calculator.Operator) string {
	rows := make([]string, 0, len(keypad.Layout))
	for _, row := range keypad.Layout {
		cells := make([]string, 0, len(row))
		for _, b := range row {
			cells = append(cells, m.buttonStyle(b, pending).Render(b.Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) buttonStyle(b keypad.Button, pending calculator.Operator) lipgloss.Style {
	switch b.Token.Kind() {
	case calculator.KindOperator:
		if b.Token.Operator() == pending {
			return m.styles.Pending
		}
		return m.styles.Operator
	case calculator.KindEquals:
		return m.styles.Equals
	case calculator.KindClear, calculator.KindDelete, calculator.KindPercent, calculator.KindNegate:
		return m.styles.Function
	}
	return m.styles.Key
}
