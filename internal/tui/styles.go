package tui

import (
	"github.com/charmbracelet/lipgloss"

	"calcpad/internal/theme"
)

type palette struct {
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Key        lipgloss.Color
	Function   lipgloss.Color
	Operator   lipgloss.Color
	Equals     lipgloss.Color
	Border     lipgloss.Color
	Error      lipgloss.Color
}

var palettes = map[theme.Mode]palette{
	theme.Dark: {
		Background: "#1c1c1e",
		Text:       "#f5f5f7",
		Muted:      "#8e8e93",
		Key:        "#3a3a3c",
		Function:   "#636366",
		Operator:   "#ff9f0a",
		Equals:     "#30d158",
		Border:     "#48484a",
		Error:      "#ff453a",
	},
	theme.Light: {
		Background: "#f2f2f7",
		Text:       "#1c1c1e",
		Muted:      "#6c6c70",
		Key:        "#ffffff",
		Function:   "#d1d1d6",
		Operator:   "#ff9500",
		Equals:     "#34c759",
		Border:     "#c7c7cc",
		Error:      "#d70015",
	},
}

type styles struct {
	Panel    lipgloss.Style
	Title    lipgloss.Style
	Previous lipgloss.Style
	Current  lipgloss.Style
	Key      lipgloss.Style
	Function lipgloss.Style
	Operator lipgloss.Style
	Pending  lipgloss.Style
	Equals   lipgloss.Style
	Status   lipgloss.Style
}

const (
	buttonWidth  = 5
	displayWidth = 4*buttonWidth + 3
)

func newStyles(m theme.Mode) styles {
	p, ok := palettes[m]
	if !ok {
		p = palettes[theme.Default]
	}

	button := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		MarginRight(1).
		Foreground(p.Text)

	return styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Background(p.Background).
			Padding(0, 1),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Muted),
		Previous: lipgloss.NewStyle().Width(displayWidth).Align(lipgloss.Right).Foreground(p.Muted),
		Current:  lipgloss.NewStyle().Width(displayWidth).Align(lipgloss.Right).Bold(true).Foreground(p.Text),
		Key:      button.Background(p.Key),
		Function: button.Background(p.Function),
		Operator: button.Background(p.Operator),
		Pending:  button.Background(p.Operator).Reverse(true).Bold(true),
		Equals:   button.Background(p.Equals),
		Status:   lipgloss.NewStyle().Foreground(p.Error),
	}
}
