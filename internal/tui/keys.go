package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"calcpad/internal/calculator"
)

type keyMap struct {
	Digits    key.Binding
	Operators key.Binding
	Equals    key.Binding
	Delete    key.Binding
	Clear     key.Binding
	Negate    key.Binding
	Percent   key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digits:    key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."), key.WithHelp("0-9 .", "enter number")),
		Operators: key.NewBinding(key.WithKeys("+", "-", "*", "/"), key.WithHelp("+ - * /", "operator")),
		Equals:    key.NewBinding(key.WithKeys("enter", "="), key.WithHelp("enter", "equals")),
		Delete:    key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Negate:    key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "±")),
		Percent:   key.NewBinding(key.WithKeys("%"), key.WithHelp("%", "percent")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Operators, k.Equals},
		{k.Delete, k.Clear, k.Negate, k.Percent},
		{k.Theme, k.Help, k.Quit},
	}
}

// terminalKeys maps bubbletea key names onto calculator key names.
var terminalKeys = map[string]string{
	"enter":     "Enter",
	"backspace": "Backspace",
	"esc":       "Escape",
}

// decodeKey turns a terminal key press into a calculator token.
func decodeKey(msg tea.KeyMsg) (calculator.Token, bool) {
	name := msg.String()
	if mapped, ok := terminalKeys[name]; ok {
		name = mapped
	}
	return calculator.ParseKey(name)
}
