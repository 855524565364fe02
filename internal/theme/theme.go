// Package theme persists the light/dark preference of the calculator UI.
// The calculator core knows nothing about it.
package theme

import "fmt"

// StorageKey is the preference key the mode is stored under.
const StorageKey = "calc-theme"

type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// Default is the mode used when nothing has been saved.
const Default = Dark

func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// ParseMode accepts "light" or "dark".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Store loads and saves the preferred mode.
type Store interface {
	Load() (Mode, error)
	Save(Mode) error
}
