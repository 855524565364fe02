package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSON-backed preferences. One flat object of string keys, so other
// preferences written to the same file survive a theme change.

const (
	appDirName   = "calcpad"
	prefFileName = "preferences.json"
)

type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns preferences.json under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, prefFileName), nil
}

func (s *FileStore) Path() string { return s.path }

// Load returns the saved mode, or Default when nothing usable is saved.
func (s *FileStore) Load() (Mode, error) {
	prefs, err := s.read()
	if err != nil {
		return Default, err
	}
	if prefs[StorageKey] == string(Light) {
		return Light, nil
	}
	return Default, nil
}

func (s *FileStore) Save(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	prefs, err := s.read()
	if err != nil {
		return err
	}
	prefs[StorageKey] = string(m)

	b, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	prefs := map[string]string{}
	if err := json.Unmarshal(b, &prefs); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return prefs, nil
}
