// Package instructions persists the user's custom system-prompt override.
// When no override file exists the embedded default prompt applies.
package instructions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BadrBouzakri/AI-Agent/assets"
	"github.com/BadrBouzakri/AI-Agent/internal/domain"
	"github.com/BadrBouzakri/AI-Agent/internal/ports"
)

// Store reads and writes the override file.
type Store struct {
	path string
}

// NewStore builds a Store rooted at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

var _ ports.InstructionStore = (*Store)(nil)

// Load returns the active system instructions and whether they come from a
// user override. A missing or empty override file means the embedded default
// is in effect.
func (s *Store) Load() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return assets.DefaultSystemPrompt, false, nil
		}
		return assets.DefaultSystemPrompt, false, fmt.Errorf("read system prompt %s: %w", s.path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return assets.DefaultSystemPrompt, false, nil
	}
	return text, true, nil
}

// Save persists text as the new override.
func (s *Store) Save(text string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(strings.TrimSpace(text)+"\n"), domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write system prompt: %w", err)
	}
	return nil
}

// Reset removes the override so the embedded default applies again.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove system prompt override: %w", err)
	}
	return nil
}

// Path returns the override file location.
func (s *Store) Path() string {
	return s.path
}
