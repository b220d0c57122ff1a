package form

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MaxHistory is how many share links are remembered
const MaxHistory = 6

// History is the list of recently shared query strings, most recent first
type History struct {
	Entries []string `yaml:"entries"`
}

// Push records query as the most recent entry, dropping an older copy of it
// and anything past MaxHistory. Empty queries are ignored.
func (h *History) Push(query string) {
	if query == "" {
		return
	}
	entries := make([]string, 0, MaxHistory)
	entries = append(entries, query)
	for _, e := range h.Entries {
		if e == query {
			continue
		}
		if len(entries) == MaxHistory {
			break
		}
		entries = append(entries, e)
	}
	h.Entries = entries
}

// DefaultHistoryPath is history.yaml under the user's config directory
func DefaultHistoryPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "devnagringa", "history.yaml"), nil
}

// LoadHistory reads a history file. A missing file is an empty history.
func LoadHistory(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &History{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history %s: %w", path, err)
	}

	var h History
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}

	// Re-push so a hand-edited file still honours the limits
	clean := &History{}
	for i := len(h.Entries) - 1; i >= 0; i-- {
		clean.Push(h.Entries[i])
	}
	return clean, nil
}

// SaveHistory writes h to path, creating parent directories
func SaveHistory(path string, h *History) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}
	data, err := yaml.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history %s: %w", path, err)
	}
	return nil
}
