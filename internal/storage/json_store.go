package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/store"
)

// document is the on-disk JSON layout: two named collections plus a
// format version. Missing keys load as empty collections; malformed JSON
// is an error the caller decides how to surface.
type document struct {
	Version    int               `json:"version"`
	Identities []models.Identity `json:"identities"`
	Habits     []models.Habit    `json:"habits"`
}

type JSONStore struct {
	path string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	return s.write(document{Version: 1})
}

func (s *JSONStore) Load() (*store.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage not initialized, run 'habitual init' first")
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse storage: %w", err)
	}

	return store.FromRecords(doc.Identities, doc.Habits), nil
}

func (s *JSONStore) Save(c *store.Collection) error {
	return s.write(document{
		Version:    1,
		Identities: c.Identities(),
		Habits:     c.Habits(),
	})
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines
//     without external synchronization.
//   - Running multiple habitual processes that share the same storage path
//     at the same time is not supported and may lead to data loss.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
