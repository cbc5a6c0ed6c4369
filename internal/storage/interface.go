package storage

import "github.com/julianstephens/habitual/internal/store"

// Provider persists the habit/identity collection. Saving is
// whole-snapshot: the collection is small and every mutation batch is
// followed by a single Save.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Persistence
	Load() (*store.Collection, error)
	Save(*store.Collection) error

	// Utils
	GetConfigPath() string
}
