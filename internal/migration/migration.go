// Package migration applies versioned schema migrations to the SQLite
// storage backend. Migration files are embedded in the binary and named
// NNN_description.sql; the current schema version is tracked with SQLite's
// user_version pragma.
package migration

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed sql/*.sql
var migrationFS embed.FS

// Migration is a single schema step.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner applies migrations to a database.
type Runner struct {
	db *sql.DB
}

func NewRunner(db *sql.DB) *Runner {
	return &Runner{db: db}
}

// GetCurrentVersion returns the schema version recorded in the database
// (0 for a fresh database).
func (r *Runner) GetCurrentVersion() (int, error) {
	var version int
	if err := r.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SetVersion records the schema version in the database.
func (r *Runner) SetVersion(version int) error {
	// PRAGMA arguments cannot be bound as parameters.
	if _, err := r.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

// ReadMigrations returns the embedded migrations sorted by version.
func (r *Runner) ReadMigrations() ([]Migration, error) {
	entries, err := migrationFS.ReadDir("sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %q is not named NNN_description.sql", name)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %q has a non-numeric version prefix: %w", name, err)
		}

		content, err := migrationFS.ReadFile(path.Join("sql", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %q: %w", name, err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

// LatestVersion returns the highest embedded migration version.
func (r *Runner) LatestVersion() (int, error) {
	migrations, err := r.ReadMigrations()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		return 0, nil
	}
	return migrations[len(migrations)-1].Version, nil
}

// ApplyMigrations runs every pending migration in version order inside a
// transaction each, reporting progress through the callback. It returns
// the number of migrations applied.
func (r *Runner) ApplyMigrations(progress func(string)) (int, error) {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, err
	}

	migrations, err := r.ReadMigrations()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := r.db.Begin()
		if err != nil {
			return applied, fmt.Errorf("failed to begin transaction for %s: %w", m.Name, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("migration %s failed: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("failed to commit %s: %w", m.Name, err)
		}

		if err := r.SetVersion(m.Version); err != nil {
			return applied, err
		}
		applied++
		if progress != nil {
			progress(fmt.Sprintf("Applied migration %s", m.Name))
		}
	}

	return applied, nil
}

// ValidateVersion checks that the database schema matches the migrations
// this binary knows about: not behind (pending migrations) and not ahead
// (written by a newer habitual).
func (r *Runner) ValidateVersion() error {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := r.LatestVersion()
	if err != nil {
		return err
	}

	if current < latest {
		return fmt.Errorf("schema version %d is behind expected %d, run 'habitual init' or apply pending migrations", current, latest)
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than this build supports (%d); upgrade habitual", current, latest)
	}
	return nil
}
