package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/store"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	// Run migrations
	runner := migration.NewRunner(s.db)
	if _, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// The cascade-delete foreign keys carry the referential integrity
	// between habits and identities; SQLite leaves them off by default.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Load() (*store.Collection, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, fmt.Errorf("storage not initialized, run 'habitual init' first")
	}

	if err := s.open(); err != nil {
		return nil, err
	}

	if err := migration.NewRunner(s.db).ValidateVersion(); err != nil {
		return nil, err
	}

	identities, err := s.loadIdentities()
	if err != nil {
		return nil, err
	}
	habits, err := s.loadHabits()
	if err != nil {
		return nil, err
	}

	return store.FromRecords(identities, habits), nil
}

func (s *SQLiteStore) loadIdentities() ([]models.Identity, error) {
	rows, err := s.db.Query("SELECT id, label FROM identities")
	if err != nil {
		return nil, fmt.Errorf("failed to load identities: %w", err)
	}
	defer rows.Close()

	var identities []models.Identity
	for rows.Next() {
		var identity models.Identity
		if err := rows.Scan(&identity.ID, &identity.Label); err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}
	return identities, rows.Err()
}

func (s *SQLiteStore) loadHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, identity_id, text, target_count, target_period, emoji
		FROM habits`)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	index := make(map[string]int)
	for rows.Next() {
		var h models.Habit
		var period string
		if err := rows.Scan(&h.ID, &h.IdentityID, &h.Text, &h.TargetCount, &period, &h.Emoji); err != nil {
			return nil, err
		}
		h.TargetPeriod = models.Period(period)
		h.Logs = []models.Log{}
		index[h.ID] = len(habits)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logRows, err := s.db.Query("SELECT habit_id, date FROM logs")
	if err != nil {
		return nil, fmt.Errorf("failed to load logs: %w", err)
	}
	defer logRows.Close()

	for logRows.Next() {
		var habitID, dateStr string
		if err := logRows.Scan(&habitID, &dateStr); err != nil {
			return nil, err
		}
		date, err := time.Parse(time.RFC3339Nano, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log date %q: %w", dateStr, err)
		}
		if i, ok := index[habitID]; ok {
			habits[i].Logs = append(habits[i].Logs, models.Log{Date: date.Local()})
		}
	}

	return habits, logRows.Err()
}

// Save replaces the stored snapshot with the collection's current state
// in one transaction. The dataset is a personal tracker's, so a full
// rewrite stays cheap and keeps deletes from needing their own bookkeeping.
func (s *SQLiteStore) Save(c *store.Collection) error {
	if err := s.open(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Children first so the cascade never fires mid-save.
	for _, table := range []string{"logs", "habits", "identities"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	identityStmt, err := tx.Prepare("INSERT INTO identities (id, label) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer identityStmt.Close()
	for _, identity := range c.Identities() {
		if _, err := identityStmt.Exec(identity.ID, identity.Label); err != nil {
			return fmt.Errorf("failed to save identity %s: %w", identity.ID, err)
		}
	}

	habitStmt, err := tx.Prepare(`
		INSERT INTO habits (id, identity_id, text, target_count, target_period, emoji)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer habitStmt.Close()

	logStmt, err := tx.Prepare("INSERT INTO logs (habit_id, date) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer logStmt.Close()

	for _, habit := range c.Habits() {
		_, err := habitStmt.Exec(habit.ID, habit.IdentityID, habit.Text,
			habit.TargetCount, string(habit.TargetPeriod), habit.Emoji)
		if err != nil {
			return fmt.Errorf("failed to save habit %s: %w", habit.ID, err)
		}
		for _, log := range habit.Logs {
			if _, err := logStmt.Exec(habit.ID, log.Date.Format(time.RFC3339Nano)); err != nil {
				return fmt.Errorf("failed to save log for habit %s: %w", habit.ID, err)
			}
		}
	}

	return tx.Commit()
}

// GetDB exposes the underlying connection for diagnostics.
func (s *SQLiteStore) GetDB() *sql.DB {
	if err := s.open(); err != nil {
		return nil
	}
	return s.db
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// GetConfigPath returns the path to the underlying database file. The
// same single-process caveat as JSONStore applies.
func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
