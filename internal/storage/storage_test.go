package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/store"
)

func testProviders(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "habitual.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "habitual.db")),
	}
}

func seedCollection(t *testing.T) *store.Collection {
	t.Helper()
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	c := store.NewCollection()
	identity, ok := c.AddIdentity("🧗 I'm a great climber")
	if !ok {
		t.Fatal("failed to seed identity")
	}
	habit, ok := c.AddHabit(identity.ID, "Hangboard session", 3, models.PeriodWeek, "💪")
	if !ok {
		t.Fatal("failed to seed habit")
	}
	c.LogOccurrence(habit.ID, now.AddDate(0, 0, -1), now)
	c.LogOccurrence(habit.ID, now, now)
	return c
}

func TestProviderRoundTrip(t *testing.T) {
	for name, provider := range testProviders(t) {
		t.Run(name, func(t *testing.T) {
			if err := provider.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer provider.Close()

			seeded := seedCollection(t)
			if err := provider.Save(seeded); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := provider.Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			wantIdentities := seeded.Identities()
			gotIdentities := loaded.Identities()
			if len(gotIdentities) != len(wantIdentities) {
				t.Fatalf("loaded %d identities, want %d", len(gotIdentities), len(wantIdentities))
			}
			if gotIdentities[0] != wantIdentities[0] {
				t.Errorf("identity round trip mismatch: %+v != %+v", gotIdentities[0], wantIdentities[0])
			}

			wantHabits := seeded.Habits()
			gotHabits := loaded.Habits()
			if len(gotHabits) != 1 {
				t.Fatalf("loaded %d habits, want 1", len(gotHabits))
			}
			got, want := gotHabits[0], wantHabits[0]
			if got.ID != want.ID || got.IdentityID != want.IdentityID || got.Text != want.Text ||
				got.TargetCount != want.TargetCount || got.TargetPeriod != want.TargetPeriod || got.Emoji != want.Emoji {
				t.Errorf("habit round trip mismatch: %+v != %+v", got, want)
			}
			if len(got.Logs) != len(want.Logs) {
				t.Fatalf("loaded %d logs, want %d", len(got.Logs), len(want.Logs))
			}
			for i := range got.Logs {
				if !got.Logs[i].Date.Equal(want.Logs[i].Date) {
					t.Errorf("log %d: %v != %v", i, got.Logs[i].Date, want.Logs[i].Date)
				}
			}
		})
	}
}

func TestProviderLoadBeforeInit(t *testing.T) {
	for name, provider := range testProviders(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := provider.Load(); err == nil {
				t.Error("expected an error for uninitialized storage")
			}
		})
	}
}

func TestProviderInitTwice(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONStore(filepath.Join(dir, "habitual.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Init(); err == nil {
		t.Error("expected second Init to refuse an existing file")
	}
}

func TestJSONStore_ToleratesMissingCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitual.json")
	if err := os.WriteFile(path, []byte(`{"version": 1}`), 0600); err != nil {
		t.Fatal(err)
	}

	c, err := NewJSONStore(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(c.Identities()) != 0 || len(c.Habits()) != 0 {
		t.Error("expected empty collections for missing keys")
	}
}

func TestJSONStore_MalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitual.json")
	if err := os.WriteFile(path, []byte(`{"identities": [`), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewJSONStore(path).Load(); err == nil {
		t.Error("expected a parse error for malformed storage")
	}
}

func TestSQLiteStore_SaveDropsDeletedRecords(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "habitual.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer s.Close()

	c := seedCollection(t)
	if err := s.Save(c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Deleting the identity cascades in memory; the next save must not
	// resurrect the habit or its logs.
	identity := c.Identities()[0]
	c.DeleteIdentity(identity.ID)
	if err := s.Save(c); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Identities()) != 0 || len(loaded.Habits()) != 0 {
		t.Errorf("expected empty store, got %d identities and %d habits",
			len(loaded.Identities()), len(loaded.Habits()))
	}
}
