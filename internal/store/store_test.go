package store

import (
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestCollection(t *testing.T) (*Collection, models.Identity, models.Habit) {
	t.Helper()
	c := NewCollection()
	identity, ok := c.AddIdentity("I'm a great climber")
	if !ok {
		t.Fatal("failed to add identity")
	}
	habit, ok := c.AddHabit(identity.ID, "Hangboard session", 3, models.PeriodWeek, "🧗")
	if !ok {
		t.Fatal("failed to add habit")
	}
	return c, identity, habit
}

func TestAddIdentity_TrimsLabel(t *testing.T) {
	c := NewCollection()

	identity, ok := c.AddIdentity("  I'm a runner  ")
	if !ok {
		t.Fatal("expected identity to be created")
	}
	if identity.Label != "I'm a runner" {
		t.Errorf("expected trimmed label, got %q", identity.Label)
	}
	if identity.ID == "" {
		t.Error("expected a fresh id")
	}
}

func TestAddIdentity_RejectsEmptyLabel(t *testing.T) {
	c := NewCollection()

	if _, ok := c.AddIdentity("   "); ok {
		t.Error("expected blank label to be declined")
	}
	if len(c.Identities()) != 0 {
		t.Errorf("expected no identities, got %d", len(c.Identities()))
	}
}

func TestDeleteIdentity_CascadesToHabits(t *testing.T) {
	c, identity, _ := newTestCollection(t)

	other, _ := c.AddIdentity("I'm a reader")
	kept, _ := c.AddHabit(other.ID, "Read 20 pages", 5, models.PeriodWeek, "")
	c.AddHabit(identity.ID, "Climb outdoors", 2, models.PeriodMonth, "")

	c.DeleteIdentity(identity.ID)

	if _, ok := c.Identity(identity.ID); ok {
		t.Error("expected identity to be removed")
	}
	for _, habit := range c.Habits() {
		if habit.IdentityID == identity.ID {
			t.Errorf("orphaned habit left behind: %s", habit.Text)
		}
	}
	if _, ok := c.Habit(kept.ID); !ok {
		t.Error("habit of another identity should survive the cascade")
	}
}

func TestRenameIdentity(t *testing.T) {
	c, identity, _ := newTestCollection(t)

	c.RenameIdentity(identity.ID, "I'm a boulderer")
	got, _ := c.Identity(identity.ID)
	if got.Label != "I'm a boulderer" {
		t.Errorf("expected renamed label, got %q", got.Label)
	}

	// Unknown id and blank label are both silent no-ops.
	c.RenameIdentity("nope", "whatever")
	c.RenameIdentity(identity.ID, "   ")
	got, _ = c.Identity(identity.ID)
	if got.Label != "I'm a boulderer" {
		t.Errorf("label changed by invalid rename: %q", got.Label)
	}
}

func TestAddHabit_RequiresExistingIdentity(t *testing.T) {
	c := NewCollection()

	if _, ok := c.AddHabit("missing", "Stretch", 1, models.PeriodWeek, ""); ok {
		t.Error("expected habit for unknown identity to be declined")
	}
	if len(c.Habits()) != 0 {
		t.Errorf("expected no habits, got %d", len(c.Habits()))
	}
}

func TestAddHabit_RejectsEmptyText(t *testing.T) {
	c, identity, _ := newTestCollection(t)

	before := len(c.Habits())
	if _, ok := c.AddHabit(identity.ID, "  ", 1, models.PeriodWeek, ""); ok {
		t.Error("expected blank text to be declined")
	}
	if len(c.Habits()) != before {
		t.Errorf("habit count changed: %d -> %d", before, len(c.Habits()))
	}
}

func TestAddHabit_FloorsTargetCount(t *testing.T) {
	c, identity, _ := newTestCollection(t)

	habit, ok := c.AddHabit(identity.ID, "Meditate", 0, models.PeriodMonth, "")
	if !ok {
		t.Fatal("expected habit to be created")
	}
	if habit.TargetCount != 1 {
		t.Errorf("expected target floored to 1, got %d", habit.TargetCount)
	}
}

func TestEditHabit(t *testing.T) {
	c, _, habit := newTestCollection(t)

	text := "Hangboard twice"
	count := 5
	period := models.PeriodMonth
	emoji := "💪"
	c.EditHabit(habit.ID, HabitUpdate{Text: &text, TargetCount: &count, TargetPeriod: &period, Emoji: &emoji})

	got, _ := c.Habit(habit.ID)
	if got.Text != text || got.TargetCount != count || got.TargetPeriod != period || got.Emoji != emoji {
		t.Errorf("unexpected habit after edit: %+v", got)
	}
}

func TestEditHabit_PartialUpdate(t *testing.T) {
	c, _, habit := newTestCollection(t)

	count := 0
	blank := "   "
	c.EditHabit(habit.ID, HabitUpdate{Text: &blank, TargetCount: &count})

	got, _ := c.Habit(habit.ID)
	if got.Text != habit.Text {
		t.Errorf("blank text should not overwrite, got %q", got.Text)
	}
	if got.TargetCount != 1 {
		t.Errorf("expected target floored to 1, got %d", got.TargetCount)
	}
	if got.TargetPeriod != habit.TargetPeriod || got.Emoji != habit.Emoji {
		t.Error("untouched fields should be preserved")
	}
}

func TestEditHabit_UnknownIDNoop(t *testing.T) {
	c, _, _ := newTestCollection(t)

	text := "ghost"
	c.EditHabit("missing", HabitUpdate{Text: &text})
	if len(c.Habits()) != 1 {
		t.Errorf("expected collection unchanged, got %d habits", len(c.Habits()))
	}
}

func TestLogOccurrence_IdempotentPerDay(t *testing.T) {
	c, _, habit := newTestCollection(t)

	morning := testNow.Add(-3 * time.Hour)
	evening := testNow.Add(-1 * time.Hour)
	c.LogOccurrence(habit.ID, morning, testNow)
	c.LogOccurrence(habit.ID, morning, testNow)
	c.LogOccurrence(habit.ID, evening, testNow)

	got, _ := c.Habit(habit.ID)
	if len(got.Logs) != 1 {
		t.Errorf("expected one log for the day, got %d", len(got.Logs))
	}
}

func TestLogOccurrence_RejectsFutureDate(t *testing.T) {
	c, _, habit := newTestCollection(t)

	c.LogOccurrence(habit.ID, testNow.AddDate(0, 0, 1), testNow)

	got, _ := c.Habit(habit.ID)
	if len(got.Logs) != 0 {
		t.Errorf("expected future log to be declined, got %d logs", len(got.Logs))
	}
}

func TestLogOccurrence_UnknownHabitNoop(t *testing.T) {
	c, _, _ := newTestCollection(t)
	c.LogOccurrence("missing", testNow, testNow) // must not panic
}

func TestDeleteLog_ExactTimestampMatch(t *testing.T) {
	c, _, habit := newTestCollection(t)

	logged := testNow.Add(-2 * time.Hour)
	c.LogOccurrence(habit.ID, logged, testNow)

	// Same calendar day, different instant: no match, no removal.
	c.DeleteLog(habit.ID, logged.Add(time.Minute))
	got, _ := c.Habit(habit.ID)
	if len(got.Logs) != 1 {
		t.Fatalf("log removed by inexact match, %d logs left", len(got.Logs))
	}

	c.DeleteLog(habit.ID, logged)
	got, _ = c.Habit(habit.ID)
	if len(got.Logs) != 0 {
		t.Errorf("expected log removed, got %d", len(got.Logs))
	}
}

func TestFromRecords_InitializesNilLogs(t *testing.T) {
	identities := []models.Identity{{ID: "i1", Label: "I'm a writer"}}
	habits := []models.Habit{{ID: "h1", IdentityID: "i1", Text: "Write", TargetCount: 1, TargetPeriod: models.PeriodWeek}}

	c := FromRecords(identities, habits)

	got, ok := c.Habit("h1")
	if !ok {
		t.Fatal("expected habit to load")
	}
	if got.Logs == nil {
		t.Error("expected logs initialized to empty slice")
	}
}
