package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/store"
)

type Context struct {
	Store storage.Provider
}

// autoBackupMaxAge is how stale the newest backup may be before the TUI
// startup takes a fresh one.
const autoBackupMaxAge = 24 * time.Hour

// PerformAutomaticBackup takes a backup if the newest one is older than a
// day. Failures are warnings; a missed backup must never block usage.
func (ctx *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backups, err := mgr.ListBackups()
	if err == nil && len(backups) > 0 && time.Since(backups[0].Timestamp) < autoBackupMaxAge {
		return
	}

	if _, err := mgr.CreateBackup(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: automatic backup failed: %v\n", err)
	}
}

func parsePeriod(s string) (models.Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week":
		return models.PeriodWeek, nil
	case "month":
		return models.PeriodMonth, nil
	default:
		return "", fmt.Errorf("invalid period %q, use week or month", s)
	}
}

func parseViewMode(s string) (models.ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week":
		return models.ViewWeek, nil
	case "month":
		return models.ViewMonth, nil
	default:
		return "", fmt.Errorf("invalid view mode %q, use week or month", s)
	}
}

// parseDay parses a YYYY-MM-DD argument or the literal "today". Explicit
// dates land on local midnight of that day.
func parseDay(s string, now time.Time) (time.Time, error) {
	if s == "" || s == "today" {
		return now, nil
	}
	day, err := time.ParseInLocation(constants.DayFormat, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return day, nil
}

// findIdentity resolves an identity by exact id, unique id prefix, or
// exact label.
func findIdentity(c *store.Collection, ref string) (models.Identity, error) {
	if identity, ok := c.Identity(ref); ok {
		return identity, nil
	}

	var matches []models.Identity
	for _, identity := range c.Identities() {
		if strings.HasPrefix(identity.ID, ref) || identity.Label == ref {
			matches = append(matches, identity)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Identity{}, fmt.Errorf("identity not found: %s", ref)
	default:
		return models.Identity{}, fmt.Errorf("identity reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// findHabit resolves a habit by exact id, unique id prefix, or exact text.
func findHabit(c *store.Collection, ref string) (models.Habit, error) {
	if habit, ok := c.Habit(ref); ok {
		return habit, nil
	}

	var matches []models.Habit
	for _, habit := range c.Habits() {
		if strings.HasPrefix(habit.ID, ref) || habit.Text == ref {
			matches = append(matches, habit)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("habit not found: %s", ref)
	default:
		return models.Habit{}, fmt.Errorf("habit reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func habitTitle(habit models.Habit) string {
	if habit.Emoji != "" {
		return habit.Emoji + " " + habit.Text
	}
	return habit.Text
}

// shortID trims a uuid down to its first group for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// renderBar draws a fixed-width text progress bar like [██████░░░░].
func renderBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
