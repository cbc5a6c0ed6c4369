package store

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// Collection holds the canonical identity and habit records, keyed by id.
//
// Mutations that fail validation (empty labels, unknown ids, future or
// duplicate-day logs) silently decline instead of returning an error: the
// surrounding UI treats invalid input as "nothing happened", not as a
// failure to report. Callers that need to know whether a create succeeded
// get an ok bool.
//
// Collection is not safe for concurrent use; like the rest of habitual it
// runs on a single event loop.
type Collection struct {
	identities map[string]models.Identity
	habits     map[string]models.Habit
}

func NewCollection() *Collection {
	return &Collection{
		identities: make(map[string]models.Identity),
		habits:     make(map[string]models.Habit),
	}
}

// FromRecords builds a collection from persisted records. Records are
// taken as-is; the persistence layer is trusted to have saved a state that
// the mutation contract produced.
func FromRecords(identities []models.Identity, habits []models.Habit) *Collection {
	c := NewCollection()
	for _, identity := range identities {
		c.identities[identity.ID] = identity
	}
	for _, habit := range habits {
		if habit.Logs == nil {
			habit.Logs = []models.Log{}
		}
		c.habits[habit.ID] = habit
	}
	return c
}

// AddIdentity creates a new identity with a fresh id. Labels that are
// empty after trimming are declined.
func (c *Collection) AddIdentity(label string) (models.Identity, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return models.Identity{}, false
	}
	identity := models.Identity{ID: uuid.New().String(), Label: label}
	c.identities[identity.ID] = identity
	return identity, true
}

// DeleteIdentity removes the identity and cascades to every habit that
// belongs to it, so no habit is ever left orphaned.
func (c *Collection) DeleteIdentity(id string) {
	delete(c.identities, id)
	for habitID, habit := range c.habits {
		if habit.IdentityID == id {
			delete(c.habits, habitID)
		}
	}
}

// RenameIdentity replaces the identity's label. Unknown ids and labels
// that are empty after trimming are declined.
func (c *Collection) RenameIdentity(id, label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}
	identity, ok := c.identities[id]
	if !ok {
		return
	}
	identity.Label = label
	c.identities[id] = identity
}

// AddHabit creates a habit under an existing identity with an empty log
// set. Empty text and unknown identities are declined. The target count
// is floored at MinTargetCount.
func (c *Collection) AddHabit(identityID, text string, targetCount int, period models.Period, emoji string) (models.Habit, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Habit{}, false
	}
	if _, ok := c.identities[identityID]; !ok {
		return models.Habit{}, false
	}
	habit := models.Habit{
		ID:           uuid.New().String(),
		IdentityID:   identityID,
		Text:         text,
		TargetCount:  clampTarget(targetCount),
		TargetPeriod: period,
		Emoji:        emoji,
		Logs:         []models.Log{},
	}
	c.habits[habit.ID] = habit
	return habit, true
}

func (c *Collection) DeleteHabit(id string) {
	delete(c.habits, id)
}

// HabitUpdate carries the fields EditHabit may change. Nil fields are
// left untouched.
type HabitUpdate struct {
	Text         *string
	TargetCount  *int
	TargetPeriod *models.Period
	Emoji        *string
}

// EditHabit applies the non-nil fields of the update. Unknown ids are
// declined, as is a text update that is empty after trimming.
func (c *Collection) EditHabit(id string, update HabitUpdate) {
	habit, ok := c.habits[id]
	if !ok {
		return
	}
	if update.Text != nil {
		if text := strings.TrimSpace(*update.Text); text != "" {
			habit.Text = text
		}
	}
	if update.TargetCount != nil {
		habit.TargetCount = clampTarget(*update.TargetCount)
	}
	if update.TargetPeriod != nil {
		habit.TargetPeriod = *update.TargetPeriod
	}
	if update.Emoji != nil {
		habit.Emoji = *update.Emoji
	}
	c.habits[id] = habit
}

// LogOccurrence appends a log for the given date. Dates strictly after
// now are declined, and a day that already carries a log stays unchanged,
// so logging is idempotent per calendar day.
func (c *Collection) LogOccurrence(habitID string, date, now time.Time) {
	habit, ok := c.habits[habitID]
	if !ok {
		return
	}
	if date.After(now) {
		return
	}
	for _, log := range habit.Logs {
		if sameDay(log.Date, date) {
			return
		}
	}
	habit.Logs = append(habit.Logs, models.Log{Date: date})
	c.habits[habitID] = habit
}

// DeleteLog removes the log whose stored timestamp matches date exactly.
// Absent logs and unknown habits are declined.
func (c *Collection) DeleteLog(habitID string, date time.Time) {
	habit, ok := c.habits[habitID]
	if !ok {
		return
	}
	for i, log := range habit.Logs {
		if log.Date.Equal(date) {
			habit.Logs = append(habit.Logs[:i], habit.Logs[i+1:]...)
			c.habits[habitID] = habit
			return
		}
	}
}

func (c *Collection) Identity(id string) (models.Identity, bool) {
	identity, ok := c.identities[id]
	return identity, ok
}

// Identities returns all identities sorted by label.
func (c *Collection) Identities() []models.Identity {
	identities := make([]models.Identity, 0, len(c.identities))
	for _, identity := range c.identities {
		identities = append(identities, identity)
	}
	sort.Slice(identities, func(i, j int) bool {
		if identities[i].Label != identities[j].Label {
			return identities[i].Label < identities[j].Label
		}
		return identities[i].ID < identities[j].ID
	})
	return identities
}

func (c *Collection) Habit(id string) (models.Habit, bool) {
	habit, ok := c.habits[id]
	return habit, ok
}

// Habits returns all habits sorted by text.
func (c *Collection) Habits() []models.Habit {
	habits := make([]models.Habit, 0, len(c.habits))
	for _, habit := range c.habits {
		habits = append(habits, habit)
	}
	sort.Slice(habits, func(i, j int) bool {
		if habits[i].Text != habits[j].Text {
			return habits[i].Text < habits[j].Text
		}
		return habits[i].ID < habits[j].ID
	})
	return habits
}

// HabitsFor returns the identity's habits sorted by text.
func (c *Collection) HabitsFor(identityID string) []models.Habit {
	var habits []models.Habit
	for _, habit := range c.Habits() {
		if habit.IdentityID == identityID {
			habits = append(habits, habit)
		}
	}
	return habits
}

func clampTarget(count int) int {
	if count < constants.MinTargetCount {
		return constants.MinTargetCount
	}
	return count
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
