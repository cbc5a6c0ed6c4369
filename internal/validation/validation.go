// Package validation inspects a loaded collection for states the mutation
// contract should never produce, e.g. after a hand-edited storage file or
// an import from another tool. It only reports; repairing is left to the
// user, the store's own rules absorb invalid input at mutation time.
package validation

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/store"
)

type ConflictType string

const (
	ConflictOrphanHabit     ConflictType = "orphan_habit"
	ConflictDuplicateLogDay ConflictType = "duplicate_log_day"
	ConflictFutureLog       ConflictType = "future_log"
	ConflictInvalidTarget   ConflictType = "invalid_target"
	ConflictInvalidPeriod   ConflictType = "invalid_period"
	ConflictEmptyLabel      ConflictType = "empty_label"
)

type Conflict struct {
	Type    ConflictType
	Message string
}

type ValidationResult struct {
	Conflicts []Conflict
}

func (r ValidationResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateCollection checks every invariant the store enforces on the
// mutation path: live foreign keys, one log per calendar day, no logs
// after now, positive targets, known periods, non-empty labels.
func (v *Validator) ValidateCollection(c *store.Collection, now time.Time) ValidationResult {
	var result ValidationResult

	for _, identity := range c.Identities() {
		if identity.Label == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictEmptyLabel,
				Message: fmt.Sprintf("identity %s has an empty label", identity.ID),
			})
		}
	}

	for _, habit := range c.Habits() {
		if _, ok := c.Identity(habit.IdentityID); !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictOrphanHabit,
				Message: fmt.Sprintf("habit %q references missing identity %s", habit.Text, habit.IdentityID),
			})
		}
		if habit.Text == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictEmptyLabel,
				Message: fmt.Sprintf("habit %s has empty text", habit.ID),
			})
		}
		if habit.TargetCount < constants.MinTargetCount {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictInvalidTarget,
				Message: fmt.Sprintf("habit %q has target count %d, minimum is %d", habit.Text, habit.TargetCount, constants.MinTargetCount),
			})
		}
		switch habit.TargetPeriod {
		case "week", "month":
		default:
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictInvalidPeriod,
				Message: fmt.Sprintf("habit %q has unknown target period %q", habit.Text, habit.TargetPeriod),
			})
		}

		days := make(map[string]struct{}, len(habit.Logs))
		for _, log := range habit.Logs {
			day := log.Date.Format(constants.DayFormat)
			if _, dup := days[day]; dup {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:    ConflictDuplicateLogDay,
					Message: fmt.Sprintf("habit %q has more than one log on %s", habit.Text, day),
				})
			}
			days[day] = struct{}{}

			if log.Date.After(now) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:    ConflictFutureLog,
					Message: fmt.Sprintf("habit %q has a log in the future (%s)", habit.Text, day),
				})
			}
		}
	}

	return result
}
