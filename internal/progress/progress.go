// Package progress computes habit and identity completion statistics and
// consecutive-day streaks. Every function is pure: it reads a snapshot and
// an explicit reference time, never the host clock, so window boundaries
// and streak lapsing are deterministic under test.
package progress

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// Stats is a raw progress pair: how many logged days fell inside the
// active window versus how many the target expects by now. Callers decide
// whether to clamp when turning the pair into a percentage; Percent is
// the clamped rendering.
type Stats struct {
	Count  int
	Target int
}

// HabitStats computes a habit's progress in the window selected by mode,
// relative to now.
//
// Week mode counts logged days in the fixed 7-day window starting at the
// most recent WeekStart midnight; the target is the habit's full weekly
// count no matter where now falls inside the week. Month mode counts
// logged days from the 1st of the month through now, with the target
// prorated by elapsed days so a habit that is caught up to today reads
// 100% before month end:
//
//   - monthly habits expect round(dayOfMonth/daysInMonth * targetCount)
//   - weekly habits expect one full week's count per elapsed 7-day block,
//     counting a partial final block as a whole one
//
// The month target never drops below 1.
func HabitStats(habit models.Habit, now time.Time, mode models.ViewMode) Stats {
	if mode == models.ViewWeek {
		start := WeekWindowStart(now)
		end := start.AddDate(0, 0, constants.DaysPerWeek)
		count := countDays(habit.Logs, func(d time.Time) bool {
			return !d.Before(start) && d.Before(end)
		})
		return Stats{Count: count, Target: habit.TargetCount}
	}

	start := monthStart(now)
	count := countDays(habit.Logs, func(d time.Time) bool {
		return !d.Before(start) && !d.After(now)
	})

	expected := 1
	daysElapsed := now.Day()
	switch habit.TargetPeriod {
	case models.PeriodMonth:
		ratio := float64(daysElapsed) / float64(daysInMonth(now))
		expected = int(math.Round(ratio * float64(habit.TargetCount)))
	case models.PeriodWeek:
		weeksElapsed := (daysElapsed + constants.DaysPerWeek - 1) / constants.DaysPerWeek
		expected = weeksElapsed * habit.TargetCount
	}
	if expected < 1 {
		expected = 1
	}
	return Stats{Count: count, Target: expected}
}

// IdentityStats sums raw counts and targets across the identity's habits.
// Aggregation is additive, not an average of percentages: a habit with a
// large target weighs proportionally more than one with a small target.
func IdentityStats(identityID string, habits []models.Habit, now time.Time, mode models.ViewMode) Stats {
	var total Stats
	for _, habit := range habits {
		if habit.IdentityID != identityID {
			continue
		}
		s := HabitStats(habit, now, mode)
		total.Count += s.Count
		total.Target += s.Target
	}
	return total
}

// Percent renders stats as a percentage clamped to [0, 100].
func Percent(s Stats) int {
	if s.Target < 1 {
		return 0
	}
	p := int(math.Round(float64(s.Count) / float64(s.Target) * 100))
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return p
}

// Streak returns the current consecutive-day streak as of now. Distinct
// logged days are walked newest first; each step may be on the same
// calendar day as the cursor or exactly one day earlier, anything larger
// breaks the chain. Accepting a zero-day step keeps a streak alive when
// today has not been logged yet, so a streak that ran through yesterday
// still reads as alive all day.
func Streak(habit models.Habit, now time.Time) int {
	days := distinctDays(habit.Logs)
	streak := 0
	cursor := now
	for _, day := range days {
		diff := daysBetween(day, cursor)
		if diff == 0 || diff == 1 {
			streak++
			cursor = day
		} else {
			break
		}
	}
	return streak
}

// WeekWindowStart returns the most recent WeekStart midnight at or before
// now, i.e. the lower bound of the week view window.
func WeekWindowStart(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := int(now.Weekday() - constants.WeekStart)
	return day.AddDate(0, 0, -offset)
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func daysInMonth(now time.Time) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
}

// countDays counts the distinct local calendar days among logs whose
// timestamp satisfies in.
func countDays(logs []models.Log, in func(time.Time) bool) int {
	seen := make(map[string]struct{})
	for _, log := range logs {
		if in(log.Date) {
			seen[log.Date.Format(constants.DayFormat)] = struct{}{}
		}
	}
	return len(seen)
}

// distinctDays returns the distinct local calendar days carrying a log,
// newest first.
func distinctDays(logs []models.Log) []time.Time {
	seen := make(map[string]time.Time, len(logs))
	for _, log := range logs {
		d := log.Date
		seen[d.Format(constants.DayFormat)] = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}
	days := make([]time.Time, 0, len(seen))
	for _, day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// daysBetween returns the number of calendar days from earlier to later.
// Dates are normalized to UTC midnights first so DST transitions cannot
// skew the count.
func daysBetween(earlier, later time.Time) int {
	e := time.Date(earlier.Year(), earlier.Month(), earlier.Day(), 0, 0, 0, 0, time.UTC)
	l := time.Date(later.Year(), later.Month(), later.Day(), 0, 0, 0, 0, time.UTC)
	return int(l.Sub(e).Hours() / 24)
}
