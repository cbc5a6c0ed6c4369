package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/progress"
)

type LogAddCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix, or text."`
	Date  string `arg:"" help:"Day to log (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *LogAddCmd) Run(ctx *Context) error {
	collection, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	habit, err := findHabit(collection, c.Habit)
	if err != nil {
		return err
	}

	now := time.Now()
	date, err := parseDay(c.Date, now)
	if err != nil {
		return err
	}

	before := len(habit.Logs)
	collection.LogOccurrence(habit.ID, date, now)
	after, _ := collection.Habit(habit.ID)

	if len(after.Logs) == before {
		// Future dates and already-logged days are absorbed silently by
		// the store; tell the user which it was.
		if date.After(now) {
			fmt.Println("Nothing logged: that day is in the future.")
		} else {
			fmt.Printf("Already logged %s on %s.\n", habitTitle(habit), date.Format(constants.DayFormat))
		}
		return nil
	}

	if err := ctx.Store.Save(collection); err != nil {
		return err
	}

	fmt.Printf("Logged %s on %s. Streak: %d\n",
		habitTitle(habit), date.Format(constants.DayFormat), progress.Streak(after, now))
	return nil
}

type LogDeleteCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix, or text."`
	Date  string `arg:"" help:"Day to unlog (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *LogDeleteCmd) Run(ctx *Context) error {
	collection, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	habit, err := findHabit(collection, c.Habit)
	if err != nil {
		return err
	}

	day, err := parseDay(c.Date, time.Now())
	if err != nil {
		return err
	}

	// Log removal matches the stored timestamp exactly, so look the
	// day's entry up first.
	dayKey := day.Format(constants.DayFormat)
	var match *models.Log
	for i := range habit.Logs {
		if habit.Logs[i].Date.Format(constants.DayFormat) == dayKey {
			match = &habit.Logs[i]
			break
		}
	}
	if match == nil {
		fmt.Printf("No log for %s on %s.\n", habitTitle(habit), dayKey)
		return nil
	}

	collection.DeleteLog(habit.ID, match.Date)
	if err := ctx.Store.Save(collection); err != nil {
		return err
	}

	fmt.Printf("Removed log for %s on %s.\n", habitTitle(habit), dayKey)
	return nil
}

type LogListCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix, or text."`
	Limit int    `short:"n" help:"Show at most this many entries (0 for all)." default:"10"`
}

func (c *LogListCmd) Run(ctx *Context) error {
	collection, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	habit, err := findHabit(collection, c.Habit)
	if err != nil {
		return err
	}

	if len(habit.Logs) == 0 {
		fmt.Printf("%s has no logs yet.\n", habitTitle(habit))
		return nil
	}

	logs := make([]models.Log, len(habit.Logs))
	copy(logs, habit.Logs)
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date.After(logs[j].Date) })

	now := time.Now()
	fmt.Printf("%s - %d log(s), streak %d\n", habitTitle(habit), len(logs), progress.Streak(habit, now))
	for i, log := range logs {
		if c.Limit > 0 && i >= c.Limit {
			fmt.Printf("  … and %d more\n", len(logs)-c.Limit)
			break
		}
		fmt.Printf("  %s\n", log.Date.Format(constants.DayFormat))
	}
	return nil
}
