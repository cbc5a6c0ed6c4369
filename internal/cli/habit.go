package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/progress"
	"github.com/julianstephens/habitual/internal/store"
)

type HabitAddCmd struct {
	Identity string `arg:"" help:"Identity id, id prefix, or label the habit belongs to."`
	Text     string `arg:"" help:"Habit text, e.g. \"Go for a run\"."`
	Target   int    `short:"t" help:"Occurrences expected per period." default:"1"`
	Period   string `short:"p" help:"Target period (week|month)." default:"week" enum:"week,month"`
	Emoji    string `short:"e" help:"Display emoji."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	collection, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	identity, err := findIdentity(collection, c.Identity)
	if err != nil {
		return err
	}
	period, err := parsePeriod(c.Period)
	if err != nil {
		return err
	}

	habit, ok := collection.AddHabit(identity.ID, c.Text, c.Target, period, c.Emoji)
	if !ok {
		fmt.Println("Nothing added: the habit text is empty.")
		return nil
	}

	if err := ctx.Store.Save(collection); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s - %d/%s under %s (ID: %s)\n",
		habitTitle(habit), habit.TargetCount, habit.TargetPeriod, identity.Label, habit.ID)
	return nil
}

type HabitEditCmd struct {
	Habit  string  `arg:"" help:"Habit id, id prefix, or text."`
	Text   *string `help:"New habit text."`
	Target *int    `short:"t" help:"New target count."`
	Period *string `short:"p" help:"New target period (week|month)." enum:"week,month"`
	Emoji  *string `short:"e" help:"New display emoji."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	collection, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	habit, err := findHabit(collection, c.Habit)
	if err != nil {
		return err
	}

	update := store.HabitUpdate{
		Text:        c.Text,
		TargetCount: c.Target,
		Emoji:       c.Emoji,
	}
	if c.Period != nil {
		period, err := parsePeriod(*c.Period)
		if err != nil {
			return err
		}
		update.TargetPeriod = &period
	}

	collection.EditHabit(habit.ID, update)
	if err := ctx.Store.Save(collection); err != nil {
		return err
	}

	edited, _ := collection.Habit(habit.ID)
	fmt.Printf("Updated habit: %s - %d/%s\n", habitTitle(edited), edited.TargetCount, edited.TargetPeriod)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix, or text."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	collection, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	habit, err := findHabit(collection, c.Habit)
	if err != nil {
		return err
	}

	collection.DeleteHabit(habit.ID)
	if err := ctx.Store.Save(collection); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habitTitle(habit))
	return nil
}

type HabitListCmd struct {
	Identity string `short:"i" help:"Only habits of this identity (id, prefix, or label)."`
	Mode     string `short:"m" help:"Progress window (week|month)." default:"week" enum:"week,month"`
	Date     string `short:"d" help:"Reference date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	collection, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	mode, err := parseViewMode(c.Mode)
	if err != nil {
		return err
	}
	now, err := parseDay(c.Date, time.Now())
	if err != nil {
		return err
	}

	habits := collection.Habits()
	if c.Identity != "" {
		identity, err := findIdentity(collection, c.Identity)
		if err != nil {
			return err
		}
		habits = collection.HabitsFor(identity.ID)
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		stats := progress.HabitStats(habit, now, mode)
		streak := progress.Streak(habit, now)
		fmt.Printf("%-36s %s %d/%d  🔥 %d  [%s]\n",
			habitTitle(habit),
			renderBar(progress.Percent(stats), 10),
			stats.Count, stats.Target, streak,
			shortID(habit.ID),
		)
	}
	return nil
}
