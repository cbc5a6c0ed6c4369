package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/progress"
	"github.com/julianstephens/habitual/internal/validation"
)

type StatusCmd struct {
	Mode string `short:"m" help:"Progress window (week|month)." default:"week" enum:"week,month"`
	Date string `short:"d" help:"Reference date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *StatusCmd) Run(ctx *Context) error {
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

	if mode == models.ViewWeek {
		start := progress.WeekWindowStart(now)
		fmt.Printf("Progress - week of %s\n\n", start.Format(constants.DayFormat))
	} else {
		fmt.Printf("Progress - %s to date\n\n", now.Format("January 2006"))
	}

	identities := collection.Identities()
	if len(identities) == 0 {
		fmt.Println("No identities yet. Add one with 'habitual identity add'.")
		return nil
	}

	habits := collection.Habits()
	for _, identity := range identities {
		stats := progress.IdentityStats(identity.ID, habits, now, mode)
		fmt.Printf("%s\n", identity.Label)
		fmt.Printf("  %s %d out of %d (%d%%)\n",
			renderBar(progress.Percent(stats), 20),
			stats.Count, stats.Target, progress.Percent(stats))

		for _, habit := range collection.HabitsFor(identity.ID) {
			hs := progress.HabitStats(habit, now, mode)
			streak := progress.Streak(habit, now)
			flame := ""
			if streak > 0 {
				flame = fmt.Sprintf("  🔥 %d", streak)
			}
			fmt.Printf("    %-32s %d/%d%s\n", habitTitle(habit), hs.Count, hs.Target, flame)
		}
		fmt.Println()
	}

	if result := validation.New().ValidateCollection(collection, now); result.HasConflicts() {
		fmt.Printf("⚠ %d validation warning(s), run 'habitual doctor' for details\n", len(result.Conflicts))
	}
	return nil
}
