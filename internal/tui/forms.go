package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/models"
)

// NewIdentityForm creates a form for adding an identity goal
func NewIdentityForm(fm *IdentityFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Identity").
				Description("Who do you want to become? e.g. \"a writer\"").
				Value(&fm.Label).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("identity label cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewHabitForm creates a form for adding or editing a habit
func NewHabitForm(fm *HabitFormModel, identities []models.Identity) *huh.Form {
	identityOptions := make([]huh.Option[string], len(identities))
	for i, identity := range identities {
		identityOptions[i] = huh.NewOption(identity.Label, identity.ID)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Identity").
				Options(identityOptions...).
				Value(&fm.IdentityID),
			huh.NewInput().
				Title("Habit").
				Value(&fm.Text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit text cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Target count").
				Value(&fm.Target).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i <= 0 {
						return fmt.Errorf("target must be a positive number")
					}
					return nil
				}),
			huh.NewSelect[models.Period]().
				Title("Per").
				Options(
					huh.NewOption("Week", models.PeriodWeek),
					huh.NewOption("Month", models.PeriodMonth),
				).
				Value(&fm.Period),
			huh.NewInput().
				Title("Emoji").
				Description("Optional").
				Value(&fm.Emoji),
		),
	).WithTheme(huh.ThemeDracula())
}
