package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/progress"
)

type IdentityAddCmd struct {
	Label string `arg:"" help:"Identity label, e.g. \"I'm a great climber\"."`
	Emoji string `short:"e" help:"Emoji prefixed to the label."`
}

func (c *IdentityAddCmd) Run(ctx *Context) error {
	collection, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	label := c.Label
	if c.Emoji != "" {
		label = c.Emoji + " " + label
	}

	identity, ok := collection.AddIdentity(label)
	if !ok {
		fmt.Println("Nothing added: the label is empty.")
		return nil
	}

	if err := ctx.Store.Save(collection); err != nil {
		return err
	}

	fmt.Printf("Added identity: %s (ID: %s)\n", identity.Label, identity.ID)
	return nil
}

type IdentityEditCmd struct {
	Identity string `arg:"" help:"Identity id, id prefix, or label."`
	Label    string `arg:"" help:"New label."`
}

func (c *IdentityEditCmd) Run(ctx *Context) error {
	collection, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	identity, err := findIdentity(collection, c.Identity)
	if err != nil {
		return err
	}

	collection.RenameIdentity(identity.ID, c.Label)
	if err := ctx.Store.Save(collection); err != nil {
		return err
	}

	renamed, _ := collection.Identity(identity.ID)
	fmt.Printf("Renamed identity to: %s\n", renamed.Label)
	return nil
}

type IdentityDeleteCmd struct {
	Identity string `arg:"" help:"Identity id, id prefix, or label."`
}

func (c *IdentityDeleteCmd) Run(ctx *Context) error {
	collection, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	identity, err := findIdentity(collection, c.Identity)
	if err != nil {
		return err
	}

	removed := len(collection.HabitsFor(identity.ID))
	collection.DeleteIdentity(identity.ID)
	if err := ctx.Store.Save(collection); err != nil {
		return err
	}

	fmt.Printf("Deleted identity %s and %d habit(s)\n", identity.Label, removed)
	return nil
}

type IdentityListCmd struct {
	Mode string `short:"m" help:"Progress window (week|month)." default:"week" enum:"week,month"`
	Date string `short:"d" help:"Reference date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *IdentityListCmd) Run(ctx *Context) error {
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

	identities := collection.Identities()
	if len(identities) == 0 {
		fmt.Println("No identities yet. Add one with 'habitual identity add'.")
		return nil
	}

	habits := collection.Habits()
	for _, identity := range identities {
		stats := progress.IdentityStats(identity.ID, habits, now, mode)
		fmt.Printf("%-40s %s %d out of %d (%d%%)  [%s]\n",
			identity.Label,
			renderBar(progress.Percent(stats), 10),
			stats.Count, stats.Target, progress.Percent(stats),
			shortID(identity.ID),
		)
	}
	return nil
}
