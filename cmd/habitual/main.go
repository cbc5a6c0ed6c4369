package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/habitual/habitual.db"`

	Init   cli.InitCmd   `cmd:"" help:"Initialize habitual storage."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status cli.StatusCmd `cmd:"" help:"Show progress toward identity goals."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks on storage and data."`

	Identity struct {
		Add    cli.IdentityAddCmd    `cmd:"" help:"Add an identity goal."`
		Edit   cli.IdentityEditCmd   `cmd:"" help:"Rename an identity goal."`
		Delete cli.IdentityDeleteCmd `cmd:"" help:"Delete an identity goal and its habits."`
		List   cli.IdentityListCmd   `cmd:"" help:"List identity goals with progress."`
	} `cmd:"" help:"Manage identity goals."`

	Habit struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a habit under an identity."`
		Edit   cli.HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit and its logs."`
		List   cli.HabitListCmd   `cmd:"" help:"List habits with progress."`
	} `cmd:"" help:"Manage habits."`

	Log struct {
		Add    cli.LogAddCmd    `cmd:"" help:"Log a habit occurrence."`
		Delete cli.LogDeleteCmd `cmd:"" help:"Remove a logged occurrence."`
		List   cli.LogListCmd   `cmd:"" help:"List logged occurrences for a habit."`
	} `cmd:"" help:"Manage habit logs."`

	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the storage file."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore storage from a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitual"),
		kong.Description("Identity-based habit tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
