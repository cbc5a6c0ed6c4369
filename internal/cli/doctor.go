package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/validation"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: storage reachable
	if err := checkStorageReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		storeReachable = true
	}

	// Check 2: schema version (SQLite backend only)
	if err := checkSchemaVersion(ctx); err != nil {
		fmt.Printf("❌ Schema version: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Schema version: OK\n")
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 4: data validation (only if storage is reachable)
	if storeReachable {
		if err := checkValidation(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (storage not reachable)\n")
	}

	// Check 5: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	// Check 6: no concurrent habitual process (warning only)
	if err := checkSingleProcess(); err != nil {
		fmt.Printf("⚠ Single process: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single process: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	_, err := ctx.Store.Load()
	return err
}

func checkSchemaVersion(ctx *Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// JSON store carries its version inline; nothing to check.
		return nil
	}
	if _, err := os.Stat(ctx.Store.GetConfigPath()); os.IsNotExist(err) {
		return fmt.Errorf("database not initialized")
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	return migration.NewRunner(db).ValidateVersion()
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'habitual backup create'")
	}
	if time.Since(backups[0].Timestamp) > 7*24*time.Hour {
		return fmt.Errorf("newest backup is older than a week (%s)", backups[0].Timestamp.Format("2006-01-02"))
	}
	return nil
}

func checkValidation(ctx *Context) error {
	collection, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	result := validation.New().ValidateCollection(collection, time.Now())
	if result.HasConflicts() {
		lines := make([]string, 0, len(result.Conflicts))
		for _, conflict := range result.Conflicts {
			lines = append(lines, fmt.Sprintf("[%s] %s", conflict.Type, conflict.Message))
		}
		return fmt.Errorf("%d conflict(s):\n   %s", len(result.Conflicts), strings.Join(lines, "\n   "))
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	// Streak and window math degenerates on a wildly wrong clock.
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reads %s, which is implausibly old", now.Format(time.RFC3339))
	}
	return nil
}

// checkSingleProcess warns when another habitual process is running:
// sharing one storage file across processes can lose writes.
func checkSingleProcess() error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == "habitual" {
			return fmt.Errorf("another habitual process is running (pid %d); concurrent use of the same storage is unsupported", p.Pid())
		}
	}
	return nil
}
