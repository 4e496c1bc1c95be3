package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false

	// Load also checks the schema version against the embedded migrations.
	if err := checkDatabase(ctx); err != nil {
		ctx.printf("❌ Database: FAIL\n")
		ctx.printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.printf("✓ Database: OK (%s)\n", ctx.Store.GetConfigPath())
	}

	// Warning only.
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.printf("⚠ Backups present: WARNING\n")
		ctx.printf("   %v\n", err)
	} else {
		ctx.printf("✓ Backups present: OK\n")
	}

	if keyring.IsAvailable() {
		ctx.printf("✓ OS keyring: OK\n")
	} else {
		ctx.printf("⚠ OS keyring: WARNING\n")
		ctx.printf("   not available, pass --jwt-secret to 'habitual serve'\n")
	}

	if err := checkClockTimezone(ctx); err != nil {
		ctx.printf("❌ Clock/timezone: FAIL\n")
		ctx.printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.printf("✓ Clock/timezone: OK (%s)\n", ctx.Location)
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkDatabase(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	// A cheap query proves the connection works.
	if _, err := ctx.Store.CountCompletions(ctx.Ctx, ""); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitual backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now()
	if ctx.Now != nil {
		now = ctx.Now()
	}

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Location == nil {
		return fmt.Errorf("no timezone configured")
	}
	if ctx.Location == time.UTC {
		ctx.printf("   Note: 'today' is computed in UTC, set --timezone to change it\n")
	}
	return nil
}
