package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/utils"
)

var CLI struct {
	cli.Globals

	Serve   cli.ServeCmd   `cmd:"" help:"Serve the habit API over HTTP."`
	Migrate cli.MigrateCmd `cmd:"" help:"Create the database and apply migrations."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI."`
	User    struct {
		Add cli.UserAddCmd `cmd:"" help:"Create an account."`
	} `cmd:"" help:"Manage accounts."`
	Habit struct {
		Add      cli.HabitAddCmd      `cmd:"" help:"Add a habit."`
		List     cli.HabitListCmd     `cmd:"" help:"List habits."`
		Due      cli.HabitDueCmd      `cmd:"" help:"Show habits due today."`
		Toggle   cli.HabitToggleCmd   `cmd:"" help:"Mark or unmark a habit done."`
		Delete   cli.HabitDeleteCmd   `cmd:"" help:"Delete a habit and its completions."`
		Stats    cli.HabitStatsCmd    `cmd:"" help:"Show streaks and completion rate."`
		Schedule cli.HabitScheduleCmd `cmd:"" help:"Show upcoming due dates."`
	} `cmd:"" help:"Manage and track habits."`
	Analytics cli.AnalyticsCmd `cmd:"" help:"Show the analytics overview."`
	Keyring   struct {
		SetSecret    cli.KeyringSetSecretCmd    `cmd:"" help:"Store the token signing secret."`
		DeleteSecret cli.KeyringDeleteSecretCmd `cmd:"" help:"Delete the token signing secret."`
		SetDB        cli.KeyringSetDBCmd        `cmd:"" name:"set-db" help:"Store the PostgreSQL connection string."`
		Status       cli.KeyringStatusCmd       `cmd:"" help:"Show keyring availability and contents."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage SQLite database backups."`
	Debug cli.DebugCmd `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker: schedules, streaks and analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, constants.DefaultConfigFile),
		kong.Vars{
			"version":       constants.Version,
			"default_db":    constants.DefaultConfigPath,
			"default_cache": constants.DefaultCachePath,
		},
	)

	if err := logger.Init(logger.Config{
		Debug: CLI.Debug,
		Level: CLI.LogLevel,
		Dir:   CLI.LogDir,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		apperrors.Fatal(err)
	}

	store, err := cli.OpenStore(CLI.DB)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Ctx:      context.Background(),
		Store:    store,
		Location: loc,
		Out:      os.Stdout,
	}

	err = ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close store", "error", cerr)
	}
	apperrors.Fatal(err)
}
