package cli

type DebugCmd struct {
	DBPath        *DebugDBPathCmd        `cmd:"" help:"Show database path."`
	DumpHabit     *DebugDumpHabitCmd     `cmd:"" help:"Dump habit data as JSON."`
	DumpAnalytics *DebugDumpAnalyticsCmd `cmd:"" help:"Dump the analytics snapshot as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return writeJSON(ctx, map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpHabitCmd struct {
	UserFlag `embed:""`

	ID          string `arg:"" help:"ID of the habit to dump."`
	Completions bool   `help:"Include every completion of the habit."`
}

type habitDump struct {
	Habit       any `json:"habit"`
	Completions any `json:"completions,omitempty"`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}
	userID, err := ctx.UserID(cmd.User)
	if err != nil {
		return err
	}

	svc := ctx.Service()
	h, err := svc.GetHabit(ctx.Ctx, userID, cmd.ID)
	if err != nil {
		return err
	}
	dump := habitDump{Habit: h}
	if cmd.Completions {
		completions, err := svc.Completions(ctx.Ctx, userID, cmd.ID, "", "")
		if err != nil {
			return err
		}
		dump.Completions = completions
	}
	return writeJSON(ctx, dump)
}

type DebugDumpAnalyticsCmd struct {
	UserFlag `embed:""`
}

func (cmd *DebugDumpAnalyticsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}
	userID, err := ctx.UserID(cmd.User)
	if err != nil {
		return err
	}

	snap, err := ctx.Service().Analytics(ctx.Ctx, userID)
	if err != nil {
		return err
	}
	return writeJSON(ctx, snap)
}
