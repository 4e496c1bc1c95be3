package cli

type HabitScheduleCmd struct {
	UserFlag `embed:""`

	ID   string `arg:"" help:"Habit ID."`
	From string `help:"First date (YYYY-MM-DD). Defaults to today."`
	To   string `help:"Last date (YYYY-MM-DD). Defaults to 29 days after --from."`
}

func (c *HabitScheduleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}
	userID, err := ctx.UserID(c.User)
	if err != nil {
		return err
	}

	svc := ctx.Service()
	h, err := svc.GetHabit(ctx.Ctx, userID, c.ID)
	if err != nil {
		return err
	}
	sched, err := svc.Schedule(ctx.Ctx, userID, c.ID, c.From, c.To)
	if err != nil {
		return err
	}

	ctx.printf("Due dates for %s:\n\n", h.Name)
	if len(sched.Dates) == 0 {
		ctx.println("  None in range")
	}
	for _, d := range sched.Dates {
		t, err := d.Time(ctx.Location)
		if err != nil {
			return err
		}
		ctx.printf("  %s  %s\n", d, t.Weekday().String()[:3])
	}
	ctx.printf("\nNext due: %s\n", sched.NextDueDate)
	return nil
}
