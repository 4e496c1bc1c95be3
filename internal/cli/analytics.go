package cli

import (
	"slices"
	"strings"
)

type AnalyticsCmd struct {
	UserFlag `embed:""`

	JSON bool `help:"Print the full snapshot as JSON."`
}

func (c *AnalyticsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}
	userID, err := ctx.UserID(c.User)
	if err != nil {
		return err
	}

	snap, err := ctx.Service().Analytics(ctx.Ctx, userID)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(ctx, snap)
	}

	o := snap.Overview
	ctx.printf("Active habits:      %d\n", o.TotalHabits)
	ctx.printf("Done today:         %d%%\n", o.TodayCompletionRate)
	ctx.printf("Current streak:     %d days\n", o.CurrentStreak)
	ctx.printf("Weekly completion:  %d%%\n", o.WeeklyCompletionRate)
	ctx.printf("Total completions:  %d\n", o.TotalCompletions)

	if len(snap.Breakdown.Categories) > 0 {
		ctx.println("\nCategories:")
		names := make([]string, 0, len(snap.Breakdown.Categories))
		for name := range snap.Breakdown.Categories {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			ctx.printf("  %-14s %d\n", name, snap.Breakdown.Categories[name])
		}
	}

	if len(snap.Heatmap) > 0 {
		days := make([]string, 0, len(snap.Heatmap))
		for d, n := range snap.Heatmap {
			days = append(days, d.String()+" "+strings.Repeat("■", n))
		}
		slices.Sort(days)
		ctx.println("\nLast 30 days:")
		for _, line := range days {
			ctx.println("  " + line)
		}
	}
	return nil
}
