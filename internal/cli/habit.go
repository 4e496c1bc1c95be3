package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

type HabitAddCmd struct {
	UserFlag `embed:""`

	Name        string `arg:"" help:"Habit name."`
	Description string `short:"D" help:"Optional description."`
	Category    string `short:"c" help:"Category (health, fitness, productivity, learning, social, mindfulness, creativity, other)." default:"other"`
	Color       string `help:"Hex color such as #10B981. Defaults to blue."`
	Frequency   string `short:"f" help:"Frequency (daily|weekly|custom)." enum:"daily,weekly,custom" default:"daily"`
	Every       int    `short:"e" help:"Custom interval, in --unit."`
	Unit        string `short:"u" help:"Custom interval unit (days|weeks)." enum:"days,weeks" default:"days"`
	Days        string `short:"w" help:"Comma-separated weekdays for a custom habit, e.g. mon,wed,fri."`
	Target      int    `short:"t" help:"Completions per period (1-10)." default:"1"`
}

func (c *HabitAddCmd) Input() (models.HabitInput, error) {
	in := models.HabitInput{
		Name:          c.Name,
		Color:         c.Color,
		Category:      c.Category,
		FrequencyType: c.Frequency,
		TargetCount:   c.Target,
	}
	if c.Description != "" {
		in.Description = &c.Description
	}

	if c.Days != "" || c.Every > 0 {
		in.FrequencyType = string(constants.FrequencyCustom)
	}
	if c.Days != "" {
		days, err := parseWeekdays(c.Days)
		if err != nil {
			return models.HabitInput{}, err
		}
		in.CustomSpecificDays = days
	} else if c.Every > 0 {
		in.CustomIntervalType = c.Unit
		in.CustomIntervalValue = c.Every
	}
	return in, nil
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}
	userID, err := ctx.UserID(c.User)
	if err != nil {
		return err
	}

	in, err := c.Input()
	if err != nil {
		return err
	}
	h, err := ctx.Service().CreateHabit(ctx.Ctx, userID, in)
	if err != nil {
		return err
	}

	ctx.printf("Added habit: %s (ID: %s)\n", h.Name, h.ID)
	return nil
}

type HabitListCmd struct {
	UserFlag `embed:""`

	All bool `short:"a" help:"Include paused habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}
	userID, err := ctx.UserID(c.User)
	if err != nil {
		return err
	}

	habits, err := ctx.Service().ListHabits(ctx.Ctx, userID, c.All)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.println("No habits found")
		return nil
	}

	ctx.println("Habits:")
	for _, h := range habits {
		ctx.println(formatHabit(h))
	}
	return nil
}

type HabitDueCmd struct {
	UserFlag `embed:""`
}

func (c *HabitDueCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}
	userID, err := ctx.UserID(c.User)
	if err != nil {
		return err
	}

	due, err := ctx.Service().DueHabits(ctx.Ctx, userID)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		ctx.println("Nothing due today")
		return nil
	}

	done := 0
	for _, h := range due {
		if h.IsCompletedToday {
			done++
		}
		ctx.println(formatHabit(h))
	}
	ctx.printf("\n%d of %d done\n", done, len(due))
	return nil
}

func formatHabit(h models.HabitView) string {
	mark := " "
	if h.IsCompletedToday {
		mark = "✓"
	}
	when := "due today"
	if !h.IsDueToday {
		when = "next " + h.NextDueDate.String()
	}
	line := fmt.Sprintf("  [%s] %s - %s, %s (%s)", mark, h.Name, h.FrequencyDescription, h.CategoryOrDefault(), when)
	if !h.IsActive {
		line += " [paused]"
	}
	return line + "\n      ID: " + h.ID
}

type HabitToggleCmd struct {
	UserFlag `embed:""`

	ID   string `arg:"" help:"Habit ID."`
	Date string `short:"d" help:"Date to toggle (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}
	userID, err := ctx.UserID(c.User)
	if err != nil {
		return err
	}

	res, err := ctx.Service().ToggleCompletion(ctx.Ctx, userID, c.ID, c.Date)
	if err != nil {
		return err
	}
	if res.IsCompleted {
		ctx.printf("✓ Marked done for %s\n", res.Date)
	} else {
		ctx.printf("○ Unmarked for %s\n", res.Date)
	}
	return nil
}

type HabitDeleteCmd struct {
	UserFlag `embed:""`

	ID  string `arg:"" help:"Habit ID."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
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

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q and all of its completions?", h.Name)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.println("Delete cancelled.")
			return nil
		}
	}

	if err := svc.DeleteHabit(ctx.Ctx, userID, c.ID); err != nil {
		return err
	}
	ctx.printf("Deleted habit: %s\n", h.Name)
	return nil
}

type HabitStatsCmd struct {
	UserFlag `embed:""`

	ID   string `arg:"" help:"Habit ID."`
	JSON bool   `help:"Print as JSON."`
}

func (c *HabitStatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}
	userID, err := ctx.UserID(c.User)
	if err != nil {
		return err
	}

	stats, err := ctx.Service().HabitStats(ctx.Ctx, userID, c.ID)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(ctx, stats)
	}

	ctx.printf("Current streak:   %d days\n", stats.CurrentStreak)
	ctx.printf("Longest streak:   %d days\n", stats.LongestStreak)
	ctx.printf("Completion rate:  %d%% (%s)\n", stats.CompletionRate, stats.Rating)
	ctx.printf("This week:        %d\n", stats.CompletionsThisWeek)
	ctx.printf("This month:       %d\n", stats.CompletionsThisMonth)
	ctx.printf("Total:            %d\n", stats.TotalCompletions)
	if m := stats.Milestone; m != nil {
		ctx.printf("\n%s %s %s\n", m.Emoji, m.Title, m.Message)
	}
	return nil
}

func writeJSON(ctx *Context, v any) error {
	enc := json.NewEncoder(ctx.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}
