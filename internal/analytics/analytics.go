// Package analytics turns completion rows into overview metrics. Nothing here
// reads the clock or performs I/O; callers pass rows and the current time.
package analytics

import (
	"math"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// Input holds the rows one snapshot is computed from. All rows belong to the
// same user. Nil slices are treated as empty.
type Input struct {
	Habits           []models.Habit      // active habits
	Today            []models.Completion // completion_date == today
	Week             []models.Completion // today-6 .. today
	Month            []models.Completion // today-29 .. today
	TotalCompletions int                 // lifetime row count
}

// Compute builds the analytics snapshot as of now. The calendar date of now,
// in now's location, is "today".
func Compute(in Input, now time.Time) models.AnalyticsSnapshot {
	today := models.DayOf(now)
	total := len(in.Habits)

	return models.AnalyticsSnapshot{
		Overview: models.Overview{
			TotalHabits:          total,
			TodayCompletionRate:  todayRate(in.Today, total),
			CurrentStreak:        currentStreak(in.Week, today),
			TotalCompletions:     in.TotalCompletions,
			WeeklyCompletionRate: percent(len(distinctDates(in.Week)), constants.WeekWindowDays),
		},
		Breakdown:   models.Breakdown{Categories: Categories(in.Habits)},
		Heatmap:     Heatmap(in.Month),
		LastUpdated: now,
	}
}

// Partition splits a flat read of the last thirty days into the today, week
// and month windows Compute expects. Rows outside the month window are dropped.
func Partition(rows []models.Completion, today models.Day) (todayRows, weekRows, monthRows []models.Completion) {
	weekStart := today.AddDays(-(constants.WeekWindowDays - 1))
	monthStart := today.AddDays(-(constants.HeatmapWindowDays - 1))

	for _, r := range rows {
		d := r.CompletionDate
		if d > today || d < monthStart {
			continue
		}
		monthRows = append(monthRows, r)
		if d >= weekStart {
			weekRows = append(weekRows, r)
		}
		if d == today {
			todayRows = append(todayRows, r)
		}
	}
	return todayRows, weekRows, monthRows
}

func todayRate(rows []models.Completion, totalHabits int) int {
	if totalHabits == 0 {
		return 0
	}
	habits := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		habits[r.HabitID] = struct{}{}
	}
	return percent(len(habits), totalHabits)
}

// currentStreak counts consecutive days with any completion walking back from
// today. An empty today adds nothing but does not end the walk; an empty
// earlier day does.
func currentStreak(rows []models.Completion, today models.Day) int {
	byDate := make(map[models.Day]map[string]struct{})
	for _, r := range rows {
		set, ok := byDate[r.CompletionDate]
		if !ok {
			set = make(map[string]struct{})
			byDate[r.CompletionDate] = set
		}
		set[r.HabitID] = struct{}{}
	}
	return walkStreak(today, constants.StreakWindowDays, func(d models.Day) bool {
		return len(byDate[d]) > 0
	})
}

func walkStreak(today models.Day, window int, done func(models.Day) bool) int {
	streak := 0
	for i := range window {
		if done(today.AddDays(-i)) {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

func distinctDates(rows []models.Completion) map[models.Day]struct{} {
	dates := make(map[models.Day]struct{}, len(rows))
	for _, r := range rows {
		dates[r.CompletionDate] = struct{}{}
	}
	return dates
}

// Categories counts habits per category; a missing category counts as "other".
func Categories(habits []models.Habit) map[string]int {
	out := make(map[string]int)
	for _, h := range habits {
		out[h.CategoryOrDefault()]++
	}
	return out
}

// Heatmap counts completion rows per date. Rows are not deduplicated by habit.
func Heatmap(rows []models.Completion) map[models.Day]int {
	out := make(map[models.Day]int)
	for _, r := range rows {
		out[r.CompletionDate]++
	}
	return out
}

func percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}
