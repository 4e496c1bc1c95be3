package analytics

import (
	"slices"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/schedule"
	"github.com/julianstephens/habitual/internal/utils"
)

// HabitStreak is the current streak of a single habit, looking back at most
// thirty days with the same today rule as the overall streak.
func HabitStreak(completions []models.Completion, today models.Day) int {
	dates := distinctDates(completions)
	return walkStreak(today, constants.HabitStreakWindowDays, func(d models.Day) bool {
		_, ok := dates[d]
		return ok
	})
}

// LongestStreak is the longest run of consecutive completion dates.
func LongestStreak(completions []models.Completion) int {
	dates := make([]models.Day, 0, len(completions))
	for d := range distinctDates(completions) {
		dates = append(dates, d)
	}
	slices.Sort(dates)

	longest, run := 0, 0
	for i, d := range dates {
		if i > 0 && dates[i-1].AddDays(1) == d {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// Milestone returns the highest streak milestone reached, or nil.
func Milestone(streak int) *constants.Milestone {
	var reached *constants.Milestone
	for i := range constants.StreakMilestones {
		if streak >= constants.StreakMilestones[i].Days {
			m := constants.StreakMilestones[i]
			reached = &m
		}
	}
	return reached
}

// Rating grades a completion rate percentage.
func Rating(rate int) string {
	switch {
	case rate >= constants.RatingExcellentThreshold:
		return constants.RatingExcellent
	case rate >= constants.RatingGoodThreshold:
		return constants.RatingGood
	case rate >= constants.RatingFairThreshold:
		return constants.RatingFair
	default:
		return constants.RatingPoor
	}
}

// HabitStats summarizes one habit's completions. today must be midnight of
// the user's current date; the completion rate covers the last thirty days,
// starting no earlier than the habit's creation date.
func HabitStats(h models.Habit, completions []models.Completion, today time.Time) models.HabitStats {
	todayDay := models.DayOf(today)
	weekStart := todayDay.AddDays(-(constants.WeekWindowDays - 1))
	monthStart := todayDay.AddDays(-(constants.HabitStreakWindowDays - 1))

	days := make([]models.Day, 0, len(completions))
	var thisWeek, thisMonth int
	for _, c := range completions {
		days = append(days, c.CompletionDate)
		if c.CompletionDate > todayDay {
			continue
		}
		if c.CompletionDate >= weekStart {
			thisWeek++
		}
		if c.CompletionDate >= monthStart {
			thisMonth++
		}
	}

	start := utils.AddDays(today, -(constants.HabitStreakWindowDays - 1))
	if created := utils.DateIn(h.CreatedAt, today.Location()); created.After(start) {
		start = created
	}
	rate := schedule.Progress(h.Frequency(), h.CreatedAt, days, start, today)
	streak := HabitStreak(completions, todayDay)

	return models.HabitStats{
		HabitID:              h.ID,
		CurrentStreak:        streak,
		LongestStreak:        LongestStreak(completions),
		CompletionRate:       rate,
		TotalCompletions:     len(completions),
		CompletionsThisWeek:  thisWeek,
		CompletionsThisMonth: thisMonth,
		Milestone:            Milestone(streak),
		Rating:               Rating(rate),
	}
}
