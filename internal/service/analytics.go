package service

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/schedule"
	"github.com/julianstephens/habitual/internal/utils"
)

// maxScheduleDays bounds the range Schedule will enumerate.
const maxScheduleDays = 366

// ScheduleView lists a habit's due dates over a range.
type ScheduleView struct {
	Dates       []models.Day `json:"dates"`
	NextDueDate models.Day   `json:"nextDueDate"`
}

// Analytics computes the user's overview from their active habits and the
// last thirty days of completions.
func (s *Service) Analytics(ctx context.Context, userID string) (models.AnalyticsSnapshot, error) {
	now := s.clock()
	today := models.DayOf(now)

	habits, err := s.store.ListHabits(ctx, userID, true)
	if err != nil {
		return models.AnalyticsSnapshot{}, storeErr("service.Analytics", "Failed to fetch habits", "", err)
	}
	rows, err := s.store.ListCompletions(ctx, userID, "", today.AddDays(-(constants.HeatmapWindowDays - 1)), today)
	if err != nil {
		return models.AnalyticsSnapshot{}, storeErr("service.Analytics", "Failed to fetch recent completions", "", err)
	}
	total, err := s.store.CountCompletions(ctx, userID)
	if err != nil {
		return models.AnalyticsSnapshot{}, storeErr("service.Analytics", "Failed to fetch all completions", "", err)
	}

	todayRows, weekRows, monthRows := analytics.Partition(rows, today)
	return analytics.Compute(analytics.Input{
		Habits:           habits,
		Today:            todayRows,
		Week:             weekRows,
		Month:            monthRows,
		TotalCompletions: total,
	}, now), nil
}

// HabitStats summarizes one habit's full completion history.
func (s *Service) HabitStats(ctx context.Context, userID, id string) (models.HabitStats, error) {
	h, err := s.GetHabit(ctx, userID, id)
	if err != nil {
		return models.HabitStats{}, err
	}
	today := utils.DateIn(s.now(), s.loc)
	rows, err := s.store.ListCompletions(ctx, userID, id, "", models.DayOf(today))
	if err != nil {
		return models.HabitStats{}, storeErr("service.HabitStats", "Failed to fetch completions", "", err)
	}
	return analytics.HabitStats(h, rows, today), nil
}

// Schedule lists the dates habit id is due between start and end inclusive.
// Empty bounds default to today and thirty days from start.
func (s *Service) Schedule(ctx context.Context, userID, id, start, end string) (ScheduleView, error) {
	from, to, err := s.scheduleRange(start, end)
	if err != nil {
		return ScheduleView{}, err
	}
	h, err := s.GetHabit(ctx, userID, id)
	if err != nil {
		return ScheduleView{}, err
	}

	cfg := h.Frequency()
	dates := []models.Day{}
	for d := range schedule.EnumerateDue(cfg, h.CreatedAt, from, to) {
		dates = append(dates, models.DayOf(d))
	}
	return ScheduleView{
		Dates:       dates,
		NextDueDate: models.DayOf(schedule.NextDueDate(cfg, h.CreatedAt, s.clock())),
	}, nil
}

func (s *Service) scheduleRange(start, end string) (from, to time.Time, err error) {
	from = utils.DateIn(s.now(), s.loc)
	if start != "" {
		if from, err = utils.ParseDateInLocation(start, s.loc); err != nil {
			return from, to, apperrors.Invalid("Invalid start date, expected YYYY-MM-DD", err)
		}
	}
	to = utils.AddDays(from, constants.HeatmapWindowDays-1)
	if end != "" {
		if to, err = utils.ParseDateInLocation(end, s.loc); err != nil {
			return from, to, apperrors.Invalid("Invalid end date, expected YYYY-MM-DD", err)
		}
	}

	switch n := utils.DaysBetween(from, to); {
	case n < 0:
		return from, to, apperrors.Invalid("End date must not be before start date", nil)
	case n >= maxScheduleDays:
		return from, to, apperrors.Invalid(fmt.Sprintf("Schedule range is limited to %d days", maxScheduleDays), nil)
	}
	return from, to, nil
}
