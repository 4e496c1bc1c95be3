package service

import (
	"context"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/schedule"
	"github.com/julianstephens/habitual/internal/validation"
)

// ListHabits returns the user's habits newest first, annotated for today.
// Inactive habits are included only when includeInactive is set.
func (s *Service) ListHabits(ctx context.Context, userID string, includeInactive bool) ([]models.HabitView, error) {
	habits, err := s.store.ListHabits(ctx, userID, !includeInactive)
	if err != nil {
		return nil, storeErr("service.ListHabits", "Failed to fetch habits", "", err)
	}
	today := s.today()
	done, err := s.store.CompletedHabitIDs(ctx, userID, today)
	if err != nil {
		return nil, storeErr("service.ListHabits", "Failed to fetch habits", "", err)
	}

	now := s.clock()
	views := make([]models.HabitView, len(habits))
	for i, h := range habits {
		views[i] = view(h, done[h.ID], now)
	}
	return views, nil
}

// DueHabits returns the active habits scheduled for today.
func (s *Service) DueHabits(ctx context.Context, userID string) ([]models.HabitView, error) {
	all, err := s.ListHabits(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	due := all[:0]
	for _, v := range all {
		if v.IsDueToday {
			due = append(due, v)
		}
	}
	return due, nil
}

func view(h models.Habit, completed bool, now time.Time) models.HabitView {
	cfg := h.Frequency()
	return models.HabitView{
		Habit:                h,
		IsCompletedToday:     completed,
		IsDueToday:           schedule.IsDue(cfg, h.CreatedAt, now),
		NextDueDate:          models.DayOf(schedule.NextDueDate(cfg, h.CreatedAt, now)),
		FrequencyDescription: schedule.Describe(cfg),
	}
}

func (s *Service) GetHabit(ctx context.Context, userID, id string) (models.Habit, error) {
	if err := checkID(id); err != nil {
		return models.Habit{}, err
	}
	h, err := s.store.GetHabit(ctx, userID, id)
	if err != nil {
		return models.Habit{}, storeErr("service.GetHabit", "Failed to fetch habit", msgHabitNotFound, err)
	}
	return h, nil
}

func (s *Service) CreateHabit(ctx context.Context, userID string, in models.HabitInput) (models.Habit, error) {
	in, err := s.validate.Habit(in)
	if err != nil {
		return models.Habit{}, invalid(err)
	}

	now := s.now().UTC()
	h := models.Habit{
		ID:        s.newID(),
		UserID:    userID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(&h, in)
	if in.IsActive != nil {
		h.IsActive = *in.IsActive
	}

	if err := s.store.AddHabit(ctx, h); err != nil {
		return models.Habit{}, storeErr("service.CreateHabit", "Failed to create habit", "", err)
	}
	return h, nil
}

// UpdateHabit replaces every editable field of the habit with in, applying
// the same defaults as creation. is_active is left alone when absent.
func (s *Service) UpdateHabit(ctx context.Context, userID, id string, in models.HabitInput) (models.Habit, error) {
	if err := checkID(id); err != nil {
		return models.Habit{}, err
	}
	in, err := s.validate.Habit(in)
	if err != nil {
		return models.Habit{}, invalid(err)
	}

	h, err := s.store.GetHabit(ctx, userID, id)
	if err != nil {
		return models.Habit{}, storeErr("service.UpdateHabit", "Failed to update habit", msgHabitNotFound, err)
	}
	apply(&h, in)
	if in.IsActive != nil {
		h.IsActive = *in.IsActive
	}
	h.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateHabit(ctx, h); err != nil {
		return models.Habit{}, storeErr("service.UpdateHabit", "Failed to update habit", msgHabitNotFound, err)
	}
	return h, nil
}

// SetActive toggles the soft is_active flag without touching other fields.
func (s *Service) SetActive(ctx context.Context, userID, id string, active bool) (models.Habit, error) {
	if err := checkID(id); err != nil {
		return models.Habit{}, err
	}
	h, err := s.store.GetHabit(ctx, userID, id)
	if err != nil {
		return models.Habit{}, storeErr("service.SetActive", "Failed to update habit", msgHabitNotFound, err)
	}
	h.IsActive = active
	h.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateHabit(ctx, h); err != nil {
		return models.Habit{}, storeErr("service.SetActive", "Failed to update habit", msgHabitNotFound, err)
	}
	return h, nil
}

// DeleteHabit removes the habit and its completions.
func (s *Service) DeleteHabit(ctx context.Context, userID, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.store.DeleteHabit(ctx, userID, id); err != nil {
		return storeErr("service.DeleteHabit", "Failed to delete habit", msgHabitNotFound, err)
	}
	return nil
}

// apply copies validated input onto h.
func apply(h *models.Habit, in models.HabitInput) {
	h.Name = in.Name
	h.Description = in.Description
	h.Color = in.Color
	category := in.Category
	h.Category = &category
	h.FrequencyType = constants.FrequencyType(in.FrequencyType)
	h.TargetCount = in.TargetCount

	h.CustomIntervalType = nil
	h.CustomIntervalValue = nil
	h.CustomSpecificDays = validation.Weekdays(in.CustomSpecificDays)
	if in.CustomIntervalValue > 0 {
		unit := constants.IntervalUnit(in.CustomIntervalType)
		n := in.CustomIntervalValue
		h.CustomIntervalType = &unit
		h.CustomIntervalValue = &n
	}
}

func invalid(err error) error {
	if issues, ok := err.(validation.Issues); ok {
		return apperrors.Invalid(issues.First(), err)
	}
	return apperrors.Invalid(err.Error(), err)
}
