package service

import (
	"context"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
)

// ToggleCompletion flips the completion of habit id on date. An empty date
// means today in the service's timezone; future dates are rejected.
func (s *Service) ToggleCompletion(ctx context.Context, userID, id, date string) (models.ToggleResult, error) {
	if err := checkID(id); err != nil {
		return models.ToggleResult{}, err
	}

	today := s.today()
	day := today
	if date != "" {
		d, err := models.ParseDay(date)
		if err != nil {
			return models.ToggleResult{}, apperrors.Invalid("Invalid date, expected YYYY-MM-DD", err)
		}
		if d > today {
			return models.ToggleResult{}, apperrors.Invalid("Cannot complete a habit in the future", nil)
		}
		day = d
	}

	if _, err := s.store.GetHabit(ctx, userID, id); err != nil {
		return models.ToggleResult{}, storeErr("service.ToggleCompletion", "Failed to check completion status", msgHabitNotFound, err)
	}

	now := s.now().UTC()
	res, err := s.store.ToggleCompletion(ctx, models.Completion{
		ID:             s.newID(),
		HabitID:        id,
		UserID:         userID,
		CompletionDate: day,
		Quantity:       1,
		CompletedAt:    now,
		CreatedAt:      now,
	})
	if err != nil {
		return models.ToggleResult{}, storeErr("service.ToggleCompletion", "Failed to toggle completion", msgHabitNotFound, err)
	}
	return res, nil
}

// Completions lists a habit's completions between from and to inclusive.
// Empty bounds are unbounded.
func (s *Service) Completions(ctx context.Context, userID, id string, from, to models.Day) ([]models.Completion, error) {
	if _, err := s.GetHabit(ctx, userID, id); err != nil {
		return nil, err
	}
	rows, err := s.store.ListCompletions(ctx, userID, id, from, to)
	if err != nil {
		return nil, storeErr("service.Completions", "Failed to fetch completions", "", err)
	}
	return rows, nil
}
