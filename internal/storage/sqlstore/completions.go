package sqlstore

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

func (s *Store) ToggleCompletion(ctx context.Context, c models.Completion) (models.ToggleResult, error) {
	result := models.ToggleResult{Success: true, Date: c.CompletionDate}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := s.getCompletion(ctx, tx, c.UserID, c.HabitID, c.CompletionDate)
		switch {
		case err == nil:
			if _, err := s.exec(ctx, tx, s.sb.Delete("habit_completions").Where(sq.Eq{"id": existing.ID})); err != nil {
				return err
			}
			result.IsCompleted = false
			result.Completion = nil
			return nil
		case errors.Is(err, storage.ErrNotFound):
			if _, err := s.exec(ctx, tx, s.sb.Insert("habit_completions").
				Columns(completionColumns...).
				Values(completionValues(c)...)); err != nil {
				return err
			}
			result.IsCompleted = true
			result.Completion = &c
			return nil
		default:
			return err
		}
	})
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, storage.ErrDuplicate) {
		return models.ToggleResult{}, err
	}

	// Another request inserted the row between our read and write. The
	// caller wanted it completed and it is, so report that state.
	logger.Debug("Toggle lost insert race, reconciling", "habit", c.HabitID, "date", c.CompletionDate)
	existing, gerr := s.getCompletion(ctx, s.db, c.UserID, c.HabitID, c.CompletionDate)
	if gerr != nil {
		return models.ToggleResult{}, gerr
	}
	return models.ToggleResult{Success: true, IsCompleted: true, Completion: &existing, Date: c.CompletionDate}, nil
}

func (s *Store) GetCompletion(ctx context.Context, userID, habitID string, day models.Day) (models.Completion, error) {
	return s.getCompletion(ctx, s.db, userID, habitID, day)
}

func (s *Store) getCompletion(ctx context.Context, q queryer, userID, habitID string, day models.Day) (models.Completion, error) {
	var row completionRow
	err := s.get(ctx, q, &row, s.sb.Select(completionColumns...).
		From("habit_completions").
		Where(sq.Eq{"habit_id": habitID, "user_id": userID, "completion_date": day}))
	if err != nil {
		return models.Completion{}, err
	}
	return row.model()
}

func (s *Store) ListCompletions(ctx context.Context, userID, habitID string, from, to models.Day) ([]models.Completion, error) {
	where := sq.And{sq.Eq{"user_id": userID}}
	if habitID != "" {
		where = append(where, sq.Eq{"habit_id": habitID})
	}
	if from != "" {
		where = append(where, sq.GtOrEq{"completion_date": from})
	}
	if to != "" {
		where = append(where, sq.LtOrEq{"completion_date": to})
	}

	var rows []completionRow
	err := s.selectRows(ctx, s.db, &rows, s.sb.Select(completionColumns...).
		From("habit_completions").
		Where(where).
		OrderBy("completion_date", "created_at"))
	if err != nil {
		return nil, err
	}

	out := make([]models.Completion, 0, len(rows))
	for _, r := range rows {
		c, err := r.model()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) CountCompletions(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.get(ctx, s.db, &n, s.sb.Select("COUNT(*)").
		From("habit_completions").
		Where(sq.Eq{"user_id": userID}))
	return n, err
}

func (s *Store) CompletedHabitIDs(ctx context.Context, userID string, day models.Day) (map[string]bool, error) {
	var ids []string
	err := s.selectRows(ctx, s.db, &ids, s.sb.Select("habit_id").
		From("habit_completions").
		Where(sq.Eq{"user_id": userID, "completion_date": day}))
	if err != nil {
		return nil, err
	}

	done := make(map[string]bool, len(ids))
	for _, id := range ids {
		done[id] = true
	}
	return done, nil
}
