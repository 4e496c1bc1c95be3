package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

func (s *Store) AddHabit(ctx context.Context, h models.Habit) error {
	_, err := s.exec(ctx, s.db, s.sb.Insert("habits").
		Columns(habitColumns...).
		Values(habitValues(h)...))
	return err
}

func (s *Store) GetHabit(ctx context.Context, userID, id string) (models.Habit, error) {
	var row habitRow
	err := s.get(ctx, s.db, &row, s.sb.Select(habitColumns...).
		From("habits").
		Where(sq.Eq{"id": id, "user_id": userID}))
	if err != nil {
		return models.Habit{}, err
	}
	return row.model()
}

func (s *Store) ListHabits(ctx context.Context, userID string, activeOnly bool) ([]models.Habit, error) {
	where := sq.Eq{"user_id": userID}
	if activeOnly {
		where["is_active"] = true
	}

	var rows []habitRow
	err := s.selectRows(ctx, s.db, &rows, s.sb.Select(habitColumns...).
		From("habits").
		Where(where).
		OrderBy("created_at DESC", "id"))
	if err != nil {
		return nil, err
	}

	habits := make([]models.Habit, 0, len(rows))
	for _, r := range rows {
		h, err := r.model()
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, nil
}

// UpdateHabit rewrites every mutable column of h. created_at and user_id are
// never changed.
func (s *Store) UpdateHabit(ctx context.Context, h models.Habit) error {
	values := habitValues(h)
	update := s.sb.Update("habits").Where(sq.Eq{"id": h.ID, "user_id": h.UserID})
	for i, col := range habitColumns {
		switch col {
		case "id", "user_id", "created_at":
			continue
		}
		update = update.Set(col, values[i])
	}

	n, err := s.exec(ctx, s.db, update)
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteHabit(ctx context.Context, userID, id string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.exec(ctx, tx, s.sb.Delete("habit_completions").
			Where(sq.Eq{"habit_id": id, "user_id": userID})); err != nil {
			return err
		}
		n, err := s.exec(ctx, tx, s.sb.Delete("habits").Where(sq.Eq{"id": id, "user_id": userID}))
		if err != nil {
			return err
		}
		if n == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}
