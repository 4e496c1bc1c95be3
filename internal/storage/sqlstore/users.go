package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

func (s *Store) AddUser(ctx context.Context, u models.User) error {
	_, err := s.exec(ctx, s.db, s.sb.Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.Email, u.PasswordHash, stringOrNil(u.FullName),
			utils.FormatTimestamp(u.CreatedAt), utils.FormatTimestamp(u.UpdatedAt)))
	return err
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.getUser(ctx, sq.Eq{"id": id})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.getUser(ctx, sq.Eq{"email": email})
}

func (s *Store) getUser(ctx context.Context, where sq.Eq) (models.User, error) {
	var row userRow
	if err := s.get(ctx, s.db, &row, s.sb.Select(userColumns...).From("users").Where(where)); err != nil {
		return models.User{}, err
	}
	return row.model()
}
