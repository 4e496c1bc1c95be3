// Package sqlstore implements storage.Provider's data methods over sqlx and
// squirrel. The SQLite and PostgreSQL stores embed it and supply a Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/habitual/internal/storage"
)

// Dialect captures what differs between the supported databases.
type Dialect struct {
	Name              string
	Placeholder       sq.PlaceholderFormat
	IsUniqueViolation func(error) bool
}

type Store struct {
	db      *sqlx.DB
	dialect Dialect
	sb      sq.StatementBuilderType
}

func New(db *sqlx.DB, d Dialect) *Store {
	if d.IsUniqueViolation == nil {
		d.IsUniqueViolation = func(error) bool { return false }
	}
	return &Store{
		db:      db,
		dialect: d,
		sb:      sq.StatementBuilder.PlaceholderFormat(d.Placeholder),
	}
}

// DB exposes the underlying handle for lifecycle and backup operations.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, q queryer, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	if err := sqlx.GetContext(ctx, q, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Store) selectRows(ctx context.Context, q queryer, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return sqlx.SelectContext(ctx, q, dest, query, args...)
}

func (s *Store) exec(ctx context.Context, q queryer, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %v", storage.ErrDuplicate, err)
		}
		return 0, err
	}
	return res.RowsAffected()
}
