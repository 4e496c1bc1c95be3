package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/storage/sqlstore"
	"github.com/julianstephens/habitual/migrations"
)

// Dialect is the SQLite flavour of sqlstore.
var Dialect = sqlstore.Dialect{
	Name:              "sqlite",
	Placeholder:       sq.Question,
	IsUniqueViolation: isUniqueViolation,
}

type Store struct {
	*sqlstore.Store
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init creates the database file if needed and applies pending migrations.
func (s *Store) Init(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	if err := s.runMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load opens an existing database and checks its schema version.
func (s *Store) Load(ctx context.Context) error {
	if s.Store != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("database %s not found, run 'habitual migrate' first", s.path)
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.runner().ValidateVersion(ctx)
}

func (s *Store) open() error {
	db, err := sqlx.Open("sqlite", dsn(s.path))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite has a single writer; one connection avoids SQLITE_BUSY between
	// our own goroutines.
	db.SetMaxOpenConns(1)
	s.Store = sqlstore.New(db, Dialect)
	return nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + q.Encode()
}

func (s *Store) Close() error {
	if s.Store != nil {
		return s.DB().Close()
	}
	return nil
}

func (s *Store) runner() *migration.Runner {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		// The embedded directory is fixed at build time.
		panic(err)
	}
	return migration.NewRunner(s.DB().DB, subFS, sq.Question)
}

func (s *Store) runMigrations(ctx context.Context) error {
	_, err := s.runner().ApplyMigrations(ctx, func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// Without extended result codes only the message tells them apart.
		return strings.Contains(se.Error(), "UNIQUE constraint failed")
	}
	return false
}
