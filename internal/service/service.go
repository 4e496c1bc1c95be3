// Package service implements the habit use cases on top of a
// storage.Provider. It owns "today": every date decision goes through the
// injected clock and the configured timezone.
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

const msgHabitNotFound = "Habit not found"

type Service struct {
	store    storage.Provider
	validate *validation.Validator
	loc      *time.Location
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{
		store:    store,
		validate: validation.New(),
		loc:      time.UTC,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Store() storage.Provider {
	return s.store
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// clock returns the current instant in the service's timezone.
func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) today() models.Day {
	return utils.Today(s.now(), s.loc)
}

// checkID rejects ids that could never name a row. PostgreSQL would
// otherwise fail the uuid cast and surface a store error.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NotFound(msgHabitNotFound)
	}
	return nil
}

// storeErr turns a storage failure into a client-safe error. Missing rows
// become notFoundMsg when it is set; everything else is logged and
// reported with the generic msg.
func storeErr(op, msg, notFoundMsg string, err error) error {
	if notFoundMsg != "" && errors.Is(err, storage.ErrNotFound) {
		return apperrors.NotFound(notFoundMsg)
	}
	logger.Error(msg, "op", op, "error", err)
	return apperrors.Store(op, msg, err)
}
