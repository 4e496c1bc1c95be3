package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/habitual/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist or is not owned by the caller.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")
)

// Provider is the persistence boundary. Every habit and completion read is
// scoped by user id so one user can never see another's rows.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	// Users
	AddUser(ctx context.Context, u models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	// Habits
	AddHabit(ctx context.Context, h models.Habit) error
	GetHabit(ctx context.Context, userID, id string) (models.Habit, error)
	// ListHabits returns the user's habits, newest first.
	ListHabits(ctx context.Context, userID string, activeOnly bool) ([]models.Habit, error)
	UpdateHabit(ctx context.Context, h models.Habit) error
	// DeleteHabit removes the habit and all of its completions.
	DeleteHabit(ctx context.Context, userID, id string) error

	// Completions

	// ToggleCompletion deletes the (habit, date) completion if one exists and
	// inserts c otherwise, atomically. If a concurrent insert wins the race the
	// existing row is returned as completed.
	ToggleCompletion(ctx context.Context, c models.Completion) (models.ToggleResult, error)
	GetCompletion(ctx context.Context, userID, habitID string, day models.Day) (models.Completion, error)
	// ListCompletions returns the user's completions between from and to
	// inclusive, oldest first. An empty bound is unbounded. habitID may be
	// empty to include every habit.
	ListCompletions(ctx context.Context, userID, habitID string, from, to models.Day) ([]models.Completion, error)
	CountCompletions(ctx context.Context, userID string) (int, error)
	// CompletedHabitIDs returns the ids of the user's habits completed on day.
	CompletedHabitIDs(ctx context.Context, userID string, day models.Day) (map[string]bool, error)

	// Utils
	GetConfigPath() string
}
