package habitcache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

var (
	now        = time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC)
	errBackend = errors.New("backend down")
)

type fakeSource struct {
	habits    []models.HabitView
	completed map[string]bool
	listErr   error
	toggleErr error
	date      models.Day
}

func (f *fakeSource) ListHabits(context.Context) ([]models.HabitView, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.HabitView, len(f.habits))
	for i, h := range f.habits {
		h.IsCompletedToday = f.completed[h.ID]
		out[i] = h
	}
	return out, nil
}

func (f *fakeSource) CreateHabit(_ context.Context, in models.HabitInput) (models.Habit, error) {
	return models.Habit{
		ID:            "h-new",
		Name:          in.Name,
		FrequencyType: constants.FrequencyDaily,
		TargetCount:   1,
		IsActive:      true,
		CreatedAt:     now,
	}, nil
}

func (f *fakeSource) ToggleCompletion(_ context.Context, id string) (models.ToggleResult, error) {
	if f.toggleErr != nil {
		return models.ToggleResult{}, f.toggleErr
	}
	f.completed[id] = !f.completed[id]
	date := f.date
	if date == "" {
		date = models.DayOf(now)
	}
	return models.ToggleResult{Success: true, IsCompleted: f.completed[id], Date: date}, nil
}

func newSource() *fakeSource {
	return &fakeSource{
		habits: []models.HabitView{
			{Habit: models.Habit{ID: "h1", Name: "Read"}, IsDueToday: true},
			{Habit: models.Habit{ID: "h2", Name: "Run"}, IsDueToday: true},
		},
		completed: map[string]bool{},
	}
}

func fixedClock() time.Time { return now }

func TestRefresh(t *testing.T) {
	src := newSource()
	c := New(src, WithClock(fixedClock))

	assert.True(t, c.Stale(time.Minute))
	require.NoError(t, c.Refresh(context.Background()))
	assert.Len(t, c.Habits(), 2)
	assert.False(t, c.Stale(time.Minute))

	src.listErr = errBackend
	assert.ErrorIs(t, c.Refresh(context.Background()), errBackend)
	assert.Len(t, c.Habits(), 2, "failed refresh keeps the previous list")
	assert.ErrorIs(t, c.Err(), errBackend)
}

func TestStale(t *testing.T) {
	clock := now
	c := New(newSource(), WithClock(func() time.Time { return clock }))
	require.NoError(t, c.Refresh(context.Background()))

	clock = now.Add(30 * time.Second)
	assert.False(t, c.Stale(time.Minute))
	clock = now.Add(2 * time.Minute)
	assert.True(t, c.Stale(time.Minute))
}

func TestCreatePrepends(t *testing.T) {
	c := New(newSource(), WithClock(fixedClock))
	require.NoError(t, c.Refresh(context.Background()))

	h, err := c.Create(context.Background(), models.HabitInput{Name: "Meditate"})
	require.NoError(t, err)

	habits := c.Habits()
	require.Len(t, habits, 3)
	assert.Equal(t, h.ID, habits[0].ID)
	assert.True(t, habits[0].IsDueToday)
	assert.Equal(t, "Daily", habits[0].FrequencyDescription)
}

func TestToggle(t *testing.T) {
	src := newSource()
	c := New(src, WithClock(fixedClock))
	require.NoError(t, c.Refresh(context.Background()))

	res, err := c.Toggle(context.Background(), "h1")
	require.NoError(t, err)
	assert.True(t, res.IsCompleted)
	assert.True(t, c.Habits()[0].IsCompletedToday)

	_, err = c.Toggle(context.Background(), "h1")
	require.NoError(t, err)
	assert.False(t, c.Habits()[0].IsCompletedToday)
}

func TestToggleRollsBackOnError(t *testing.T) {
	src := newSource()
	c := New(src, WithClock(fixedClock))
	require.NoError(t, c.Refresh(context.Background()))

	src.toggleErr = errBackend
	_, err := c.Toggle(context.Background(), "h2")
	assert.ErrorIs(t, err, errBackend)
	assert.False(t, c.Habits()[1].IsCompletedToday)
}

func TestToggleServerWins(t *testing.T) {
	src := newSource()
	c := New(src, WithClock(fixedClock))
	require.NoError(t, c.Refresh(context.Background()))

	// Completed elsewhere after the last fetch.
	src.completed["h1"] = true
	res, err := c.Toggle(context.Background(), "h1")
	require.NoError(t, err)
	assert.False(t, res.IsCompleted)
	assert.False(t, c.Habits()[0].IsCompletedToday)
}

func TestApplyToggle(t *testing.T) {
	tests := []struct {
		name string
		res  models.ToggleResult
		want bool
	}{
		{"today", models.ToggleResult{IsCompleted: true, Date: "2024-01-12"}, true},
		{"other day", models.ToggleResult{IsCompleted: true, Date: "2024-01-11"}, false},
		{"no date", models.ToggleResult{IsCompleted: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(newSource(), WithClock(fixedClock))
			require.NoError(t, c.Refresh(context.Background()))

			c.ApplyToggle("h1", tt.res)
			assert.Equal(t, tt.want, c.Habits()[0].IsCompletedToday)
		})
	}
}

func TestPersistence(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache", "habits.json"))

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Habits)

	c := New(newSource(), WithClock(fixedClock), WithPersister(store))
	require.NoError(t, c.Refresh(context.Background()))
	_, err = c.Toggle(context.Background(), "h2")
	require.NoError(t, err)

	restored := New(newSource(), WithClock(fixedClock), WithPersister(store))
	require.NoError(t, restored.Rehydrate())

	habits := restored.Habits()
	require.Len(t, habits, 2)
	assert.True(t, habits[1].IsCompletedToday)
	assert.False(t, restored.Stale(time.Minute))
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFileStore(path).Load()
	assert.ErrorContains(t, err, "corrupt habit cache")
}
