// Package habitcache keeps a client's view of its habit list between
// fetches. Toggles are applied optimistically and reconciled with the
// server's answer.
package habitcache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/schedule"
	"github.com/julianstephens/habitual/internal/service"
)

// Source is where the cache fetches from and writes through to.
type Source interface {
	ListHabits(ctx context.Context) ([]models.HabitView, error)
	CreateHabit(ctx context.Context, in models.HabitInput) (models.Habit, error)
	ToggleCompletion(ctx context.Context, habitID string) (models.ToggleResult, error)
}

// Persister saves and restores cache snapshots.
type Persister interface {
	Save(Snapshot) error
	Load() (Snapshot, error)
}

// Snapshot is the persisted part of the cache. Loading and error state are
// never saved.
type Snapshot struct {
	Habits    []models.HabitView `json:"habits"`
	FetchedAt time.Time          `json:"fetchedAt"`
}

type Cache struct {
	src     Source
	persist Persister
	now     func() time.Time

	// Bubble Tea runs commands on their own goroutines.
	mu        sync.Mutex
	habits    []models.HabitView
	fetchedAt time.Time
	err       error
}

type Option func(*Cache)

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithPersister(p Persister) Option {
	return func(c *Cache) { c.persist = p }
}

func New(src Source, opts ...Option) *Cache {
	c := &Cache{src: src, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Habits returns a copy of the cached list, newest first.
func (c *Cache) Habits() []models.HabitView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.habits)
}

// Err is the error from the last failed operation, cleared by the next
// success.
func (c *Cache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Stale reports whether the list is older than maxAge or was never fetched.
func (c *Cache) Stale(maxAge time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) > maxAge
}

// Rehydrate loads the persisted snapshot, if any.
func (c *Cache) Rehydrate() error {
	if c.persist == nil {
		return nil
	}
	snap, err := c.persist.Load()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.habits = snap.Habits
	c.fetchedAt = snap.FetchedAt
	c.mu.Unlock()
	return nil
}

// Refresh replaces the list with the source's. On failure the previous
// list is kept.
func (c *Cache) Refresh(ctx context.Context) error {
	habits, err := c.src.ListHabits(ctx)

	c.mu.Lock()
	if err != nil {
		c.err = err
		c.mu.Unlock()
		return err
	}
	c.habits = habits
	c.fetchedAt = c.now()
	c.err = nil
	c.mu.Unlock()

	c.save()
	return nil
}

// Create writes through and prepends the new habit.
func (c *Cache) Create(ctx context.Context, in models.HabitInput) (models.Habit, error) {
	h, err := c.src.CreateHabit(ctx, in)

	c.mu.Lock()
	if err != nil {
		c.err = err
		c.mu.Unlock()
		return models.Habit{}, err
	}
	c.habits = append([]models.HabitView{c.view(h)}, c.habits...)
	c.err = nil
	c.mu.Unlock()

	c.save()
	return h, nil
}

// Toggle flips today's completion locally, then asks the source. The
// server's answer wins; on error the local flip is undone.
func (c *Cache) Toggle(ctx context.Context, habitID string) (models.ToggleResult, error) {
	c.mu.Lock()
	prev, ok := c.setCompleted(habitID, nil)
	c.mu.Unlock()

	res, err := c.src.ToggleCompletion(ctx, habitID)

	c.mu.Lock()
	if err != nil {
		if ok {
			c.setCompleted(habitID, &prev)
		}
		c.err = err
		c.mu.Unlock()
		return models.ToggleResult{}, err
	}
	c.apply(habitID, res)
	c.err = nil
	c.mu.Unlock()

	c.save()
	return res, nil
}

func (c *Cache) view(h models.Habit) models.HabitView {
	cfg := h.Frequency()
	now := c.now()
	return models.HabitView{
		Habit:                h,
		IsDueToday:           schedule.IsDue(cfg, h.CreatedAt, now),
		NextDueDate:          models.DayOf(schedule.NextDueDate(cfg, h.CreatedAt, now)),
		FrequencyDescription: schedule.Describe(cfg),
	}
}

// ApplyToggle records a toggle result obtained elsewhere.
func (c *Cache) ApplyToggle(habitID string, res models.ToggleResult) {
	c.mu.Lock()
	c.apply(habitID, res)
	c.mu.Unlock()
	c.save()
}

// apply sets the cached completion state from res. Results for a date
// other than the client's today do not change the today flag.
func (c *Cache) apply(habitID string, res models.ToggleResult) {
	if res.Date != "" && res.Date != models.DayOf(c.now()) {
		return
	}
	completed := res.IsCompleted
	c.setCompleted(habitID, &completed)
}

// setCompleted sets the habit's today flag, flipping it when v is nil, and
// returns the previous value.
func (c *Cache) setCompleted(habitID string, v *bool) (prev bool, found bool) {
	for i := range c.habits {
		if c.habits[i].ID != habitID {
			continue
		}
		prev = c.habits[i].IsCompletedToday
		if v == nil {
			c.habits[i].IsCompletedToday = !prev
		} else {
			c.habits[i].IsCompletedToday = *v
		}
		return prev, true
	}
	return false, false
}

func (c *Cache) save() {
	if c.persist == nil {
		return
	}
	c.mu.Lock()
	snap := Snapshot{Habits: slices.Clone(c.habits), FetchedAt: c.fetchedAt}
	c.mu.Unlock()
	if err := c.persist.Save(snap); err != nil {
		logger.Warn("Failed to persist habit cache", "error", err)
	}
}

// userSource adapts the service to a single signed-in user.
type userSource struct {
	svc    *service.Service
	userID string
}

// ForUser returns a Source that reads and writes userID's habits.
func ForUser(svc *service.Service, userID string) Source {
	return userSource{svc: svc, userID: userID}
}

func (s userSource) ListHabits(ctx context.Context) ([]models.HabitView, error) {
	return s.svc.ListHabits(ctx, s.userID, false)
}

func (s userSource) CreateHabit(ctx context.Context, in models.HabitInput) (models.Habit, error) {
	return s.svc.CreateHabit(ctx, s.userID, in)
}

func (s userSource) ToggleCompletion(ctx context.Context, habitID string) (models.ToggleResult, error) {
	return s.svc.ToggleCompletion(ctx, s.userID, habitID, "")
}
