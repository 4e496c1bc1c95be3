package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/habitcache"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tui/components/habitlist"
)

var now = time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC)

type stubSource struct {
	habits    []models.HabitView
	completed map[string]bool
}

func (s *stubSource) ListHabits(context.Context) ([]models.HabitView, error) {
	out := make([]models.HabitView, len(s.habits))
	for i, h := range s.habits {
		h.IsCompletedToday = s.completed[h.ID]
		out[i] = h
	}
	return out, nil
}

func (s *stubSource) CreateHabit(_ context.Context, in models.HabitInput) (models.Habit, error) {
	return models.Habit{ID: "new", Name: in.Name, CreatedAt: now}, nil
}

func (s *stubSource) ToggleCompletion(_ context.Context, id string) (models.ToggleResult, error) {
	s.completed[id] = !s.completed[id]
	return models.ToggleResult{Success: true, IsCompleted: s.completed[id], Date: models.DayOf(now)}, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	src := &stubSource{
		habits: []models.HabitView{
			{Habit: models.Habit{ID: "h1", Name: "Read"}, IsDueToday: true},
		},
		completed: map[string]bool{},
	}
	cache := habitcache.New(src, habitcache.WithClock(func() time.Time { return now }))
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	return NewModel(nil, cache, "user-1")
}

func TestTabCycling(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		key  tea.KeyMsg
		want SessionState
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, StateHabits},
		{tea.KeyMsg{Type: tea.KeyTab}, StateAnalytics},
		{tea.KeyMsg{Type: tea.KeyTab}, StateToday},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, StateAnalytics},
	}

	for _, tt := range tests {
		next, _ := m.Update(tt.key)
		m = next.(Model)
		if m.state != tt.want {
			t.Fatalf("after %s state = %d, want %d", tt.key, m.state, tt.want)
		}
	}
}

func TestToggleReconcilesThroughCache(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(habitlist.ToggleHabitMsg{ID: "h1"})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected toggle command")
	}

	msg, ok := cmd().(toggledMsg)
	if !ok {
		t.Fatalf("expected toggledMsg")
	}
	if msg.err != nil || !msg.result.IsCompleted {
		t.Fatalf("toggle = %+v", msg)
	}

	next, _ = m.Update(msg)
	m = next.(Model)
	if !m.cache.Habits()[0].IsCompletedToday {
		t.Error("cache should show the habit as completed")
	}
	if m.today.Len() != 1 {
		t.Errorf("today list has %d habits, want 1", m.today.Len())
	}
}

func TestConfirmDelete(t *testing.T) {
	m := newTestModel(t)
	m.state = StateHabits

	next, _ := m.Update(habitlist.DeleteHabitMsg{ID: "h1", Name: "Read"})
	m = next.(Model)
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %d, want confirm", m.state)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = next.(Model)
	if m.state != StateHabits || cmd != nil {
		t.Fatalf("cancel: state = %d, cmd = %v", m.state, cmd)
	}

	next, _ = m.Update(habitlist.DeleteHabitMsg{ID: "h1", Name: "Read"})
	m = next.(Model)
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m = next.(Model)
	if m.state != StateHabits || cmd == nil {
		t.Fatalf("confirm: state = %d, expected delete command", m.state)
	}
}

func TestHabitFormInput(t *testing.T) {
	tests := []struct {
		name string
		form HabitFormModel
		want models.HabitInput
	}{
		{
			name: "daily",
			form: HabitFormModel{Name: " Read ", Category: "learning", Frequency: "daily"},
			want: models.HabitInput{Name: "Read", Category: "learning", FrequencyType: "daily"},
		},
		{
			name: "every three days",
			form: HabitFormModel{Name: "Water plants", Category: "other", Frequency: "interval", Interval: "3"},
			want: models.HabitInput{
				Name:                "Water plants",
				Category:            "other",
				FrequencyType:       "custom",
				CustomIntervalType:  "days",
				CustomIntervalValue: 3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.form.Input()
			if got.Name != tt.want.Name || got.Category != tt.want.Category ||
				got.FrequencyType != tt.want.FrequencyType ||
				got.CustomIntervalType != tt.want.CustomIntervalType ||
				got.CustomIntervalValue != tt.want.CustomIntervalValue {
				t.Errorf("Input() = %+v, want %+v", got, tt.want)
			}
		})
	}

	weekdays := HabitFormModel{Name: "Gym", Frequency: "weekdays", Days: []int{1, 3, 5}}.Input()
	if weekdays.FrequencyType != "custom" || len(weekdays.CustomSpecificDays) != 3 {
		t.Errorf("weekdays Input() = %+v", weekdays)
	}
}

func TestValidInterval(t *testing.T) {
	for _, s := range []string{"", "0", "-2", "abc"} {
		if validInterval(s) == nil {
			t.Errorf("validInterval(%q) should fail", s)
		}
	}
	if err := validInterval(" 2 "); err != nil {
		t.Errorf("validInterval(2) = %v", err)
	}
}
