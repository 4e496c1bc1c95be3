package analytics

import (
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

var fixedNow = time.Date(2024, 1, 12, 18, 0, 0, 0, time.UTC)

func completion(habitID string, day models.Day) models.Completion {
	return models.Completion{ID: habitID + "-" + string(day), HabitID: habitID, CompletionDate: day, Quantity: 1}
}

func habit(id string, category *string) models.Habit {
	return models.Habit{
		ID:            id,
		Category:      category,
		FrequencyType: constants.FrequencyDaily,
		TargetCount:   1,
		IsActive:      true,
		CreatedAt:     time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func ptr[T any](v T) *T { return &v }

func TestCompute_ThreeDayStreak(t *testing.T) {
	rows := []models.Completion{
		completion("a", "2024-01-10"),
		completion("a", "2024-01-11"),
		completion("a", "2024-01-12"),
	}
	today, week, month := Partition(rows, "2024-01-12")

	snap := Compute(Input{
		Habits:           []models.Habit{habit("a", ptr("health"))},
		Today:            today,
		Week:             week,
		Month:            month,
		TotalCompletions: 3,
	}, fixedNow)

	want := models.Overview{
		TotalHabits:          1,
		TodayCompletionRate:  100,
		CurrentStreak:        3,
		TotalCompletions:     3,
		WeeklyCompletionRate: 43,
	}
	if snap.Overview != want {
		t.Errorf("Overview = %+v, want %+v", snap.Overview, want)
	}
	if len(snap.Heatmap) != 3 || snap.Heatmap["2024-01-12"] != 1 {
		t.Errorf("unexpected heatmap %v", snap.Heatmap)
	}
	if !snap.LastUpdated.Equal(fixedNow) {
		t.Errorf("LastUpdated = %v, want %v", snap.LastUpdated, fixedNow)
	}
}

func TestCompute_NoCompletions(t *testing.T) {
	snap := Compute(Input{
		Habits: []models.Habit{habit("a", nil), habit("b", nil)},
	}, fixedNow)

	want := models.Overview{TotalHabits: 2}
	if snap.Overview != want {
		t.Errorf("Overview = %+v, want %+v", snap.Overview, want)
	}
	if snap.Heatmap == nil || len(snap.Heatmap) != 0 {
		t.Errorf("expected empty non-nil heatmap, got %v", snap.Heatmap)
	}
}

func TestCompute_ZeroHabits(t *testing.T) {
	snap := Compute(Input{
		Today: []models.Completion{completion("gone", "2024-01-12")},
	}, fixedNow)
	if snap.Overview.TodayCompletionRate != 0 {
		t.Errorf("TodayCompletionRate = %d, want 0", snap.Overview.TodayCompletionRate)
	}
	if snap.Breakdown.Categories == nil {
		t.Error("expected non-nil categories")
	}
}

func TestCompute_TodayRateCountsDistinctHabits(t *testing.T) {
	today := []models.Completion{
		completion("a", "2024-01-12"),
		completion("a", "2024-01-12"),
		completion("b", "2024-01-12"),
	}
	snap := Compute(Input{
		Habits: []models.Habit{habit("a", nil), habit("b", nil), habit("c", nil)},
		Today:  today,
	}, fixedNow)
	if got := snap.Overview.TodayCompletionRate; got != 67 {
		t.Errorf("TodayCompletionRate = %d, want 67", got)
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []models.Day
		want  int
	}{
		{"none", nil, 0},
		{"today only", []models.Day{"2024-01-12"}, 1},
		{"empty today still counts yesterday", []models.Day{"2024-01-11", "2024-01-10"}, 2},
		{"gap before yesterday ends it", []models.Day{"2024-01-12", "2024-01-11", "2024-01-09"}, 2},
		{"empty today and yesterday", []models.Day{"2024-01-10"}, 0},
		{"capped at seven", []models.Day{
			"2024-01-12", "2024-01-11", "2024-01-10", "2024-01-09",
			"2024-01-08", "2024-01-07", "2024-01-06", "2024-01-05",
		}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []models.Completion
			for _, d := range tt.dates {
				rows = append(rows, completion("a", d))
			}
			if got := currentStreak(rows, "2024-01-12"); got != tt.want {
				t.Errorf("currentStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	got := Categories([]models.Habit{
		habit("1", ptr("health")),
		habit("2", nil),
		habit("3", ptr("health")),
		habit("4", ptr("")),
	})
	if len(got) != 2 || got["health"] != 2 || got["other"] != 2 {
		t.Errorf("Categories = %v, want map[health:2 other:2]", got)
	}

	got = Categories([]models.Habit{habit("1", ptr("health")), habit("2", nil), habit("3", ptr("health"))})
	if len(got) != 2 || got["health"] != 2 || got["other"] != 1 {
		t.Errorf("Categories = %v, want map[health:2 other:1]", got)
	}
}

func TestHeatmap(t *testing.T) {
	got := Heatmap([]models.Completion{
		completion("a", "2024-01-10"),
		completion("b", "2024-01-10"),
		completion("c", "2024-01-10"),
		completion("a", "2024-01-11"),
	})
	if got["2024-01-10"] != 3 {
		t.Errorf("bucket 2024-01-10 = %d, want 3", got["2024-01-10"])
	}
	if got["2024-01-11"] != 1 {
		t.Errorf("bucket 2024-01-11 = %d, want 1", got["2024-01-11"])
	}
	if v, ok := got["2024-01-09"]; ok && v != 0 {
		t.Errorf("bucket 2024-01-09 = %d, want absent or 0", v)
	}
}

func TestPartition(t *testing.T) {
	rows := []models.Completion{
		completion("a", "2024-01-13"), // future
		completion("a", "2024-01-12"),
		completion("b", "2024-01-12"),
		completion("a", "2024-01-06"), // first day of the week window
		completion("a", "2024-01-05"),
		completion("a", "2023-12-14"), // first day of the month window
		completion("a", "2023-12-13"),
	}
	today, week, month := Partition(rows, "2024-01-12")
	if len(today) != 2 {
		t.Errorf("today rows = %d, want 2", len(today))
	}
	if len(week) != 3 {
		t.Errorf("week rows = %d, want 3", len(week))
	}
	if len(month) != 5 {
		t.Errorf("month rows = %d, want 5", len(month))
	}
}
