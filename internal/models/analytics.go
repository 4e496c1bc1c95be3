package models

import (
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

type Overview struct {
	TotalHabits          int `json:"totalHabits"`
	TodayCompletionRate  int `json:"todayCompletionRate"`
	CurrentStreak        int `json:"currentStreak"`
	TotalCompletions     int `json:"totalCompletions"`
	WeeklyCompletionRate int `json:"weeklyCompletionRate"`
}

type Breakdown struct {
	Categories map[string]int `json:"categories"`
}

// AnalyticsSnapshot is computed per request and never stored.
type AnalyticsSnapshot struct {
	Overview    Overview    `json:"overview"`
	Breakdown   Breakdown   `json:"breakdown"`
	Heatmap     map[Day]int `json:"heatmap"`
	LastUpdated time.Time   `json:"lastUpdated"`
}

// HabitStats summarizes a single habit's recent history.
type HabitStats struct {
	HabitID              string               `json:"habitId"`
	CurrentStreak        int                  `json:"currentStreak"`
	LongestStreak        int                  `json:"longestStreak"`
	CompletionRate       int                  `json:"completionRate"`
	TotalCompletions     int                  `json:"totalCompletions"`
	CompletionsThisWeek  int                  `json:"completionsThisWeek"`
	CompletionsThisMonth int                  `json:"completionsThisMonth"`
	Milestone            *constants.Milestone `json:"milestone,omitempty"`
	Rating               string               `json:"rating"`
}
