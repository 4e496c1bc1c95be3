package models

import "time"

// Completion records that a habit was satisfied on a calendar date.
// At most one exists per (habit, date).
type Completion struct {
	ID             string    `json:"id"`
	HabitID        string    `json:"habit_id"`
	UserID         string    `json:"user_id"`
	CompletionDate Day       `json:"completion_date"`
	Quantity       int       `json:"quantity"`
	Notes          *string   `json:"notes"`
	CompletedAt    time.Time `json:"completed_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToggleResult is the outcome of flipping a (habit, date) completion.
type ToggleResult struct {
	Success     bool        `json:"success"`
	IsCompleted bool        `json:"isCompleted"`
	Completion  *Completion `json:"completion"`
	Date        Day         `json:"date"`
}
