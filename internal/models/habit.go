package models

import (
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// CustomFrequency holds the interval or weekday set of a custom habit.
type CustomFrequency struct {
	Type         constants.IntervalUnit `json:"type"`
	Interval     int                    `json:"interval"`
	SpecificDays []time.Weekday         `json:"specificDays,omitempty"` // 0=Sunday..6=Saturday
}

// FrequencyConfig describes when a habit is due.
type FrequencyConfig struct {
	Type        constants.FrequencyType `json:"type"`
	Custom      *CustomFrequency        `json:"custom,omitempty"`
	TargetCount int                     `json:"targetCount,omitempty"`
}

type Habit struct {
	ID                  string                  `json:"id"`
	UserID              string                  `json:"user_id"`
	Name                string                  `json:"name"`
	Description         *string                 `json:"description"`
	Color               string                  `json:"color"`
	Category            *string                 `json:"category"`
	FrequencyType       constants.FrequencyType `json:"frequency_type"`
	CustomIntervalType  *constants.IntervalUnit `json:"custom_interval_type"`
	CustomIntervalValue *int                    `json:"custom_interval_value"`
	CustomSpecificDays  []time.Weekday          `json:"custom_specific_days"`
	TargetCount         int                     `json:"target_count"`
	IsActive            bool                    `json:"is_active"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

// Frequency assembles the habit's frequency columns into a FrequencyConfig.
func (h Habit) Frequency() FrequencyConfig {
	cfg := FrequencyConfig{
		Type:        h.FrequencyType,
		TargetCount: h.TargetCount,
	}
	if h.FrequencyType != constants.FrequencyCustom {
		return cfg
	}

	custom := &CustomFrequency{SpecificDays: h.CustomSpecificDays}
	if h.CustomIntervalType != nil {
		custom.Type = *h.CustomIntervalType
	}
	if h.CustomIntervalValue != nil {
		custom.Interval = *h.CustomIntervalValue
	}
	if custom.Type == "" && custom.Interval == 0 && len(custom.SpecificDays) == 0 {
		return cfg
	}
	cfg.Custom = custom
	return cfg
}

// CategoryOrDefault returns the habit's category, or "other" when unset.
func (h Habit) CategoryOrDefault() string {
	if h.Category == nil || *h.Category == "" {
		return string(constants.CategoryOther)
	}
	return *h.Category
}

// HabitInput is the create/update payload for a habit.
type HabitInput struct {
	Name                string  `json:"name" validate:"required,min=2,max=100"`
	Description         *string `json:"description" validate:"omitempty,max=500"`
	Color               string  `json:"color" validate:"omitempty,habitcolor"`
	Category            string  `json:"category" validate:"omitempty,oneof=health fitness productivity learning social mindfulness creativity other"`
	FrequencyType       string  `json:"frequency_type" validate:"omitempty,oneof=daily weekly custom"`
	TargetCount         int     `json:"target_count" validate:"omitempty,min=1,max=10"`
	CustomIntervalType  string  `json:"custom_interval_type" validate:"omitempty,oneof=days weeks"`
	CustomIntervalValue int     `json:"custom_interval_value" validate:"omitempty,min=1"`
	CustomSpecificDays  []int   `json:"custom_specific_days" validate:"omitempty,dive,min=0,max=6"`
	IsActive            *bool   `json:"is_active"`
}

// HabitView is a habit as listed for its owner on a given day.
type HabitView struct {
	Habit
	IsCompletedToday     bool   `json:"isCompletedToday"`
	IsDueToday           bool   `json:"isDueToday"`
	NextDueDate          Day    `json:"nextDueDate"`
	FrequencyDescription string `json:"frequencyDescription"`
}
