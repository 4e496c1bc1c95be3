package sqlstore

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Timestamps are scanned as strings: SQLite stores RFC3339 text and
// database/sql renders PostgreSQL timestamptz values as RFC3339 when the
// destination is a string.

var userColumns = []string{"id", "email", "password_hash", "full_name", "created_at", "updated_at"}

type userRow struct {
	ID           string         `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FullName     sql.NullString `db:"full_name"`
	CreatedAt    string         `db:"created_at"`
	UpdatedAt    string         `db:"updated_at"`
}

func (r userRow) model() (models.User, error) {
	u := models.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FullName:     nullString(r.FullName),
	}
	var err error
	if u.CreatedAt, err = utils.ParseTimestamp(r.CreatedAt); err != nil {
		return models.User{}, fmt.Errorf("user %s created_at: %w", r.ID, err)
	}
	if u.UpdatedAt, err = utils.ParseTimestamp(r.UpdatedAt); err != nil {
		return models.User{}, fmt.Errorf("user %s updated_at: %w", r.ID, err)
	}
	return u, nil
}

var habitColumns = []string{
	"id", "user_id", "name", "description", "color", "category",
	"frequency_type", "custom_interval_type", "custom_interval_value", "custom_specific_days",
	"target_count", "is_active", "created_at", "updated_at",
}

type habitRow struct {
	ID                  string         `db:"id"`
	UserID              string         `db:"user_id"`
	Name                string         `db:"name"`
	Description         sql.NullString `db:"description"`
	Color               string         `db:"color"`
	Category            sql.NullString `db:"category"`
	FrequencyType       string         `db:"frequency_type"`
	CustomIntervalType  sql.NullString `db:"custom_interval_type"`
	CustomIntervalValue sql.NullInt64  `db:"custom_interval_value"`
	CustomSpecificDays  sql.NullString `db:"custom_specific_days"`
	TargetCount         int            `db:"target_count"`
	IsActive            bool           `db:"is_active"`
	CreatedAt           string         `db:"created_at"`
	UpdatedAt           string         `db:"updated_at"`
}

func (r habitRow) model() (models.Habit, error) {
	h := models.Habit{
		ID:            r.ID,
		UserID:        r.UserID,
		Name:          r.Name,
		Description:   nullString(r.Description),
		Color:         r.Color,
		Category:      nullString(r.Category),
		FrequencyType: constants.FrequencyType(r.FrequencyType),
		TargetCount:   r.TargetCount,
		IsActive:      r.IsActive,
	}
	if r.CustomIntervalType.Valid {
		unit := constants.IntervalUnit(r.CustomIntervalType.String)
		h.CustomIntervalType = &unit
	}
	if r.CustomIntervalValue.Valid {
		n := int(r.CustomIntervalValue.Int64)
		h.CustomIntervalValue = &n
	}

	var err error
	if h.CustomSpecificDays, err = decodeWeekdays(r.CustomSpecificDays.String); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", r.ID, err)
	}
	if h.CreatedAt, err = utils.ParseTimestamp(r.CreatedAt); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s created_at: %w", r.ID, err)
	}
	if h.UpdatedAt, err = utils.ParseTimestamp(r.UpdatedAt); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s updated_at: %w", r.ID, err)
	}
	return h, nil
}

// habitValues returns the column values for h in habitColumns order.
func habitValues(h models.Habit) []any {
	var intervalType, intervalValue, days any
	if h.CustomIntervalType != nil {
		intervalType = string(*h.CustomIntervalType)
	}
	if h.CustomIntervalValue != nil {
		intervalValue = *h.CustomIntervalValue
	}
	if len(h.CustomSpecificDays) > 0 {
		days = encodeWeekdays(h.CustomSpecificDays)
	}
	return []any{
		h.ID, h.UserID, h.Name, stringOrNil(h.Description), h.Color, stringOrNil(h.Category),
		string(h.FrequencyType), intervalType, intervalValue, days,
		h.TargetCount, h.IsActive, utils.FormatTimestamp(h.CreatedAt), utils.FormatTimestamp(h.UpdatedAt),
	}
}

var completionColumns = []string{
	"id", "habit_id", "user_id", "completion_date", "quantity", "notes", "completed_at", "created_at",
}

type completionRow struct {
	ID             string         `db:"id"`
	HabitID        string         `db:"habit_id"`
	UserID         string         `db:"user_id"`
	CompletionDate models.Day     `db:"completion_date"`
	Quantity       int            `db:"quantity"`
	Notes          sql.NullString `db:"notes"`
	CompletedAt    string         `db:"completed_at"`
	CreatedAt      string         `db:"created_at"`
}

func (r completionRow) model() (models.Completion, error) {
	c := models.Completion{
		ID:             r.ID,
		HabitID:        r.HabitID,
		UserID:         r.UserID,
		CompletionDate: r.CompletionDate,
		Quantity:       r.Quantity,
		Notes:          nullString(r.Notes),
	}
	var err error
	if c.CompletedAt, err = utils.ParseTimestamp(r.CompletedAt); err != nil {
		return models.Completion{}, fmt.Errorf("completion %s completed_at: %w", r.ID, err)
	}
	if c.CreatedAt, err = utils.ParseTimestamp(r.CreatedAt); err != nil {
		return models.Completion{}, fmt.Errorf("completion %s created_at: %w", r.ID, err)
	}
	return c, nil
}

func completionValues(c models.Completion) []any {
	return []any{
		c.ID, c.HabitID, c.UserID, c.CompletionDate, c.Quantity, stringOrNil(c.Notes),
		utils.FormatTimestamp(c.CompletedAt), utils.FormatTimestamp(c.CreatedAt),
	}
}

func encodeWeekdays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday %q in %q", p, s)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func stringOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
