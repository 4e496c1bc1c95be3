package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// Day is a calendar date with no time component, always in YYYY-MM-DD form.
// Days compare and sort correctly as strings.
type Day string

// DayOf returns the calendar date of t in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(constants.DateFormat))
}

// ParseDay validates s as a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return DayOf(t), nil
}

// Time returns midnight of the day in loc.
func (d Day) Time(loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, string(d))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// AddDays returns the day n calendar days away. An unparseable day is returned unchanged.
func (d Day) AddDays(n int) Day {
	t, err := d.Time(time.UTC)
	if err != nil {
		return d
	}
	return DayOf(t.AddDate(0, 0, n))
}

func (d Day) String() string {
	return string(d)
}

// Scan implements sql.Scanner. PostgreSQL DATE columns arrive as time.Time or as an
// RFC3339 string depending on the destination, SQLite TEXT columns as plain strings.
func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = DayOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Day", src)
	}
}

func (d *Day) scanString(s string) error {
	if len(s) < len(constants.DateFormat) {
		return fmt.Errorf("invalid date value %q", s)
	}
	parsed, err := ParseDay(s[:len(constants.DateFormat)])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Day) Value() (driver.Value, error) {
	return string(d), nil
}
