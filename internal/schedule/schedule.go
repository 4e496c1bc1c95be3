// Package schedule decides when a habit is due.
//
// All functions reduce their time arguments to calendar dates before doing
// any arithmetic, so the hour of day never changes a result.
package schedule

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

var dayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// IsDue reports whether a habit with the given frequency, created at createdAt,
// is due on the calendar date of date. createdAt is read in date's location.
func IsDue(cfg models.FrequencyConfig, createdAt, date time.Time) bool {
	switch cfg.Type {
	case constants.FrequencyDaily:
		return true
	case constants.FrequencyWeekly:
		// Weekly habits can be completed on any day; the cadence is measured
		// by completion counts, not by the schedule.
		return true
	case constants.FrequencyCustom:
		return customDue(cfg.Custom, createdAt, date)
	default:
		return false
	}
}

func customDue(c *models.CustomFrequency, createdAt, date time.Time) bool {
	if c == nil {
		return false
	}
	if len(c.SpecificDays) > 0 {
		return slices.Contains(c.SpecificDays, date.Weekday())
	}
	if c.Interval <= 0 {
		return false
	}

	days := utils.DaysBetween(createdAt.In(date.Location()), date)
	switch c.Type {
	case constants.IntervalDays:
		return days%c.Interval == 0
	case constants.IntervalWeeks:
		return floorDiv(days, 7)%c.Interval == 0
	default:
		return false
	}
}

// floorDiv divides rounding toward negative infinity, so dates before
// creation fall into the week that precedes it.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// EnumerateDue yields every date from start to end inclusive on which the habit
// is due, each at midnight in start's location. The sequence is finite and can
// be ranged over any number of times.
func EnumerateDue(cfg models.FrequencyConfig, createdAt, start, end time.Time) iter.Seq[time.Time] {
	first := utils.StartOfDay(start)
	last := utils.DateIn(end, start.Location())
	return func(yield func(time.Time) bool) {
		for d := first; !d.After(last); d = utils.AddDays(d, 1) {
			if IsDue(cfg, createdAt, d) && !yield(d) {
				return
			}
		}
	}
}

// DueDates collects EnumerateDue into a slice.
func DueDates(cfg models.FrequencyConfig, createdAt, start, end time.Time) []time.Time {
	return slices.Collect(EnumerateDue(cfg, createdAt, start, end))
}

// NextDueDate returns the next calendar date after now's date on which the habit
// should be done. Interval schedules are counted from today rather than from the
// creation date's phase. A malformed custom schedule yields today.
func NextDueDate(cfg models.FrequencyConfig, createdAt, now time.Time) time.Time {
	today := utils.StartOfDay(now)

	switch cfg.Type {
	case constants.FrequencyDaily:
		return utils.AddDays(today, 1)
	case constants.FrequencyWeekly:
		return utils.AddDays(today, 7)
	case constants.FrequencyCustom:
		c := cfg.Custom
		if c == nil {
			return today
		}
		if len(c.SpecificDays) > 0 {
			return utils.AddDays(today, daysToNextWeekday(c.SpecificDays, today.Weekday()))
		}
		switch c.Type {
		case constants.IntervalDays:
			return utils.AddDays(today, c.Interval)
		case constants.IntervalWeeks:
			return utils.AddDays(today, 7*c.Interval)
		}
		return today
	default:
		return today
	}
}

func daysToNextWeekday(days []time.Weekday, today time.Weekday) int {
	sorted := slices.Clone(days)
	slices.Sort(sorted)
	for _, d := range sorted {
		if d > today {
			return int(d - today)
		}
	}
	return 7 - int(today) + int(sorted[0])
}

// Describe renders the frequency as a short label such as "Daily",
// "3 times weekly", "Mon, Wed, Fri" or "Every 2 weeks".
func Describe(cfg models.FrequencyConfig) string {
	switch cfg.Type {
	case constants.FrequencyDaily:
		if cfg.TargetCount > 1 {
			return fmt.Sprintf("%d times daily", cfg.TargetCount)
		}
		return "Daily"
	case constants.FrequencyWeekly:
		if cfg.TargetCount > 1 {
			return fmt.Sprintf("%d times weekly", cfg.TargetCount)
		}
		return "Weekly"
	case constants.FrequencyCustom:
		return describeCustom(cfg.Custom)
	default:
		return "Unknown"
	}
}

func describeCustom(c *models.CustomFrequency) string {
	if c == nil {
		return "Custom"
	}
	if len(c.SpecificDays) > 0 {
		labels := make([]string, 0, len(c.SpecificDays))
		for _, d := range c.SpecificDays {
			if d >= time.Sunday && d <= time.Saturday {
				labels = append(labels, dayNames[d])
			}
		}
		return strings.Join(labels, ", ")
	}
	switch c.Type {
	case constants.IntervalDays:
		if c.Interval == 1 {
			return "Daily"
		}
		return fmt.Sprintf("Every %d days", c.Interval)
	case constants.IntervalWeeks:
		if c.Interval == 1 {
			return "Weekly"
		}
		return fmt.Sprintf("Every %d weeks", c.Interval)
	}
	return "Custom"
}

// Progress returns the percentage of due dates between start and end that have
// a completion, rounded to the nearest integer. It is 0 when nothing is due.
func Progress(cfg models.FrequencyConfig, createdAt time.Time, completions []models.Day, start, end time.Time) int {
	done := make(map[models.Day]struct{}, len(completions))
	for _, d := range completions {
		done[d] = struct{}{}
	}

	var scheduled, completed int
	for d := range EnumerateDue(cfg, createdAt, start, end) {
		scheduled++
		if _, ok := done[models.DayOf(d)]; ok {
			completed++
		}
	}
	if scheduled == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(scheduled) * 100))
}
