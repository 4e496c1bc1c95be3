package constants

import "time"

// Category represents the fixed set of habit categories
type Category string

// FrequencyType represents how often a habit recurs
type FrequencyType string

// IntervalUnit represents the unit of a custom frequency interval
type IntervalUnit string

const (
	AppName           = "habitual"
	Version           = "v0.1.0"
	DefaultConfigPath = "~/.config/habitual/habitual.db"
	DefaultConfigFile = "~/.config/habitual/config.json"
	DefaultCachePath  = "~/.config/habitual/cache.json"

	// Keyring entries
	KeyringDBUser     = "database-connection"
	KeyringSecretUser = "jwt-signing-secret"

	// DateFormat is the calendar date format exchanged everywhere (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Server defaults
	DefaultAddr             = ":8080"
	DefaultTimezone         = "UTC"
	DefaultAccessTokenTTL   = 15 * time.Minute
	DefaultRefreshTokenTTL  = 7 * 24 * time.Hour
	DefaultAuthRateLimit    = 5
	DefaultShutdownTimeout  = 30 * time.Second
	DefaultCORSAllowOrigins = "http://localhost:3000,http://localhost:5173"

	// Analytics windows, in calendar days including today
	StreakWindowDays      = 7
	WeekWindowDays        = 7
	HeatmapWindowDays     = 30
	HabitStreakWindowDays = 30

	// Habit defaults
	DefaultHabitColor  = "#3B82F6"
	DefaultTargetCount = 1
	MaxTargetCount     = 10

	// Frequency types
	FrequencyDaily  FrequencyType = "daily"
	FrequencyWeekly FrequencyType = "weekly"
	FrequencyCustom FrequencyType = "custom"

	// Custom interval units
	IntervalDays  IntervalUnit = "days"
	IntervalWeeks IntervalUnit = "weeks"

	// Categories
	CategoryHealth       Category = "health"
	CategoryFitness      Category = "fitness"
	CategoryProductivity Category = "productivity"
	CategoryLearning     Category = "learning"
	CategorySocial       Category = "social"
	CategoryMindfulness  Category = "mindfulness"
	CategoryCreativity   Category = "creativity"
	CategoryOther        Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryHealth,
	CategoryFitness,
	CategoryProductivity,
	CategoryLearning,
	CategorySocial,
	CategoryMindfulness,
	CategoryCreativity,
	CategoryOther,
}

// IsCategory reports whether s names a known category.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}
