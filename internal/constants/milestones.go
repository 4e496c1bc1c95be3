package constants

// Milestone is a streak length worth celebrating
type Milestone struct {
	Days    int    `json:"days"`
	Title   string `json:"title"`
	Emoji   string `json:"emoji"`
	Message string `json:"message"`
}

// StreakMilestones is ordered by ascending Days.
var StreakMilestones = []Milestone{
	{Days: 3, Title: "Getting Started!", Emoji: "🌱", Message: "Great start! Keep it up!"},
	{Days: 7, Title: "One Week Strong!", Emoji: "🔥", Message: "A full week of consistency!"},
	{Days: 14, Title: "Two Weeks!", Emoji: "💪", Message: "You're building a solid habit!"},
	{Days: 21, Title: "Three Weeks!", Emoji: "⭐", Message: "Habit formation in progress!"},
	{Days: 30, Title: "One Month!", Emoji: "🎉", Message: "A full month of dedication!"},
	{Days: 50, Title: "Fifty Days!", Emoji: "🏆", Message: "You're unstoppable!"},
	{Days: 100, Title: "Century Club!", Emoji: "💯", Message: "One hundred days of excellence!"},
	{Days: 365, Title: "One Year!", Emoji: "🎊", Message: "A full year of commitment!"},
}

// Completion rate thresholds (percent)
const (
	RatingExcellentThreshold = 90
	RatingGoodThreshold      = 75
	RatingFairThreshold      = 50

	RatingExcellent = "excellent"
	RatingGood      = "good"
	RatingFair      = "fair"
	RatingPoor      = "poor"
)
