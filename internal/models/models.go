// Package models defines the learning-progress data model: the TrainerState
// aggregate and the entities it owns.
package models

import "time"

// Attempt is an immutable record of one completed translation exercise.
type Attempt struct {
	Timestamp   time.Time `json:"ts"`
	SourceText  string    `json:"source_text"`
	Translation string    `json:"translation"`
	Score       int       `json:"score"`
	MainError   string    `json:"main_error,omitempty"`
	LessonFocus string    `json:"lesson_focus,omitempty"`
	Theme       string    `json:"theme,omitempty"`
}

// FormattedDate returns the attempt time as "2006-01-02 15:04".
func (a Attempt) FormattedDate() string {
	return a.Timestamp.Format("2006-01-02 15:04")
}

// ReviewItem is a spaced-repetition card keyed by its trimmed source text.
type ReviewItem struct {
	SourceText   string    `json:"source_text"`
	DueAt        time.Time `json:"due_at"`
	IntervalDays int       `json:"interval_days"`
	Difficulty   float64   `json:"difficulty"` // 1.0 = normal, >1.0 = harder
}

// IsDue reports whether the item is due at time now.
func (r ReviewItem) IsDue(now time.Time) bool {
	return !r.DueAt.After(now)
}

// DaysUntilDue returns whole days until the item is due, negative if overdue.
func (r ReviewItem) DaysUntilDue(now time.Time) int {
	return int(r.DueAt.Sub(now).Hours() / 24)
}

// NotebookEntry is a lesson the user saved for later reference.
type NotebookEntry struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []string  `json:"tags,omitempty"`
	Favorite  bool      `json:"favorite"`
}

// FormattedDate returns the creation time as "2006-01-02 15:04".
func (e NotebookEntry) FormattedDate() string {
	return e.CreatedAt.Format("2006-01-02 15:04")
}

// DailyChallenge is a one-per-date practice challenge. Completion is a
// one-way transition.
type DailyChallenge struct {
	Date          string     `json:"date"` // YYYY-MM-DD
	ChallengeType string     `json:"challenge_type"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Instructions  string     `json:"instructions"`
	Example       string     `json:"example"`
	Tips          []string   `json:"tips,omitempty"`
	XPReward      int        `json:"xp_reward"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// MarkCompleted marks the challenge as completed at time now.
func (c *DailyChallenge) MarkCompleted(now time.Time) {
	c.Completed = true
	c.CompletedAt = &now
}

// Difficulty preferences recognized in Settings.
const (
	DifficultyEasy     = "easy"
	DifficultyNormal   = "normal"
	DifficultyHard     = "hard"
	DifficultyAdaptive = "adaptive"
)

// Settings holds per-user preferences.
type Settings struct {
	Model                string            `json:"model"`
	Temperature          float64           `json:"temperature"`
	AutoSaveLessons      bool              `json:"auto_save_lessons"`
	ShowDetailedFeedback bool              `json:"show_detailed_feedback"`
	DifficultyPreference string            `json:"difficulty_preference"`
	UITheme              string            `json:"ui_theme"`
	CustomTheme          map[string]string `json:"custom_theme,omitempty"`
}

// DefaultSettings returns settings for a fresh state.
func DefaultSettings(model string) Settings {
	return Settings{
		Model:                model,
		Temperature:          0.7,
		AutoSaveLessons:      true,
		ShowDetailedFeedback: true,
		DifficultyPreference: DifficultyAdaptive,
		UITheme:              "modern",
	}
}
