package models

import (
	"sort"
	"strings"
	"time"
)

// HistoryCaps bounds the growable collections on TrainerState.
type HistoryCaps struct {
	MaxAttempts      int
	MaxRecentPhrases int
	MaxErrorTracking int
}

// TrainerState is the aggregate root for all learning progress. There is one
// per installation; every child entity is exclusively owned by it.
type TrainerState struct {
	XP             int              `json:"xp"`
	TotalExercises int              `json:"total_exercises"`
	CurrentLesson  string           `json:"current_lesson,omitempty"`
	CurrentTheme   string           `json:"current_theme,omitempty"`
	Attempts       []Attempt        `json:"attempts"`
	Review         []ReviewItem     `json:"review"`
	Notebook       []NotebookEntry  `json:"notebook"`
	Challenges     []DailyChallenge `json:"daily_challenges"`
	Settings       Settings         `json:"settings"`
	ErrorFrequency map[string]int   `json:"error_frequency"`
	RecentPhrases  []string         `json:"recent_phrases"`
	Achievements   []string         `json:"achievements,omitempty"`

	// errorInsertionOrder records the order in which error categories were
	// first seen, for stable tie-breaking in MostCommonErrors. Not persisted;
	// after a load, ties among pre-existing categories fall back to name order.
	errorInsertionOrder []string
}

// NewTrainerState returns a fresh default state.
func NewTrainerState(model string) *TrainerState {
	return &TrainerState{
		Settings:       DefaultSettings(model),
		ErrorFrequency: make(map[string]int),
	}
}

// LevelNum returns the current level number: 1 + XP/xpPerLevel.
func (s *TrainerState) LevelNum(xpPerLevel int) int {
	if xpPerLevel <= 0 {
		xpPerLevel = 100
	}
	return 1 + s.XP/xpPerLevel
}

// LevelName maps the level number onto CEFR band names.
func (s *TrainerState) LevelName(xpPerLevel int) string {
	level := s.LevelNum(xpPerLevel)
	switch {
	case level <= 2:
		return "A1 - Débutant"
	case level <= 5:
		return "A2 - Élémentaire"
	case level <= 10:
		return "B1 - Intermédiaire"
	case level <= 15:
		return "B2 - Avancé"
	case level <= 20:
		return "C1 - Autonome"
	default:
		return "C2 - Maîtrise"
	}
}

// LevelProgress returns the progress within the current level, in [0, 1].
func (s *TrainerState) LevelProgress(xpPerLevel int) float64 {
	if xpPerLevel <= 0 {
		xpPerLevel = 100
	}
	progress := float64(s.XP-(s.LevelNum(xpPerLevel)-1)*xpPerLevel) / float64(xpPerLevel)
	return max(0.0, min(1.0, progress))
}

// RecentPerformance returns the average score of the last 10 attempts,
// or 0 when there are none.
func (s *TrainerState) RecentPerformance() float64 {
	if len(s.Attempts) == 0 {
		return 0
	}
	recent := s.Attempts
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	sum := 0
	for _, a := range recent {
		sum += a.Score
	}
	return float64(sum) / float64(len(recent))
}

// DueReviews returns the items due at time now, sorted ascending by due time.
// The sort is stable: ties keep their list order.
func (s *TrainerState) DueReviews(now time.Time) []ReviewItem {
	var due []ReviewItem
	for _, r := range s.Review {
		if r.IsDue(now) {
			due = append(due, r)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueAt.Before(due[j].DueAt)
	})
	return due
}

// ErrorCount pairs an error category with its occurrence count.
type ErrorCount struct {
	Error string
	Count int
}

// MostCommonErrors returns up to n error categories by descending frequency.
// Ties are broken by which error was first recorded.
func (s *TrainerState) MostCommonErrors(n int) []ErrorCount {
	counts := make([]ErrorCount, 0, len(s.ErrorFrequency))
	order := make(map[string]int, len(s.ErrorFrequency))
	for i, k := range s.errorInsertionOrder {
		order[k] = i
	}
	for k, v := range s.ErrorFrequency {
		counts = append(counts, ErrorCount{Error: k, Count: v})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		oi, iOK := order[counts[i].Error]
		oj, jOK := order[counts[j].Error]
		if iOK && jOK {
			return oi < oj
		}
		return counts[i].Error < counts[j].Error
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// AddAttempt appends an attempt, evicting the oldest entries beyond the
// attempts cap, and updates the error-frequency map and recent-phrase list.
func (s *TrainerState) AddAttempt(a Attempt, caps HistoryCaps) {
	s.Attempts = append(s.Attempts, a)
	if caps.MaxAttempts > 0 && len(s.Attempts) > caps.MaxAttempts {
		s.Attempts = append([]Attempt(nil), s.Attempts[len(s.Attempts)-caps.MaxAttempts:]...)
	}

	if a.MainError != "" {
		key := strings.ToLower(strings.TrimSpace(a.MainError))
		if s.ErrorFrequency == nil {
			s.ErrorFrequency = make(map[string]int)
		}
		if _, seen := s.ErrorFrequency[key]; !seen {
			s.errorInsertionOrder = append(s.errorInsertionOrder, key)
		}
		s.ErrorFrequency[key]++
	}

	s.RecentPhrases = append(s.RecentPhrases, a.SourceText)
	if caps.MaxRecentPhrases > 0 && len(s.RecentPhrases) > caps.MaxRecentPhrases {
		s.RecentPhrases = append([]string(nil), s.RecentPhrases[len(s.RecentPhrases)-caps.MaxRecentPhrases:]...)
	}
}

// AddNotebookEntry appends a notebook entry.
func (s *TrainerState) AddNotebookEntry(e NotebookEntry) {
	s.Notebook = append(s.Notebook, e)
}

// NotebookByTopic returns notebook entries whose topic matches, case-insensitively.
func (s *TrainerState) NotebookByTopic(topic string) []NotebookEntry {
	var out []NotebookEntry
	for _, e := range s.Notebook {
		if strings.EqualFold(e.Topic, topic) {
			out = append(out, e)
		}
	}
	return out
}

// SearchNotebook returns entries whose title, content, or tags contain the
// query, case-insensitively.
func (s *TrainerState) SearchNotebook(query string) []NotebookEntry {
	query = strings.ToLower(query)
	var out []NotebookEntry
	for _, e := range s.Notebook {
		if strings.Contains(strings.ToLower(e.Title), query) ||
			strings.Contains(strings.ToLower(e.Content), query) {
			out = append(out, e)
			continue
		}
		for _, tag := range e.Tags {
			if strings.Contains(strings.ToLower(tag), query) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// AddDailyChallenge inserts a challenge, or regenerates the existing one for
// the same date in place. Completion status is never overwritten.
func (s *TrainerState) AddDailyChallenge(c DailyChallenge) {
	for i := range s.Challenges {
		if s.Challenges[i].Date == c.Date {
			existing := &s.Challenges[i]
			existing.ChallengeType = c.ChallengeType
			existing.Title = c.Title
			existing.Description = c.Description
			existing.Instructions = c.Instructions
			existing.Example = c.Example
			existing.Tips = c.Tips
			existing.XPReward = c.XPReward
			return
		}
	}
	s.Challenges = append(s.Challenges, c)
}

// TodayChallenge returns the challenge for now's calendar date, or nil.
func (s *TrainerState) TodayChallenge(now time.Time) *DailyChallenge {
	today := now.Format("2006-01-02")
	for i := range s.Challenges {
		if s.Challenges[i].Date == today {
			return &s.Challenges[i]
		}
	}
	return nil
}

// PendingChallenges returns all challenges not yet completed.
func (s *TrainerState) PendingChallenges() []DailyChallenge {
	var out []DailyChallenge
	for _, c := range s.Challenges {
		if !c.Completed {
			out = append(out, c)
		}
	}
	return out
}

// CompleteTodayChallenge completes today's challenge if one exists and is
// still open, awarding its XP. Returns false if there was nothing to complete.
func (s *TrainerState) CompleteTodayChallenge(now time.Time) bool {
	c := s.TodayChallenge(now)
	if c == nil || c.Completed {
		return false
	}
	c.MarkCompleted(now)
	s.XP += c.XPReward
	return true
}
