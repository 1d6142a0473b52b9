// Package storage persists the trainer state to a single JSON file. Saves
// are atomic (temp file plus rename) and loads never fail: any corruption,
// missing field or wrong type degrades to defaults so the learner's session
// always starts.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/english-trainer/trainer/internal/models"
	"github.com/english-trainer/trainer/internal/review"
)

// Store reads and writes the state file.
type Store struct {
	path         string
	caps         models.HistoryCaps
	defaultModel string
	logger       *zap.Logger
}

func New(path string, caps models.HistoryCaps, defaultModel string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, caps: caps, defaultModel: defaultModel, logger: logger}
}

// Path returns the state file location.
func (s *Store) Path() string { return s.path }

// Save writes state atomically: marshal to a temp sibling, then rename over
// the target. The temp file is removed on failure so retries start clean.
func (s *Store) Save(state *models.TrainerState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Load reads the state file. It never returns an error: a missing file,
// unreadable JSON or a non-object top level all produce a fresh default
// state, and malformed elements inside the file are coerced or skipped
// individually.
func (s *Store) Load() *models.TrainerState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("state file unreadable, starting fresh", zap.Error(err))
		}
		return models.NewTrainerState(s.defaultModel)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		s.logger.Warn("state file corrupt, starting fresh", zap.Error(err))
		return models.NewTrainerState(s.defaultModel)
	}

	return s.deserialize(raw)
}

func (s *Store) deserialize(raw map[string]any) *models.TrainerState {
	state := models.NewTrainerState(s.defaultModel)
	now := time.Now()

	state.XP = clampInt(raw["xp"], 0, 1_000_000_000, 0)
	state.TotalExercises = clampInt(raw["total_exercises"], 0, 1_000_000_000, 0)
	state.CurrentLesson = asString(raw["current_lesson"])
	state.CurrentTheme = asString(raw["current_theme"])

	if settings, ok := raw["settings"].(map[string]any); ok {
		state.Settings = s.deserializeSettings(settings)
	}

	if attempts, ok := raw["attempts"].([]any); ok {
		// Respect the history cap, keeping the most recent entries.
		if len(attempts) > s.caps.MaxAttempts {
			attempts = attempts[len(attempts)-s.caps.MaxAttempts:]
		}
		for _, v := range attempts {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			state.Attempts = append(state.Attempts, models.Attempt{
				Timestamp:   asTime(m["ts"], now),
				SourceText:  asString(m["source_text"]),
				Translation: asString(m["translation"]),
				Score:       clampInt(m["score"], 0, 10, 0),
				MainError:   asString(m["main_error"]),
				LessonFocus: asString(m["lesson_focus"]),
				Theme:       asString(m["theme"]),
			})
		}
	}

	if items, ok := raw["review"].([]any); ok {
		for _, v := range items {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			state.Review = append(state.Review, models.ReviewItem{
				SourceText:   asString(m["source_text"]),
				DueAt:        asTime(m["due_at"], now),
				IntervalDays: clampInt(m["interval_days"], 0, 3650, 0),
				Difficulty:   asFloat(m["difficulty"], 1.0),
			})
		}
	}

	if entries, ok := raw["notebook"].([]any); ok {
		for _, v := range entries {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			state.Notebook = append(state.Notebook, models.NotebookEntry{
				Title:     asString(m["title"]),
				Content:   asString(m["content"]),
				Topic:     asString(m["topic"]),
				CreatedAt: asTime(m["created_at"], now),
				Tags:      asStringSlice(m["tags"]),
				Favorite:  asBool(m["favorite"]),
			})
		}
	}

	if challenges, ok := raw["daily_challenges"].([]any); ok {
		for _, v := range challenges {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			c := models.DailyChallenge{
				Date:          asString(m["date"]),
				ChallengeType: asString(m["challenge_type"]),
				Title:         asString(m["title"]),
				Description:   asString(m["description"]),
				Instructions:  asString(m["instructions"]),
				Example:       asString(m["example"]),
				Tips:          asStringSlice(m["tips"]),
				XPReward:      clampInt(m["xp_reward"], 0, 1000, 10),
				Completed:     asBool(m["completed"]),
			}
			if t := asTime(m["completed_at"], time.Time{}); !t.IsZero() {
				c.CompletedAt = &t
			}
			state.Challenges = append(state.Challenges, c)
		}
	}

	if freq, ok := raw["error_frequency"].(map[string]any); ok {
		for k, v := range freq {
			if n := clampInt(v, 0, 1_000_000_000, -1); n > 0 {
				state.ErrorFrequency[k] = n
			}
		}
	}
	state.RecentPhrases = asStringSlice(raw["recent_phrases"])
	state.Achievements = asStringSlice(raw["achievements"])

	// Restore the file's invariants in case it was edited or written by an
	// older version.
	state.Review = review.Deduplicate(state.Review)
	if len(state.RecentPhrases) > s.caps.MaxRecentPhrases {
		state.RecentPhrases = state.RecentPhrases[len(state.RecentPhrases)-s.caps.MaxRecentPhrases:]
	}
	s.trimErrorFrequency(state)

	return state
}

func (s *Store) deserializeSettings(m map[string]any) models.Settings {
	settings := models.DefaultSettings(s.defaultModel)

	if v := asString(m["model"]); v != "" {
		settings.Model = v
	}
	if v := asFloat(m["temperature"], 0); v > 0 {
		settings.Temperature = v
	}
	if _, ok := m["auto_save_lessons"]; ok {
		settings.AutoSaveLessons = asBool(m["auto_save_lessons"])
	}
	if _, ok := m["show_detailed_feedback"]; ok {
		settings.ShowDetailedFeedback = asBool(m["show_detailed_feedback"])
	}
	if v := asString(m["difficulty_preference"]); v != "" {
		settings.DifficultyPreference = v
	}
	if v := asString(m["ui_theme"]); v != "" {
		settings.UITheme = v
	}
	if custom, ok := m["custom_theme"].(map[string]any); ok {
		settings.CustomTheme = make(map[string]string, len(custom))
		for k, v := range custom {
			settings.CustomTheme[k] = asString(v)
		}
	}
	return settings
}

// trimErrorFrequency keeps only the most frequent error categories when the
// map exceeds the configured cap.
func (s *Store) trimErrorFrequency(state *models.TrainerState) {
	if len(state.ErrorFrequency) <= s.caps.MaxErrorTracking {
		return
	}

	type kv struct {
		name  string
		count int
	}
	sorted := make([]kv, 0, len(state.ErrorFrequency))
	for k, v := range state.ErrorFrequency {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].name < sorted[j].name
	})

	kept := make(map[string]int, s.caps.MaxErrorTracking)
	for _, e := range sorted[:s.caps.MaxErrorTracking] {
		kept[e.name] = e.count
	}
	state.ErrorFrequency = kept
}
