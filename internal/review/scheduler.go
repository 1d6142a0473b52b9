// Package review implements the spaced-repetition scheduler for translation
// review cards. Intervals double on strong recall, hold on adequate recall,
// and reset to zero on failure.
package review

import (
	"sort"
	"strings"
	"time"

	"github.com/english-trainer/trainer/internal/models"
)

const (
	// Threshold is the score below which an exercise is enrolled for review
	// and a review attempt counts as failed. Both decisions use this one
	// constant so the two paths cannot diverge.
	Threshold = 6

	// MasteryScore is the score at or above which the interval grows.
	MasteryScore = 8

	// MaxIntervalDays caps interval growth at one year.
	MaxIntervalDays = 365

	// Difficulty multiplier bounds.
	MinDifficulty = 0.5
	MaxDifficulty = 2.0
)

const day = 24 * time.Hour

// Apply updates a review item in place from a 0-10 review score at time now.
//
// score >= 8: interval 0 becomes 1 day, otherwise doubles (capped at 365);
// due moves out by the new interval; difficulty eases by 0.9 (floor 0.5).
// 6 <= score < 8: interval unchanged (minimum 1); due moves out by it.
// score < 6: interval resets to 0, the item is due again immediately, and
// difficulty tightens by 1.1 (cap 2.0).
func Apply(item *models.ReviewItem, score int, now time.Time) {
	switch {
	case score >= MasteryScore:
		if item.IntervalDays == 0 {
			item.IntervalDays = 1
		} else {
			item.IntervalDays = min(MaxIntervalDays, item.IntervalDays*2)
		}
		item.DueAt = now.Add(time.Duration(item.IntervalDays) * day)
		item.Difficulty = max(MinDifficulty, item.Difficulty*0.9)

	case score >= Threshold:
		item.IntervalDays = max(1, item.IntervalDays)
		item.DueAt = now.Add(time.Duration(item.IntervalDays) * day)

	default:
		item.IntervalDays = 0
		item.DueAt = now
		item.Difficulty = min(MaxDifficulty, item.Difficulty*1.1)
	}
}

// ShouldEnroll reports whether an exercise with the given score belongs in
// the review queue.
func ShouldEnroll(score int) bool {
	return score < Threshold
}

// Enroll adds sourceText to the review list with the given due time. The key
// is the trimmed source text; empty keys are ignored. If an item with the
// same key already exists it is made more urgent instead: the earlier due
// time wins and the interval resets to 0. The list is deduplicated and
// re-sorted before returning.
func Enroll(items []models.ReviewItem, sourceText string, dueAt time.Time) []models.ReviewItem {
	key := strings.TrimSpace(sourceText)
	if key == "" {
		return items
	}

	found := false
	for i := range items {
		if strings.TrimSpace(items[i].SourceText) == key {
			if dueAt.Before(items[i].DueAt) {
				items[i].DueAt = dueAt
			}
			items[i].IntervalDays = 0
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.ReviewItem{
			SourceText: key,
			DueAt:      dueAt,
			Difficulty: 1.0,
		})
	}

	return Deduplicate(items)
}

// Deduplicate enforces the review-list invariant: at most one item per
// trimmed source text, keeping the more urgent (earlier due) item on
// conflict, with the result sorted ascending by due time. Items with empty
// keys are dropped.
func Deduplicate(items []models.ReviewItem) []models.ReviewItem {
	best := make(map[string]models.ReviewItem, len(items))
	keys := make([]string, 0, len(items))

	for _, item := range items {
		key := strings.TrimSpace(item.SourceText)
		if key == "" {
			continue
		}
		existing, ok := best[key]
		if !ok {
			best[key] = item
			keys = append(keys, key)
			continue
		}
		if item.DueAt.Before(existing.DueAt) {
			best[key] = item
		}
	}

	out := make([]models.ReviewItem, 0, len(keys))
	for _, key := range keys {
		out = append(out, best[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueAt.Before(out[j].DueAt)
	})
	return out
}
