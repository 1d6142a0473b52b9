package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/english-trainer/trainer/internal/models"
)

var now = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func TestApplyStrongRecall(t *testing.T) {
	tests := []struct {
		name         string
		interval     int
		wantInterval int
	}{
		{"first success starts at one day", 0, 1},
		{"interval doubles", 4, 8},
		{"doubling caps at a year", 300, 365},
		{"capped interval stays capped", 365, 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := models.ReviewItem{SourceText: "x", IntervalDays: tt.interval, Difficulty: 1.0}
			Apply(&item, 9, now)

			assert.Equal(t, tt.wantInterval, item.IntervalDays)
			assert.Equal(t, now.Add(time.Duration(tt.wantInterval)*24*time.Hour), item.DueAt)
			assert.InDelta(t, 0.9, item.Difficulty, 1e-9)
		})
	}
}

func TestRepeatedStrongRecallNeverShrinks(t *testing.T) {
	item := models.ReviewItem{SourceText: "x", Difficulty: 1.0}

	prev := 0
	at := now
	for i := 0; i < 12; i++ {
		Apply(&item, 9, at)
		assert.GreaterOrEqual(t, item.IntervalDays, prev)
		assert.LessOrEqual(t, item.IntervalDays, MaxIntervalDays)
		prev = item.IntervalDays
		at = item.DueAt
	}
	assert.Equal(t, MaxIntervalDays, item.IntervalDays)
}

func TestApplyDifficultyFloor(t *testing.T) {
	item := models.ReviewItem{SourceText: "x", Difficulty: 0.52}
	Apply(&item, 10, now)
	assert.InDelta(t, 0.5, item.Difficulty, 1e-9)
}

func TestApplyAdequateRecall(t *testing.T) {
	t.Run("interval holds", func(t *testing.T) {
		item := models.ReviewItem{SourceText: "x", IntervalDays: 4, Difficulty: 1.0}
		Apply(&item, 7, now)

		assert.Equal(t, 4, item.IntervalDays)
		assert.Equal(t, now.Add(4*24*time.Hour), item.DueAt)
		assert.InDelta(t, 1.0, item.Difficulty, 1e-9)
	})

	t.Run("zero interval bumps to one day", func(t *testing.T) {
		item := models.ReviewItem{SourceText: "x", Difficulty: 1.0}
		Apply(&item, 6, now)

		assert.Equal(t, 1, item.IntervalDays)
		assert.Equal(t, now.Add(24*time.Hour), item.DueAt)
	})
}

func TestApplyFailedRecall(t *testing.T) {
	item := models.ReviewItem{SourceText: "x", IntervalDays: 16, Difficulty: 1.0, DueAt: now.Add(48 * time.Hour)}
	Apply(&item, 3, now)

	assert.Equal(t, 0, item.IntervalDays)
	assert.Equal(t, now, item.DueAt)
	assert.InDelta(t, 1.1, item.Difficulty, 1e-9)
	assert.True(t, item.IsDue(now))
}

func TestApplyDifficultyCap(t *testing.T) {
	item := models.ReviewItem{SourceText: "x", Difficulty: 1.95}
	Apply(&item, 0, now)
	assert.InDelta(t, 2.0, item.Difficulty, 1e-9)
}

func TestShouldEnroll(t *testing.T) {
	assert.True(t, ShouldEnroll(0))
	assert.True(t, ShouldEnroll(5))
	assert.False(t, ShouldEnroll(6))
	assert.False(t, ShouldEnroll(10))
}

// A score that enrolls an exercise is exactly a score that fails a review of
// the same card.
func TestEnrollAndFailureAgree(t *testing.T) {
	for score := 0; score <= 10; score++ {
		item := models.ReviewItem{SourceText: "x", IntervalDays: 4, Difficulty: 1.0}
		Apply(&item, score, now)
		assert.Equal(t, ShouldEnroll(score), item.IntervalDays == 0, "score %d", score)
	}
}

func TestEnroll(t *testing.T) {
	t.Run("new item", func(t *testing.T) {
		items := Enroll(nil, "  Le chat dort.  ", now)
		require.Len(t, items, 1)
		assert.Equal(t, "Le chat dort.", items[0].SourceText)
		assert.Equal(t, now, items[0].DueAt)
		assert.Equal(t, 0, items[0].IntervalDays)
		assert.InDelta(t, 1.0, items[0].Difficulty, 1e-9)
	})

	t.Run("empty text ignored", func(t *testing.T) {
		items := Enroll(nil, "   ", now)
		assert.Empty(t, items)
	})

	t.Run("re-enrollment keeps the earlier due time and resets the interval", func(t *testing.T) {
		items := []models.ReviewItem{
			{SourceText: "Le chat dort.", DueAt: now.Add(-time.Hour), IntervalDays: 8, Difficulty: 1.2},
		}
		items = Enroll(items, "Le chat dort.", now)

		require.Len(t, items, 1)
		assert.Equal(t, now.Add(-time.Hour), items[0].DueAt)
		assert.Equal(t, 0, items[0].IntervalDays)
		assert.InDelta(t, 1.2, items[0].Difficulty, 1e-9)
	})

	t.Run("re-enrollment with an earlier time moves the due time up", func(t *testing.T) {
		items := []models.ReviewItem{
			{SourceText: "Le chat dort.", DueAt: now.Add(72 * time.Hour), IntervalDays: 2, Difficulty: 1.0},
		}
		items = Enroll(items, "Le chat dort.", now)

		require.Len(t, items, 1)
		assert.Equal(t, now, items[0].DueAt)
		assert.Equal(t, 0, items[0].IntervalDays)
	})
}

func TestDeduplicate(t *testing.T) {
	a := models.ReviewItem{SourceText: "a", DueAt: now.Add(48 * time.Hour)}
	aEarlier := models.ReviewItem{SourceText: " a ", DueAt: now}
	b := models.ReviewItem{SourceText: "b", DueAt: now.Add(24 * time.Hour)}
	empty := models.ReviewItem{SourceText: "   ", DueAt: now}

	got := Deduplicate([]models.ReviewItem{a, b, aEarlier, empty})

	require.Len(t, got, 2)
	assert.Equal(t, " a ", got[0].SourceText)
	assert.Equal(t, now, got[0].DueAt)
	assert.Equal(t, "b", got[1].SourceText)
}

func TestDeduplicateSortsByDueTime(t *testing.T) {
	items := []models.ReviewItem{
		{SourceText: "c", DueAt: now.Add(72 * time.Hour)},
		{SourceText: "a", DueAt: now},
		{SourceText: "b", DueAt: now.Add(24 * time.Hour)},
	}
	got := Deduplicate(items)

	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].DueAt.Before(got[i-1].DueAt))
	}
}
