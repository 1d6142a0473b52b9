package gamification

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/english-trainer/trainer/internal/models"
)

func TestCheckAchievementsExerciseCounts(t *testing.T) {
	tests := []struct {
		exercises int
		want      []string
	}{
		{0, nil},
		{1, []string{"first_exercise"}},
		{10, []string{"first_exercise", "exercises_10"}},
		{100, []string{"first_exercise", "exercises_10", "exercises_50", "exercises_100"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d exercises", tt.exercises), func(t *testing.T) {
			state := models.NewTrainerState("m")
			state.TotalExercises = tt.exercises
			assert.Equal(t, tt.want, CheckAchievements(state, 100))
		})
	}
}

func TestCheckAchievementsPerfectScore(t *testing.T) {
	state := models.NewTrainerState("m")
	state.Attempts = []models.Attempt{{Score: 9}, {Score: 10}}
	assert.Contains(t, CheckAchievements(state, 100), "perfect_score")

	state.Attempts = []models.Attempt{{Score: 9}}
	assert.NotContains(t, CheckAchievements(state, 100), "perfect_score")
}

func TestCheckAchievementsNotebookAndLevel(t *testing.T) {
	state := models.NewTrainerState("m")
	for i := 0; i < 5; i++ {
		state.AddNotebookEntry(models.NotebookEntry{Title: "x"})
	}
	state.XP = 200 // level 3

	earned := CheckAchievements(state, 100)
	assert.Contains(t, earned, "notebook_5")
	assert.Contains(t, earned, "level_b1")
}

func TestCheckAchievementsChallengesAndThemes(t *testing.T) {
	state := models.NewTrainerState("m")
	for i := 0; i < 5; i++ {
		state.Challenges = append(state.Challenges, models.DailyChallenge{Completed: true})
	}
	for i := 0; i < 10; i++ {
		state.Attempts = append(state.Attempts, models.Attempt{Theme: fmt.Sprintf("thème %d", i)})
	}

	earned := CheckAchievements(state, 100)
	assert.Contains(t, earned, "challenges_5")
	assert.Contains(t, earned, "themes_10")
}

func TestUnlock(t *testing.T) {
	state := models.NewTrainerState("m")
	state.TotalExercises = 10
	state.Achievements = []string{"first_exercise"}

	names := Unlock(state, 100)
	assert.Equal(t, []string{"Débutant assidu"}, names)
	assert.Equal(t, []string{"first_exercise", "exercises_10"}, state.Achievements)

	// Nothing new on a second pass.
	assert.Empty(t, Unlock(state, 100))
}

func TestEveryCheckedKeyIsDefined(t *testing.T) {
	state := models.NewTrainerState("m")
	state.TotalExercises = 100
	state.XP = 10000
	state.Attempts = []models.Attempt{{Score: 10}}
	for i := 0; i < 10; i++ {
		state.AddNotebookEntry(models.NotebookEntry{})
		state.Challenges = append(state.Challenges, models.DailyChallenge{Completed: true})
		state.Attempts = append(state.Attempts, models.Attempt{Theme: fmt.Sprintf("t%d", i)})
	}

	earned := CheckAchievements(state, 100)
	require.Len(t, earned, len(Achievements))
	for _, key := range earned {
		def, ok := Achievements[key]
		assert.True(t, ok, "key %q has no definition", key)
		assert.NotEmpty(t, def.Name)
	}
}

func TestAwardExercise(t *testing.T) {
	state := models.NewTrainerState("m")

	AwardExercise(state, 7)
	assert.Equal(t, 7, state.XP)
	assert.Equal(t, 1, state.TotalExercises)

	AwardExercise(state, -3)
	assert.Equal(t, 7, state.XP)
	assert.Equal(t, 2, state.TotalExercises)
}

func TestChallengeCompletionAwardsXP(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	state := models.NewTrainerState("m")
	state.AddDailyChallenge(models.DailyChallenge{Date: "2025-03-15", Title: "Défi", XPReward: 15})

	require.True(t, state.CompleteTodayChallenge(now))
	assert.Equal(t, 15, state.XP)
}
