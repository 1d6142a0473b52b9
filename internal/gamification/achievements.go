// Package gamification awards XP and achievements for learning activity.
package gamification

import "github.com/english-trainer/trainer/internal/models"

// AchievementDef defines a single achievement.
type AchievementDef struct {
	Name        string
	Description string
}

// Achievements maps achievement keys to their definitions.
var Achievements = map[string]AchievementDef{
	"first_exercise": {Name: "Premiers pas", Description: "Complétez votre premier exercice"},
	"exercises_10":   {Name: "Débutant assidu", Description: "Complétez 10 exercices"},
	"exercises_50":   {Name: "Élève studieux", Description: "Complétez 50 exercices"},
	"exercises_100":  {Name: "Champion de la traduction", Description: "Complétez 100 exercices"},
	"perfect_score":  {Name: "Perfectionniste", Description: "Obtenez un score de 10 sur un exercice"},
	"notebook_5":     {Name: "Collectionneur de leçons", Description: "Sauvegardez 5 leçons dans votre cahier"},
	"level_b1":       {Name: "Polyglotte en herbe", Description: "Atteignez le niveau B1"},
	"challenges_5":   {Name: "Défi accepté", Description: "Relevez 5 défis quotidiens"},
	"themes_10":      {Name: "Explorateur", Description: "Essayez 10 thèmes différents"},
}

// CheckAchievements returns every achievement key the state currently
// qualifies for. The caller diffs against the already earned set and only
// announces new ones.
func CheckAchievements(state *models.TrainerState, xpPerLevel int) []string {
	var earned []string

	if state.TotalExercises >= 1 {
		earned = append(earned, "first_exercise")
	}
	if state.TotalExercises >= 10 {
		earned = append(earned, "exercises_10")
	}
	if state.TotalExercises >= 50 {
		earned = append(earned, "exercises_50")
	}
	if state.TotalExercises >= 100 {
		earned = append(earned, "exercises_100")
	}

	for _, a := range state.Attempts {
		if a.Score == 10 {
			earned = append(earned, "perfect_score")
			break
		}
	}

	if len(state.Notebook) >= 5 {
		earned = append(earned, "notebook_5")
	}

	if state.LevelNum(xpPerLevel) >= 3 {
		earned = append(earned, "level_b1")
	}

	completed := 0
	for _, c := range state.Challenges {
		if c.Completed {
			completed++
		}
	}
	if completed >= 5 {
		earned = append(earned, "challenges_5")
	}

	themes := make(map[string]bool)
	for _, a := range state.Attempts {
		if a.Theme != "" {
			themes[a.Theme] = true
		}
	}
	if len(themes) >= 10 {
		earned = append(earned, "themes_10")
	}

	return earned
}

// Unlock records newly qualified achievements on the state and returns their
// display names, in checklist order.
func Unlock(state *models.TrainerState, xpPerLevel int) []string {
	have := make(map[string]bool, len(state.Achievements))
	for _, key := range state.Achievements {
		have[key] = true
	}

	var names []string
	for _, key := range CheckAchievements(state, xpPerLevel) {
		if have[key] {
			continue
		}
		state.Achievements = append(state.Achievements, key)
		names = append(names, Achievements[key].Name)
	}
	return names
}
