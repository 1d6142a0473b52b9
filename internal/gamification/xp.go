package gamification

import "github.com/english-trainer/trainer/internal/models"

// AwardExercise credits a finished exercise: the 0-10 score is the XP gain.
func AwardExercise(state *models.TrainerState, score int) {
	if score < 0 {
		score = 0
	}
	state.XP += score
	state.TotalExercises++
}
