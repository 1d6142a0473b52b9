package app

import (
	"context"
	"strings"

	"github.com/english-trainer/trainer/internal/gamification"
	"github.com/english-trainer/trainer/internal/generator"
	"github.com/english-trainer/trainer/internal/models"
	"github.com/english-trainer/trainer/internal/review"
)

func (a *App) exerciseSession(ctx context.Context) {
	a.printf("Génération de l'exercice...\n")
	exercise, _ := a.svc.GenerateExercise(ctx, a.state, a.cfg.XPPerLevel)

	a.printf("\n── Traduisez en anglais ─────────────────\n")
	a.printf("%s\n", exercise.FrenchText)
	if exercise.Notes != "" {
		a.printf("(%s)\n", exercise.Notes)
	}

	translation := a.prompt("Votre traduction : ")
	switch strings.ToLower(translation) {
	case "", "q", "quit", "exit":
		return
	}

	a.printf("Correction en cours...\n")
	eval, _ := a.svc.EvaluateTranslation(ctx, exercise.FrenchText, translation, a.state.Settings)

	a.state.AddAttempt(models.Attempt{
		Timestamp:   a.now(),
		SourceText:  exercise.FrenchText,
		Translation: translation,
		Score:       eval.Score,
		MainError:   eval.MainError,
		LessonFocus: a.state.CurrentLesson,
		Theme:       a.state.CurrentTheme,
	}, a.caps())
	gamification.AwardExercise(a.state, eval.Score)

	if review.ShouldEnroll(eval.Score) {
		a.state.Review = review.Enroll(a.state.Review, exercise.FrenchText, a.now())
	}

	a.showEvaluation(eval)
	a.announceAchievements()
	a.saveState()
	a.pause()
}

func (a *App) reviewSession(ctx context.Context) {
	due := a.state.DueReviews(a.now())
	if len(due) == 0 {
		a.printf("Aucune révision en attente.\n")
		return
	}
	if len(due) > 5 {
		due = due[:5]
	}

	for _, item := range due {
		a.printf("\n── RÉVISION ─────────────────────────────\n")
		a.printf("%s\n", item.SourceText)

		translation := a.prompt("Traduction : ")
		if translation == "" || strings.EqualFold(translation, "q") {
			break
		}

		a.printf("Correction...\n")
		eval, _ := a.svc.EvaluateTranslation(ctx, item.SourceText, translation, a.state.Settings)
		a.showEvaluation(eval)

		// The due list holds copies; apply the schedule update to the real item.
		for i := range a.state.Review {
			if a.state.Review[i].SourceText == item.SourceText {
				review.Apply(&a.state.Review[i], eval.Score, a.now())
				if eval.Score >= review.MasteryScore {
					a.printf("Excellent! Revu dans %d jours.\n", a.state.Review[i].IntervalDays)
				} else {
					a.printf("À revoir prochainement.\n")
				}
				break
			}
		}

		a.announceAchievements()
		a.saveState()
		a.pause()
	}
}

func (a *App) showEvaluation(eval generator.Evaluation) {
	a.printf("\nScore : %d/10\n", eval.Score)
	if eval.IdealTranslation != "" {
		a.printf("Traduction idéale : %s\n", eval.IdealTranslation)
	}
	if a.state.Settings.ShowDetailedFeedback {
		if eval.MainError != "" {
			a.printf("Erreur principale : %s\n", eval.MainError)
		}
		if eval.Lesson != "" {
			a.printf("Leçon : %s\n", eval.Lesson)
		}
		for _, s := range eval.Suggestions {
			a.printf("  - %s\n", s)
		}
	}
}

func (a *App) caps() models.HistoryCaps {
	return models.HistoryCaps{
		MaxAttempts:      a.cfg.MaxAttemptsHistory,
		MaxRecentPhrases: a.cfg.MaxRecentPhrases,
		MaxErrorTracking: a.cfg.MaxErrorTracking,
	}
}
