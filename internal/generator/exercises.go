package generator

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"github.com/english-trainer/trainer/internal/models"
)

// Exercise is one French-to-English translation prompt for the learner.
type Exercise struct {
	FrenchText string
	Notes      string
}

// cannedExercises backs the last fallback tier so an exercise session can
// always start, even with the model completely unreachable.
var cannedExercises = []Exercise{
	{FrenchText: "Je vais au marché ce matin.", Notes: "Futur proche"},
	{FrenchText: "Elle a mangé une pomme hier.", Notes: "Passé composé"},
	{FrenchText: "Nous sommes en train de travailler.", Notes: "Présent continu"},
	{FrenchText: "Il faut que tu viennes demain.", Notes: "Subjonctif"},
	{FrenchText: "Si j'avais de l'argent, j'achèterais une voiture.", Notes: "Conditionnel"},
}

// GenerateExercise produces a new translation exercise tailored to the
// learner's level, lesson focus, theme, recent phrases and common errors.
//
// Three tiers: the full personalized prompt, then a minimal prompt at
// temperature 0.5, then a canned exercise. The returned exercise always has
// non-empty French text and the error is always nil; tier failures are
// logged, not surfaced.
func (s *Service) GenerateExercise(ctx context.Context, state *models.TrainerState, xpPerLevel int) (Exercise, error) {
	level := state.LevelName(xpPerLevel)

	var commonErrors []string
	for _, ec := range state.MostCommonErrors(5) {
		commonErrors = append(commonErrors, ec.Error)
	}

	prompt := BuildExercisePrompt(level, state.CurrentLesson, state.CurrentTheme, state.RecentPhrases, commonErrors)

	obj, err := s.callJSON(ctx, "generate_exercise", prompt,
		"Génère un exercice de traduction adapté.",
		state.Settings.Temperature, state.Settings.Model)
	if err == nil {
		if text := str(obj, "paragraph_fr"); text != "" {
			return Exercise{FrenchText: text, Notes: str(obj, "notes")}, nil
		}
		s.logger.Warn("exercise response missing paragraph_fr")
	} else {
		s.logger.Warn("exercise generation failed", zap.Error(err))
	}

	// Second tier: a bare-bones prompt some smaller models follow better.
	simple := `Generate a simple French sentence for English translation. Respond with JSON: {"paragraph_fr": "your sentence", "notes": ""}`
	obj, err = s.callJSON(ctx, "generate_exercise_simple", simple,
		"Level: "+level, 0.5, state.Settings.Model)
	if err == nil {
		if text := str(obj, "paragraph_fr"); text != "" {
			s.logger.Info("used fallback exercise generation")
			return Exercise{FrenchText: text, Notes: "Exercice de secours"}, nil
		}
	} else {
		s.logger.Warn("fallback exercise generation failed", zap.Error(err))
	}

	ex := cannedExercises[rand.Intn(len(cannedExercises))]
	s.logger.Warn("used predefined fallback exercise", zap.String("text", ex.FrenchText))
	ex.Notes += " (exercice de secours)"
	return ex, nil
}
