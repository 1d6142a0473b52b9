package generator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/english-trainer/trainer/internal/models"
)

// Evaluation is the graded feedback for one translation attempt. Score is
// always within [0, 10].
type Evaluation struct {
	Score            int
	IdealTranslation string
	MainError        string
	Lesson           string
	Suggestions      []string
}

var evaluationFields = []string{"score", "ideal_translation", "main_error", "lesson", "improvement_suggestions"}

// EvaluateTranslation grades a learner's English translation of frenchText.
//
// Three tiers: the full evaluator prompt at temperature 0.2, a minimal
// prompt at 0.1, and finally an offline heuristic so the session can always
// continue. The error is always nil.
func (s *Service) EvaluateTranslation(ctx context.Context, frenchText, translation string, settings models.Settings) (Evaluation, error) {
	prompt := BuildEvaluationPrompt(frenchText, translation)

	obj, err := s.callJSON(ctx, "evaluate_translation", prompt,
		"Évalue cette traduction.", 0.2, settings.Model)
	if err == nil {
		if missing := missingField(obj); missing == "" {
			return evaluationFromObject(obj), nil
		} else {
			s.logger.Warn("evaluation response incomplete", zap.String("missing", missing))
		}
	} else {
		s.logger.Warn("evaluation failed", zap.Error(err))
	}

	simple := `Evaluate this translation from French to English. Respond with JSON: {"score": 7, "ideal_translation": "your ideal translation", "main_error": "main issue", "lesson": "grammar tip", "improvement_suggestions": ["Suggestion 1", "Suggestion 2"]}`
	obj, err = s.callJSON(ctx, "evaluate_translation_simple", simple,
		fmt.Sprintf("French: %s\nTranslation: %s", frenchText, translation), 0.1, settings.Model)
	if err == nil {
		if _, ok := obj["score"]; ok {
			s.logger.Info("used fallback evaluation")
			ev := evaluationFromObject(obj)
			if ev.MainError == "" {
				ev.MainError = "Évaluation de secours"
			}
			if len(ev.Suggestions) == 0 {
				ev.Suggestions = []string{"Améliorez votre grammaire", "Pratiquez davantage"}
			}
			return ev, nil
		}
	} else {
		s.logger.Warn("fallback evaluation failed", zap.Error(err))
	}

	s.logger.Warn("used heuristic evaluation")
	return heuristicEvaluation(frenchText, translation), nil
}

// missingField returns the first required evaluation field absent from obj,
// or "" when all are present.
func missingField(obj map[string]any) string {
	for _, f := range evaluationFields {
		if _, ok := obj[f]; !ok {
			return f
		}
	}
	return ""
}

func evaluationFromObject(obj map[string]any) Evaluation {
	return Evaluation{
		Score:            clampInt(obj["score"], 0, 10, 0),
		IdealTranslation: str(obj, "ideal_translation"),
		MainError:        str(obj, "main_error"),
		Lesson:           str(obj, "lesson"),
		Suggestions:      strSlice(obj, "improvement_suggestions"),
	}
}

// heuristicEvaluation scores a translation without a model. Empty attempts
// score 0, copying the French scores 1, a wildly different word count scores
// 3, and anything else a neutral 5.
func heuristicEvaluation(frenchText, translation string) Evaluation {
	frenchWords := len(strings.Fields(frenchText))
	translationWords := len(strings.Fields(translation))

	var score int
	switch {
	case strings.TrimSpace(translation) == "":
		score = 0
	case strings.EqualFold(translation, frenchText):
		score = 1
	case abs(frenchWords-translationWords) > frenchWords:
		score = 3
	default:
		score = 5
	}

	return Evaluation{
		Score:            score,
		IdealTranslation: fmt.Sprintf("[Traduction idéale non disponible pour: %s]", frenchText),
		MainError:        "Évaluation automatique - serveur IA indisponible",
		Lesson:           "Vérifiez votre connexion IA pour une évaluation détaillée",
		Suggestions: []string{
			"Vérifiez votre connexion Internet",
			"Essayez à nouveau plus tard",
		},
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
