package generator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/english-trainer/trainer/internal/models"
)

// GenerateLesson writes a full Markdown lesson on topic for a student at the
// given level.
func (s *Service) GenerateLesson(ctx context.Context, topic, level string, settings models.Settings) (string, error) {
	prompt := BuildLessonPrompt(topic, level)
	out, err := s.call(ctx, "generate_lesson", prompt,
		"Crée une leçon complète sur: "+topic, 0.6, settings.Model)
	if err != nil {
		return "", fmt.Errorf("generate lesson: %w", err)
	}
	return out, nil
}

// AnswerQuestion answers a student question about the current lesson.
// lessonContext should already be capped by the caller.
func (s *Service) AnswerQuestion(ctx context.Context, question, lessonContext string, settings models.Settings) (string, error) {
	prompt := BuildQuestionPrompt(lessonContext)
	out, err := s.call(ctx, "answer_question", prompt,
		fmt.Sprintf("L'élève demande: %s\n\nRéponds de manière précise avec des exemples.", question),
		0.5, settings.Model)
	if err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}
	return out, nil
}

// StartConversation opens a conversation practice session on topic.
func (s *Service) StartConversation(ctx context.Context, topic, level string, settings models.Settings) (string, error) {
	prompt := BuildConversationPrompt(fmt.Sprintf("Topic: %s, Level: %s", topic, level))
	out, err := s.call(ctx, "start_conversation", prompt,
		fmt.Sprintf("Start a conversation about %s. Keep it appropriate for %s level.", topic, level),
		0.8, settings.Model)
	if err != nil {
		return "", fmt.Errorf("start conversation: %w", err)
	}
	return out, nil
}

// ContinueConversation answers the learner's next message given the
// conversation so far. conversationContext should already be capped by the
// caller.
func (s *Service) ContinueConversation(ctx context.Context, message, conversationContext string, settings models.Settings) (string, error) {
	prompt := BuildConversationPrompt("")
	out, err := s.call(ctx, "continue_conversation", prompt,
		fmt.Sprintf("Conversation context:\n%s\n\nStudent says: %s", conversationContext, message),
		0.8, settings.Model)
	if err != nil {
		return "", fmt.Errorf("continue conversation: %w", err)
	}
	return out, nil
}

// VocabularyWord is one entry of a generated vocabulary set.
type VocabularyWord struct {
	English       string
	French        string
	Definition    string
	ExampleEN     string
	ExampleFR     string
	Difficulty    int
	Pronunciation string
	MemoryTip     string
}

// VocabularySet is a themed word list with learner-facing context.
type VocabularySet struct {
	Words         []VocabularyWord
	Theme         string
	Description   string
	CulturalNotes string
}

// GenerateVocabularySet produces count themed vocabulary words.
func (s *Service) GenerateVocabularySet(ctx context.Context, theme, level string, count int, settings models.Settings) (*VocabularySet, error) {
	prompt := BuildVocabularyPrompt(theme, level, count)
	obj, err := s.callJSON(ctx, "generate_vocabulary", prompt,
		fmt.Sprintf("Create vocabulary set: %s (%d words)", theme, count),
		0.6, settings.Model)
	if err != nil {
		return nil, fmt.Errorf("generate vocabulary: %w", err)
	}

	set := &VocabularySet{
		Theme:         str(obj, "theme"),
		Description:   str(obj, "description"),
		CulturalNotes: str(obj, "cultural_notes"),
	}
	if set.Theme == "" {
		set.Theme = theme
	}

	words, _ := obj["words"].([]any)
	for _, raw := range words {
		w, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		word := VocabularyWord{
			English:       str(w, "english"),
			French:        str(w, "french"),
			Definition:    str(w, "definition"),
			ExampleEN:     str(w, "example_en"),
			ExampleFR:     str(w, "example_fr"),
			Difficulty:    clampInt(w["difficulty"], 1, 6, 1),
			Pronunciation: str(w, "pronunciation"),
			MemoryTip:     str(w, "memory_tip"),
		}
		if word.English == "" {
			continue
		}
		set.Words = append(set.Words, word)
	}

	if len(set.Words) == 0 {
		return nil, fmt.Errorf("generate vocabulary: no usable words in response")
	}
	return set, nil
}

// GenerateDailyChallenge creates the challenge for the given date. A model
// failure falls back to a fixed translation challenge so the day always has
// one.
func (s *Service) GenerateDailyChallenge(ctx context.Context, date time.Time, settings models.Settings) models.DailyChallenge {
	day := date.Format("2006-01-02")

	obj, err := s.callJSON(ctx, "generate_daily_challenge", BuildDailyChallengePrompt(),
		"Génère un défi quotidien pour la date: "+day, 0.7, settings.Model)
	if err != nil {
		s.logger.Warn("daily challenge generation failed", zap.Error(err))
		return fallbackChallenge(day)
	}

	challenge := models.DailyChallenge{
		Date:          day,
		ChallengeType: str(obj, "challenge_type"),
		Title:         str(obj, "title"),
		Description:   str(obj, "description"),
		Instructions:  str(obj, "instructions"),
		Example:       str(obj, "example"),
		Tips:          strSlice(obj, "tips"),
		XPReward:      clampInt(obj["xp_reward"], 0, 1000, 10),
	}
	if challenge.Title == "" {
		s.logger.Warn("daily challenge response missing title")
		return fallbackChallenge(day)
	}
	return challenge
}

func fallbackChallenge(day string) models.DailyChallenge {
	return models.DailyChallenge{
		Date:          day,
		ChallengeType: "translation",
		Title:         "Défi de traduction du jour",
		Description:   "Traduisez cette phrase courante en anglais",
		Instructions:  "Traduisez la phrase suivante en anglais",
		Example:       "Bonjour, comment allez-vous aujourd'hui?",
		Tips: []string{
			"Concentrez-vous sur le temps verbal",
			"Pensez aux formules de politesse",
		},
		XPReward: 10,
	}
}
