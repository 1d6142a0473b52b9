package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/english-trainer/trainer/internal/generator"
	"github.com/english-trainer/trainer/internal/models"
)

func (a *App) interactiveLesson(ctx context.Context) {
	topic := a.state.CurrentLesson
	if topic == "" {
		topic = a.prompt("Sujet à expliquer : ")
	}
	if topic == "" {
		return
	}

	a.printf("Génération du cours...\n")
	level := a.state.LevelName(a.cfg.XPPerLevel)
	lesson, err := a.svc.GenerateLesson(ctx, topic, level, a.state.Settings)
	if err != nil {
		a.printf("%s\n", generator.UserMessage(err))
		if hint := generator.RecoverySuggestion(err); hint != "" {
			a.printf("%s\n", hint)
		}
		a.pause()
		return
	}

	a.printf("\n── Cours: %s ──\n%s\n", topic, lesson)

	save := a.state.Settings.AutoSaveLessons
	if !save {
		save = a.confirm("Sauvegarder ce cours dans le cahier?", true)
	}
	if save {
		title := a.prompt(fmt.Sprintf("Titre du cours [Cours: %s] : ", topic))
		if title == "" {
			title = "Cours: " + topic
		}
		tags := strings.Fields(a.prompt("Tags (séparés par des espaces) : "))

		a.state.AddNotebookEntry(models.NotebookEntry{
			Title:     strings.TrimSpace(title),
			Content:   strings.TrimSpace(lesson),
			Topic:     strings.TrimSpace(topic),
			CreatedAt: a.now(),
			Tags:      tags,
		})
		a.printf("Cours sauvegardé dans le cahier!\n")
		a.announceAchievements()
		a.saveState()
	}

	// Follow-up Q&A on the freshly taught material.
	a.printf("Mode Q&A interactif - Posez vos questions (Entrée vide pour quitter)\n")
	lessonContext := fmt.Sprintf("Leçon: %s\n%s", topic, lesson)

	for {
		question := a.prompt("Votre question ? ")
		if question == "" || strings.EqualFold(question, "q") {
			break
		}

		a.printf("Réflexion...\n")
		answer, err := a.svc.AnswerQuestion(ctx, question, tail(lessonContext, a.cfg.MaxContextChars), a.state.Settings)
		if err != nil {
			a.printf("%s\n", generator.UserMessage(err))
			continue
		}

		a.printf("\n── Réponse ──\n%s\n", answer)
		lessonContext += fmt.Sprintf("\nQ: %s\nR: %s", question, answer)
	}
}

func (a *App) conversationPractice(ctx context.Context) {
	topic := a.prompt("Sujet de conversation : ")
	if topic == "" {
		return
	}

	a.printf("Démarrage de la conversation...\n")
	level := a.state.LevelName(a.cfg.XPPerLevel)
	opening, err := a.svc.StartConversation(ctx, topic, level, a.state.Settings)
	if err != nil {
		a.printf("%s\n", generator.UserMessage(err))
		a.pause()
		return
	}

	conversation := fmt.Sprintf("Topic: %s\n%s", topic, opening)
	a.printf("\n── Conversation ──\n%s\n", opening)

	for {
		message := a.prompt("Vous : ")
		if message == "" || strings.EqualFold(message, "q") {
			break
		}

		response, err := a.svc.ContinueConversation(ctx, message, tail(conversation, a.cfg.MaxContextChars), a.state.Settings)
		if err != nil {
			a.printf("%s\n", generator.UserMessage(err))
			break
		}

		a.printf("\n── Partenaire ──\n%s\n", response)
		conversation += fmt.Sprintf("\nVous: %s\nPartenaire: %s", message, response)
	}
}

func (a *App) vocabularyPractice(ctx context.Context) {
	theme := a.prompt("Thème vocabulaire : ")
	if theme == "" {
		return
	}
	count := a.promptNumber("Nombre de mots [10] : ", 5, 20, 10)
	if count == 0 {
		return
	}

	a.printf("Génération du vocabulaire...\n")
	level := a.state.LevelName(a.cfg.XPPerLevel)
	set, err := a.svc.GenerateVocabularySet(ctx, theme, level, count, a.state.Settings)
	if err != nil {
		a.printf("%s\n", generator.UserMessage(err))
		a.pause()
		return
	}

	a.printf("\n── Vocabulaire: %s ──\n", set.Theme)
	if set.Description != "" {
		a.printf("%s\n\n", set.Description)
	}
	for i, w := range set.Words {
		a.printf("%2d. %s — %s\n", i+1, w.English, w.French)
		if w.Definition != "" {
			a.printf("    %s\n", w.Definition)
		}
		if w.ExampleEN != "" {
			a.printf("    « %s »\n", w.ExampleEN)
			if w.ExampleFR != "" {
				a.printf("    « %s »\n", w.ExampleFR)
			}
		}
		if w.MemoryTip != "" {
			a.printf("    Astuce: %s\n", w.MemoryTip)
		}
	}
	if set.CulturalNotes != "" {
		a.printf("\n%s\n", set.CulturalNotes)
	}
	a.pause()
}
