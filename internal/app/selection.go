package app

import (
	"strconv"

	"github.com/english-trainer/trainer/internal/curriculum"
	"github.com/english-trainer/trainer/internal/gamification"
)

func (a *App) lessonSelection() {
	a.printf("\n── Choisir une leçon ────────────────────\n")
	a.printf("  0. Aucun focus (mode général)\n")
	i := 1
	var mapping []string
	for _, level := range curriculum.Levels {
		a.printf("%s\n", level.Name)
		for _, lesson := range level.Lessons {
			marker := "  "
			if lesson == a.state.CurrentLesson {
				marker = "→ "
			}
			a.printf("  %s%2d. %s\n", marker, i, lesson)
			mapping = append(mapping, lesson)
			i++
		}
	}

	choice := a.prompt("Choix # : ")
	if choice == "0" {
		a.state.CurrentLesson = ""
		a.printf("Focus désactivé (mode général)\n")
	} else if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(mapping) {
		a.state.CurrentLesson = mapping[n-1]
		a.printf("Focus: %s\n", a.state.CurrentLesson)
	}
	a.saveState()
}

func (a *App) themeSelection() {
	a.printf("\n── Choisir un thème ─────────────────────\n")
	for i, theme := range curriculum.Themes {
		marker := "  "
		if theme == a.state.CurrentTheme || (a.state.CurrentTheme == "" && theme == curriculum.RandomTheme) {
			marker = "→ "
		}
		a.printf("  %s%2d. %s\n", marker, i+1, theme)
	}

	n, err := strconv.Atoi(a.prompt("Choix # : "))
	if err != nil || n < 1 || n > len(curriculum.Themes) {
		return
	}

	selected := curriculum.Themes[n-1]
	if selected == curriculum.RandomTheme {
		a.state.CurrentTheme = ""
	} else {
		a.state.CurrentTheme = selected
	}
	a.printf("Thème: %s\n", orNone(a.state.CurrentTheme))
	a.saveState()
}

func (a *App) showStatistics() {
	a.printf("\n── Statistiques ─────────────────────────\n")
	a.printf("Niveau          : %d (%s)\n", a.state.LevelNum(a.cfg.XPPerLevel), a.state.LevelName(a.cfg.XPPerLevel))
	a.printf("XP              : %d (%.0f%% vers le niveau suivant)\n", a.state.XP, a.state.LevelProgress(a.cfg.XPPerLevel)*100)
	a.printf("Exercices       : %d\n", a.state.TotalExercises)
	a.printf("Score récent    : %.1f/10\n", a.state.RecentPerformance())
	a.printf("Révisions dues  : %d\n", len(a.state.DueReviews(a.now())))
	a.printf("Cahier          : %d entrées\n", len(a.state.Notebook))

	if errs := a.state.MostCommonErrors(5); len(errs) > 0 {
		a.printf("\nErreurs fréquentes :\n")
		for _, e := range errs {
			a.printf("  %2d × %s\n", e.Count, e.Error)
		}
	}

	if len(a.state.Achievements) > 0 {
		a.printf("\nSuccès (%d) :\n", len(a.state.Achievements))
		for _, key := range a.state.Achievements {
			if def, ok := gamification.Achievements[key]; ok {
				a.printf("  - %s : %s\n", def.Name, def.Description)
			}
		}
	}
	a.pause()
}
