package app

import (
	"context"
	"strings"
)

func (a *App) dailyChallenge(ctx context.Context) {
	challenge := a.state.TodayChallenge(a.now())
	if challenge == nil {
		a.printf("Génération du défi quotidien...\n")
		generated := a.svc.GenerateDailyChallenge(ctx, a.now(), a.state.Settings)
		a.state.AddDailyChallenge(generated)
		a.saveState()
		challenge = a.state.TodayChallenge(a.now())
		if challenge == nil {
			a.printf("Impossible de créer le défi du jour.\n")
			return
		}
	}

	a.printf("\n── Défi du jour: %s ──\n", challenge.Title)
	a.printf("%s\n", challenge.Description)
	a.printf("Récompense: %d XP\n", challenge.XPReward)

	if challenge.Completed {
		a.printf("Vous avez déjà relevé le défi aujourd'hui!\n")
		a.pause()
		return
	}

	if !a.confirm("Voulez-vous relever ce défi ?", true) {
		return
	}

	a.printf("%s\n", challenge.Instructions)
	if challenge.Example != "" {
		a.printf("Exemple: %s\n", challenge.Example)
	}
	for _, tip := range challenge.Tips {
		a.printf("  - %s\n", tip)
	}

	label := "Votre réponse : "
	switch challenge.ChallengeType {
	case "translation":
		label = "Votre traduction : "
	case "writing":
		label = "Votre texte : "
	}

	answer := a.prompt(label)
	if answer == "" || strings.EqualFold(answer, "q") {
		return
	}

	if a.state.CompleteTodayChallenge(a.now()) {
		a.printf("Défi relevé ! Vous gagnez %d XP !\n", challenge.XPReward)
		a.announceAchievements()
		a.saveState()
	} else {
		a.printf("Défi déjà complété.\n")
	}
	a.pause()
}
