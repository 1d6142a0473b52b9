package app

import (
	"strings"

	"github.com/english-trainer/trainer/internal/models"
)

func (a *App) notebookMenu() {
	for {
		recent := a.state.Notebook
		if len(recent) > 10 {
			recent = recent[len(recent)-10:]
		}
		a.printf("\n── Cahier de Cours (%d entrées) ─────────\n", len(a.state.Notebook))
		a.listNotebook(recent)
		a.printf("\n1. Voir toutes les entrées\n")
		a.printf("2. Rechercher\n")
		a.printf("3. Filtrer par sujet\n")
		a.printf("4. Marquer/démarquer favori\n")
		a.printf("5. Supprimer une entrée\n")
		a.printf("6. Lire une entrée\n")
		a.printf("0. Retour\n")

		switch a.prompt("Choix : ") {
		case "0":
			return
		case "1":
			a.listNotebook(a.state.Notebook)
			a.pause()
		case "2":
			a.searchNotebook()
		case "3":
			a.filterNotebookByTopic()
		case "4":
			a.toggleNotebookFavorite()
		case "5":
			a.deleteNotebookEntry()
		case "6":
			a.readNotebookEntry()
		default:
			if !a.running {
				return
			}
		}
	}
}

func (a *App) listNotebook(entries []models.NotebookEntry) {
	if len(entries) == 0 {
		a.printf("(cahier vide)\n")
		return
	}
	for i, e := range entries {
		star := " "
		if e.Favorite {
			star = "★"
		}
		line := e.Title
		if e.Topic != "" {
			line += " [" + e.Topic + "]"
		}
		a.printf("%s %2d. %s (%s)\n", star, i+1, line, e.FormattedDate())
	}
}

func (a *App) searchNotebook() {
	query := a.prompt("Recherche : ")
	if query == "" {
		return
	}
	a.listNotebook(a.state.SearchNotebook(query))
	a.pause()
}

func (a *App) filterNotebookByTopic() {
	seen := make(map[string]bool)
	var topics []string
	for _, e := range a.state.Notebook {
		key := strings.ToLower(e.Topic)
		if e.Topic == "" || seen[key] {
			continue
		}
		seen[key] = true
		topics = append(topics, e.Topic)
	}
	if len(topics) == 0 {
		a.printf("Aucun sujet disponible\n")
		return
	}

	a.printf("Sujets disponibles:\n")
	for i, t := range topics {
		a.printf("%2d. %s\n", i+1, t)
	}
	n := a.promptNumber("Choix : ", 1, len(topics), 0)
	if n == 0 {
		return
	}
	a.listNotebook(a.state.NotebookByTopic(topics[n-1]))
	a.pause()
}

func (a *App) toggleNotebookFavorite() {
	if len(a.state.Notebook) == 0 {
		a.printf("Cahier vide\n")
		return
	}
	n := a.promptNumber("Numéro de l'entrée : ", 1, len(a.state.Notebook), 0)
	if n == 0 {
		return
	}
	a.state.Notebook[n-1].Favorite = !a.state.Notebook[n-1].Favorite
	a.saveState()
	a.printf("Statut favori modifié!\n")
}

func (a *App) deleteNotebookEntry() {
	if len(a.state.Notebook) == 0 {
		a.printf("Cahier vide\n")
		return
	}
	n := a.promptNumber("Numéro de l'entrée à supprimer : ", 1, len(a.state.Notebook), 0)
	if n == 0 || !a.confirm("Confirmer la suppression?", false) {
		return
	}
	a.state.Notebook = append(a.state.Notebook[:n-1], a.state.Notebook[n:]...)
	a.saveState()
	a.printf("Entrée supprimée!\n")
}

func (a *App) readNotebookEntry() {
	if len(a.state.Notebook) == 0 {
		a.printf("Cahier vide\n")
		return
	}
	n := a.promptNumber("Numéro de l'entrée : ", 1, len(a.state.Notebook), 0)
	if n == 0 {
		return
	}
	e := a.state.Notebook[n-1]
	a.printf("\n── %s ──\n%s\n", e.Title, e.Content)
	if len(e.Tags) > 0 {
		a.printf("Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	a.pause()
}
