// Package app runs the interactive terminal session: the main menu and the
// exercise, review, lesson, notebook, conversation, vocabulary and daily
// challenge flows. Rendering stays deliberately plain; all learning logic
// lives in the other packages.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/english-trainer/trainer/internal/config"
	"github.com/english-trainer/trainer/internal/gamification"
	"github.com/english-trainer/trainer/internal/generator"
	"github.com/english-trainer/trainer/internal/models"
	"github.com/english-trainer/trainer/internal/storage"
)

// App is the session controller. One instance per process.
type App struct {
	cfg    *config.Config
	store  *storage.Store
	svc    *generator.Service
	logger *zap.Logger

	state   *models.TrainerState
	in      *bufio.Scanner
	out     io.Writer
	running bool
	now     func() time.Time
}

// New wires an App from explicit dependencies.
func New(cfg *config.Config, store *storage.Store, svc *generator.Service, logger *zap.Logger, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &App{
		cfg:    cfg,
		store:  store,
		svc:    svc,
		logger: logger,
		in:     scanner,
		out:    out,
		now:    time.Now,
	}
}

// Run loads the state and drives the main menu until the user quits. The
// state is saved one last time on the way out.
func (a *App) Run(ctx context.Context) error {
	a.state = a.store.Load()
	a.printf("English Trainer - Chargé avec succès!\n")

	a.announceAchievements()
	a.running = true

	for a.running && ctx.Err() == nil {
		a.mainMenu(ctx)
	}

	if err := a.store.Save(a.state); err != nil {
		a.logger.Error("final save failed", zap.Error(err))
		return fmt.Errorf("save state: %w", err)
	}
	a.printf("Données sauvegardées. À bientôt!\n")
	return nil
}

func (a *App) mainMenu(ctx context.Context) {
	due := a.state.DueReviews(a.now())

	a.printf("\n════════════════════════════════════════\n")
	a.printf("  %s | Niveau %d (%s) | %d XP\n",
		"English Trainer", a.state.LevelNum(a.cfg.XPPerLevel), a.state.LevelName(a.cfg.XPPerLevel), a.state.XP)
	a.printf("════════════════════════════════════════\n")
	a.printf("  [Entrée] Nouvel exercice\n")
	if len(due) > 0 {
		a.printf("  [v]      Révisions (%d en attente)\n", len(due))
	}
	a.printf("  [c]      Choisir une leçon (focus: %s)\n", orNone(a.state.CurrentLesson))
	a.printf("  [t]      Choisir un thème (thème: %s)\n", orNone(a.state.CurrentTheme))
	a.printf("  [e]      Cours interactif\n")
	a.printf("  [n]      Cahier de cours\n")
	a.printf("  [conv]   Conversation\n")
	a.printf("  [vocab]  Vocabulaire\n")
	a.printf("  [d]      Défi quotidien\n")
	a.printf("  [s]      Statistiques\n")
	a.printf("  [q]      Quitter\n")

	switch strings.ToLower(a.prompt("> ")) {
	case "q":
		a.running = false
	case "c":
		a.lessonSelection()
	case "t":
		a.themeSelection()
	case "e":
		a.interactiveLesson(ctx)
	case "n":
		a.notebookMenu()
	case "v":
		if len(due) > 0 {
			a.reviewSession(ctx)
		} else {
			a.printf("Aucune révision en attente.\n")
		}
	case "s":
		a.showStatistics()
	case "conv":
		a.conversationPractice(ctx)
	case "vocab":
		a.vocabularyPractice(ctx)
	case "d":
		a.dailyChallenge(ctx)
	default:
		a.exerciseSession(ctx)
	}
}

// saveState persists after a mutation. Failures are reported but never end
// the session; losing one save beats losing the session.
func (a *App) saveState() {
	if err := a.store.Save(a.state); err != nil {
		a.logger.Error("save failed", zap.Error(err))
		a.printf("Attention: sauvegarde échouée: %v\n", err)
	}
}

// announceAchievements unlocks and prints any newly earned achievements.
func (a *App) announceAchievements() {
	names := gamification.Unlock(a.state, a.cfg.XPPerLevel)
	for _, name := range names {
		a.printf("Nouveau succès débloqué: %s\n", name)
	}
	if len(names) > 0 {
		a.saveState()
	}
}

// ── input/output helpers ───────────────────────────────────

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) prompt(label string) string {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		a.running = false
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *App) confirm(label string, def bool) bool {
	suffix := " [o/N] "
	if def {
		suffix = " [O/n] "
	}
	switch strings.ToLower(a.prompt(label + suffix)) {
	case "o", "oui", "y", "yes":
		return true
	case "n", "non", "no":
		return false
	default:
		return def
	}
}

// promptNumber asks for an integer in [lo, hi]. Empty input returns def;
// anything unparsable or out of range returns 0.
func (a *App) promptNumber(label string, lo, hi, def int) int {
	raw := a.prompt(label)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0
	}
	return n
}

func (a *App) pause() {
	a.prompt("Appuyez sur Entrée pour continuer...")
}

func orNone(s string) string {
	if s == "" {
		return "Aucun"
	}
	return s
}

// tail returns at most max trailing characters of s, for capping the rolling
// context sent back to the model.
func tail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
