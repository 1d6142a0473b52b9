// Package curriculum holds the static English learning catalog: CEFR levels
// with their grammar lessons, and the thematic contexts exercises can draw
// from. Lesson and level names are French-facing since the learner works
// from French.
package curriculum

import "math/rand"

// Level pairs a CEFR level name with its ordered lesson list.
type Level struct {
	Name    string
	Lessons []string
}

// Levels lists the curriculum from A1 to C2.
var Levels = []Level{
	{
		Name: "A1 (Débutant)",
		Lessons: []string{
			"Présent Simple (to be)",
			"Présent Simple (verbes d'action)",
			"Articles et Pluriels",
			"Pronoms Possessifs",
			"Questions simples (Do/Does)",
			"Il y a (There is/are)",
			"Prépositions de lieu",
			"Nombres et dates",
		},
	},
	{
		Name: "A2 (Élémentaire)",
		Lessons: []string{
			"Présent Continu (be + ing)",
			"Prétérit Simple (réguliers)",
			"Prétérit Simple (irréguliers)",
			"Comparatifs et Superlatifs",
			"Futur proche (going to)",
			"Modaux simples (can, must, should)",
			"Quantificateurs (some, any, much, many)",
			"Prépositions de temps",
		},
	},
	{
		Name: "B1 (Intermédiaire)",
		Lessons: []string{
			"Present Perfect Simple",
			"Past Continuous",
			"Futur Simple (will)",
			"Conditionnel Type 1 (If... will)",
			"Voix Passive (présent/passé)",
			"Gérondif vs Infinitif",
			"Modaux de probabilité",
			"Discours indirect (base)",
		},
	},
	{
		Name: "B2 (Intermédiaire Sup)",
		Lessons: []string{
			"Present Perfect Continuous",
			"Past Perfect",
			"Conditionnel Type 2 & 3",
			"Discours Indirect (avancé)",
			"Modaux de déduction",
			"Connecteurs logiques",
			"Voix Passive (temps complexes)",
			"Relatives complexes",
		},
	},
	{
		Name: "C1 (Avancé)",
		Lessons: []string{
			"Inversion (Had I known...)",
			"Subjonctif et structures formelles",
			"Phrasal Verbs avancés",
			"Structures emphatiques",
			"Nuances lexicales",
			"Style indirect libre",
			"Ellipse et substitution",
			"Registres de langue",
		},
	},
	{
		Name: "C2 (Maîtrise)",
		Lessons: []string{
			"Style académique et formel",
			"Idiomes et expressions figées",
			"Archaïsmes et style littéraire",
			"Ironie et sous-entendus",
			"Variations dialectales",
			"Jeux de mots et calembours",
			"Rhétorique et argumentation",
			"Créativité linguistique",
		},
	},
}

// RandomTheme is the sentinel theme meaning "no fixed theme".
const RandomTheme = "Aléatoire (Aucun)"

// Themes lists the thematic contexts, RandomTheme first.
var Themes = []string{
	RandomTheme,
	"Voyage & Aventure",
	"Business & Travail",
	"Technologie & IA",
	"Cuisine & Restauration",
	"Cinéma & Culture",
	"Science & Nature",
	"Politique & Société",
	"Philosophie & Psychologie",
	"Sport & Santé",
	"Famille & Relations",
	"Éducation & Apprentissage",
	"Art & Créativité",
	"Environnement & Écologie",
	"Histoire & Géographie",
	"Actualités & Médias",
	"Littérature & Écriture",
}

// AllLessons returns every lesson across all levels, in curriculum order.
func AllLessons() []string {
	var lessons []string
	for _, level := range Levels {
		lessons = append(lessons, level.Lessons...)
	}
	return lessons
}

// LessonsForLevel returns the lessons of the named level, or nil when the
// level is unknown.
func LessonsForLevel(name string) []string {
	for _, level := range Levels {
		if level.Name == name {
			return level.Lessons
		}
	}
	return nil
}

// LessonLevel returns the level name a lesson belongs to, or "Unknown".
func LessonLevel(lesson string) string {
	for _, level := range Levels {
		for _, l := range level.Lessons {
			if l == lesson {
				return level.Name
			}
		}
	}
	return "Unknown"
}

// PickTheme returns a uniformly random concrete theme, never the sentinel.
// A nil rng falls back to the global source.
func PickTheme(rng *rand.Rand) string {
	concrete := Themes[1:]
	if rng == nil {
		return concrete[rand.Intn(len(concrete))]
	}
	return concrete[rng.Intn(len(concrete))]
}

// ValidTheme reports whether theme is one of the known themes, the sentinel
// included.
func ValidTheme(theme string) bool {
	for _, t := range Themes {
		if t == theme {
			return true
		}
	}
	return false
}
