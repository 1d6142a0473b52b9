package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse signals that the model returned no usable text.
var ErrEmptyResponse = errors.New("empty response from model")

// ParseError reports a model response that could not be read as a JSON
// object. Preview holds at most the first 200 characters of the raw text so
// logs stay bounded.
type ParseError struct {
	Preview string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON response (preview: %q): %v", e.Preview, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(raw string, err error) *ParseError {
	preview := raw
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return &ParseError{Preview: preview, Err: err}
}

// Category classifies a completion failure for user-facing reporting.
type Category string

const (
	CategoryTimeout    Category = "timeout"
	CategoryConnection Category = "connection"
	CategoryAuth       Category = "auth"
	CategoryRateLimit  Category = "rate_limit"
	CategoryModel      Category = "model"
	CategoryJSON       Category = "json"
	CategoryUnknown    Category = "unknown"
)

// Categorize maps an error to a Category by inspecting its text. Matching is
// substring-based and ordered: the first matching rule wins.
func Categorize(err error) Category {
	if err == nil {
		return CategoryUnknown
	}
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "timeout"):
		return CategoryTimeout
	case strings.Contains(msg, "connection"), strings.Contains(msg, "network"):
		return CategoryConnection
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "401"):
		return CategoryAuth
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "429"):
		return CategoryRateLimit
	case strings.Contains(msg, "model"):
		return CategoryModel
	case strings.Contains(msg, "json"):
		return CategoryJSON
	default:
		return CategoryUnknown
	}
}

// UserMessage renders err as a short French message suitable for the
// terminal.
func UserMessage(err error) string {
	switch Categorize(err) {
	case CategoryTimeout:
		return "Délai d'attente dépassé. Vérifiez votre connexion et réessayez."
	case CategoryConnection:
		return "Problème de connexion. Vérifiez que votre serveur IA est accessible."
	case CategoryAuth:
		return "Erreur d'authentification. Vérifiez votre clé API."
	case CategoryRateLimit:
		return "Limite de taux atteinte. Attendez quelques secondes et réessayez."
	case CategoryModel:
		return "Modèle non disponible. Vérifiez le nom du modèle dans la configuration."
	case CategoryJSON:
		return "Réponse IA malformée. Réessayez avec un prompt différent."
	default:
		return fmt.Sprintf("Erreur IA: %v", err)
	}
}

// RecoverySuggestion returns an actionable hint for the error, or "" when
// there is nothing useful to suggest.
func RecoverySuggestion(err error) string {
	switch Categorize(err) {
	case CategoryConnection:
		return "Vérifiez que votre serveur IA est démarré, testez l'URL avec curl, vérifiez les variables d'environnement."
	case CategoryTimeout:
		return "Augmentez le timeout dans la configuration, vérifiez la charge du serveur, essayez un modèle plus rapide."
	case CategoryJSON:
		return "Réessayez l'opération ou modifiez légèrement votre demande."
	default:
		return ""
	}
}
