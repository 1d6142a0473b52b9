package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/english-trainer/trainer/internal/models"
)

func newTestService(mock *MockClient) *Service {
	return &Service{
		client:     mock,
		logger:     zap.NewNop(),
		model:      "test-model",
		attempts:   1,
		retryDelay: time.Millisecond,
	}
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	mock := NewMockClient("ok")
	mock.Errs = []error{errors.New("connection refused"), errors.New("connection refused"), nil}

	svc := newTestService(mock)
	svc.attempts = 3

	got, err := svc.call(context.Background(), "op", "system", "user", 0.7, "")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Len(t, mock.Calls, 3)
}

func TestRetryReturnsLastError(t *testing.T) {
	boom := errors.New("model not loaded")
	mock := NewMockClient()
	mock.Errs = []error{errors.New("first"), boom}

	svc := newTestService(mock)
	svc.attempts = 2

	_, err := svc.call(context.Background(), "op", "system", "user", 0.7, "")
	require.ErrorIs(t, err, boom)
	assert.Len(t, mock.Calls, 2)
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	mock := NewMockClient()
	mock.Errs = []error{errors.New("down"), errors.New("down"), errors.New("down")}

	svc := newTestService(mock)
	svc.attempts = 3
	svc.retryDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.call(ctx, "op", "system", "user", 0.7, "")
	require.Error(t, err)
	assert.Len(t, mock.Calls, 1)
}

type countingLocker struct {
	acquires int
	releases int
}

func (l *countingLocker) Acquire(ctx context.Context) (func(), error) {
	l.acquires++
	return func() { l.releases++ }, nil
}

func TestCompleteHoldsLockPerAttempt(t *testing.T) {
	mock := NewMockClient("ok")
	mock.Errs = []error{errors.New("down"), nil}

	locker := &countingLocker{}
	svc := newTestService(mock)
	svc.attempts = 2
	svc.locker = locker

	_, err := svc.call(context.Background(), "op", "system", "user", 0.7, "")
	require.NoError(t, err)
	assert.Equal(t, 2, locker.acquires)
	assert.Equal(t, 2, locker.releases)
}

func TestCallUsesServiceModelByDefault(t *testing.T) {
	mock := NewMockClient("ok")
	svc := newTestService(mock)

	_, err := svc.call(context.Background(), "op", "system", "user", 0.7, "")
	require.NoError(t, err)
	assert.Equal(t, "test-model", mock.Calls[0].Model)

	_, err = svc.call(context.Background(), "op", "system", "user", 0.7, "override")
	require.NoError(t, err)
	assert.Equal(t, "override", mock.Calls[1].Model)
}

func TestGenerateExerciseTiers(t *testing.T) {
	state := models.NewTrainerState("test-model")

	t.Run("first tier succeeds", func(t *testing.T) {
		mock := NewMockClient(`{"paragraph_fr": "Le chat dort.", "notes": "Présent"}`)
		svc := newTestService(mock)

		ex, err := svc.GenerateExercise(context.Background(), state, 100)
		require.NoError(t, err)
		assert.Equal(t, "Le chat dort.", ex.FrenchText)
		assert.Equal(t, "Présent", ex.Notes)
		assert.Len(t, mock.Calls, 1)
	})

	t.Run("falls through to simple prompt", func(t *testing.T) {
		mock := NewMockClient("pas de JSON ici", `{"paragraph_fr": "Il pleut."}`)
		svc := newTestService(mock)

		ex, err := svc.GenerateExercise(context.Background(), state, 100)
		require.NoError(t, err)
		assert.Equal(t, "Il pleut.", ex.FrenchText)
		assert.Len(t, mock.Calls, 2)
		assert.InDelta(t, 0.5, mock.Calls[1].Temperature, 1e-9)
	})

	t.Run("falls through to canned exercise", func(t *testing.T) {
		mock := NewMockClient()
		mock.Errs = []error{errors.New("down"), errors.New("down")}
		svc := newTestService(mock)

		ex, err := svc.GenerateExercise(context.Background(), state, 100)
		require.NoError(t, err)
		assert.NotEmpty(t, ex.FrenchText)
		assert.Contains(t, ex.Notes, "exercice de secours")
	})
}

func TestGenerateExerciseIncludesLearnerContext(t *testing.T) {
	state := models.NewTrainerState("test-model")
	state.CurrentLesson = "Les temps du passé"
	state.RecentPhrases = []string{"Je vais au marché."}
	state.AddAttempt(models.Attempt{SourceText: "x", MainError: "articles"}, models.HistoryCaps{})

	mock := NewMockClient(`{"paragraph_fr": "Phrase."}`)
	svc := newTestService(mock)

	_, err := svc.GenerateExercise(context.Background(), state, 100)
	require.NoError(t, err)

	system := mock.Calls[0].Messages[0].Content
	assert.Contains(t, system, "Les temps du passé")
	assert.Contains(t, system, "Je vais au marché.")
	assert.Contains(t, system, "articles")
}

func TestEvaluateTranslationTiers(t *testing.T) {
	settings := models.DefaultSettings("test-model")

	t.Run("complete response", func(t *testing.T) {
		mock := NewMockClient(`{
			"score": 8,
			"ideal_translation": "I am going to the market.",
			"main_error": "Aucune erreur majeure",
			"lesson": "Bon usage du présent continu",
			"improvement_suggestions": ["Attention aux articles"]
		}`)
		svc := newTestService(mock)

		ev, err := svc.EvaluateTranslation(context.Background(), "Je vais au marché.", "I am going to the market.", settings)
		require.NoError(t, err)
		assert.Equal(t, 8, ev.Score)
		assert.Equal(t, "I am going to the market.", ev.IdealTranslation)
		assert.Len(t, mock.Calls, 1)
	})

	t.Run("missing field triggers simple prompt", func(t *testing.T) {
		// First response parses fine but lacks required fields; out-of-range
		// scores are also clamped on the way in.
		fenced := "Sure! ```json\n{\"score\": 11, \"ideal_translation\": \"x\"}\n```"
		mock := NewMockClient(fenced, `{"score": 6, "ideal_translation": "The cat sleeps."}`)
		svc := newTestService(mock)

		ev, err := svc.EvaluateTranslation(context.Background(), "Le chat dort.", "The cat sleep.", settings)
		require.NoError(t, err)
		assert.Equal(t, 6, ev.Score)
		assert.Equal(t, "Évaluation de secours", ev.MainError)
		assert.NotEmpty(t, ev.Suggestions)
		assert.Len(t, mock.Calls, 2)
	})

	t.Run("score clamped to range", func(t *testing.T) {
		mock := NewMockClient(`{
			"score": 42,
			"ideal_translation": "x",
			"main_error": "x",
			"lesson": "x",
			"improvement_suggestions": []
		}`)
		svc := newTestService(mock)

		ev, err := svc.EvaluateTranslation(context.Background(), "Phrase.", "Sentence.", settings)
		require.NoError(t, err)
		assert.Equal(t, 10, ev.Score)
	})
}

func TestHeuristicEvaluation(t *testing.T) {
	tests := []struct {
		name        string
		french      string
		translation string
		wantScore   int
	}{
		{"empty answer", "Je vais au marché.", "   ", 0},
		{"copied the french", "Je vais au marché.", "je vais au marché.", 1},
		{"way too long", "Chat.", "the cat is sleeping on the warm mat today", 3},
		{"plausible attempt", "Je vais au marché.", "I go to the market.", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := heuristicEvaluation(tt.french, tt.translation)
			assert.Equal(t, tt.wantScore, ev.Score)
			assert.NotEmpty(t, ev.MainError)
		})
	}
}

func TestEvaluateTranslationOfflineFallback(t *testing.T) {
	mock := NewMockClient()
	mock.Errs = []error{errors.New("connection refused"), errors.New("connection refused")}
	svc := newTestService(mock)

	ev, err := svc.EvaluateTranslation(context.Background(), "Le chat dort.", "The cat sleeps.", models.DefaultSettings("m"))
	require.NoError(t, err)
	assert.Equal(t, 5, ev.Score)
	assert.Contains(t, ev.MainError, "indisponible")
}
