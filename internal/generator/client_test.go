package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMessages(t *testing.T) {
	tests := []struct {
		name  string
		input []Message
		want  []Message
	}{
		{
			name: "system merged into first user turn",
			input: []Message{
				{Role: RoleSystem, Content: "Tu es un professeur."},
				{Role: RoleUser, Content: "Génère un exercice."},
			},
			want: []Message{
				{Role: RoleUser, Content: "Tu es un professeur.\n\nGénère un exercice."},
			},
		},
		{
			name: "multiple system turns joined",
			input: []Message{
				{Role: RoleSystem, Content: "Règle 1."},
				{Role: RoleSystem, Content: "Règle 2."},
				{Role: RoleUser, Content: "Question."},
			},
			want: []Message{
				{Role: RoleUser, Content: "Règle 1.\n\nRègle 2.\n\nQuestion."},
			},
		},
		{
			name: "system only becomes a user turn",
			input: []Message{
				{Role: RoleSystem, Content: "Consigne."},
			},
			want: []Message{
				{Role: RoleUser, Content: "Consigne."},
			},
		},
		{
			name: "assistant turns kept in place",
			input: []Message{
				{Role: RoleSystem, Content: "Consigne."},
				{Role: RoleAssistant, Content: "Bonjour."},
				{Role: RoleUser, Content: "Salut."},
			},
			want: []Message{
				{Role: RoleAssistant, Content: "Bonjour."},
				{Role: RoleUser, Content: "Consigne.\n\nSalut."},
			},
		},
		{
			name: "no system turns passes through",
			input: []Message{
				{Role: RoleUser, Content: "Salut."},
			},
			want: []Message{
				{Role: RoleUser, Content: "Salut."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMessages(tt.input)
			assert.Equal(t, tt.want, got)
			for _, m := range got {
				assert.NotEqual(t, RoleSystem, m.Role)
			}
		})
	}
}

func TestOpenAIClientComplete(t *testing.T) {
	var seen chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seen))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  réponse  "}},
			},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(srv.URL+"/", "test-key", 5*time.Second)
	got, err := client.Complete(context.Background(), CompletionRequest{
		Model:       "mistral",
		Temperature: 0.7,
		Messages: []Message{
			{Role: RoleSystem, Content: "Consigne."},
			{Role: RoleUser, Content: "Question."},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "réponse", got)

	assert.Equal(t, "mistral", seen.Model)
	require.Len(t, seen.Messages, 1)
	assert.Equal(t, RoleUser, seen.Messages[0].Role)
}

func TestOpenAIClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"http error status", http.StatusBadGateway, "upstream down", "status 502"},
		{"api error payload", http.StatusOK, `{"error": {"message": "model not loaded"}}`, "model not loaded"},
		{"no choices", http.StatusOK, `{"choices": []}`, "empty response"},
		{"blank content", http.StatusOK, `{"choices": [{"message": {"role": "assistant", "content": "   "}}]}`, "empty response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewOpenAIClient(srv.URL, "", 5*time.Second)
			_, err := client.Complete(context.Background(), CompletionRequest{
				Model:    "mistral",
				Messages: []Message{{Role: RoleUser, Content: "x"}},
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMockClientScript(t *testing.T) {
	mock := NewMockClient(`{"a": 1}`, `{"b": 2}`)
	mock.Errs = []error{nil, errors.New("flaky")}

	ctx := context.Background()

	got, err := mock.Complete(ctx, CompletionRequest{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, got)

	_, err = mock.Complete(ctx, CompletionRequest{Model: "m"})
	require.Error(t, err)

	// Past the end of the script the last response repeats.
	got, err = mock.Complete(ctx, CompletionRequest{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, `{"b": 2}`, got)

	assert.Len(t, mock.Calls, 3)
}

func TestMockClientDefaultResponse(t *testing.T) {
	mock := NewMockClient()

	got, err := mock.Complete(context.Background(), CompletionRequest{Model: "m"})
	require.NoError(t, err)

	obj, err := ParseObject(got)
	require.NoError(t, err)
	assert.NotEmpty(t, obj["paragraph_fr"])
}
