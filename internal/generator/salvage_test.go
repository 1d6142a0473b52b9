package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{
			name:  "bare object",
			input: `{"paragraph_fr": "Bonjour", "notes": ""}`,
			want:  map[string]any{"paragraph_fr": "Bonjour", "notes": ""},
		},
		{
			name:  "json code fence",
			input: "```json\n{\"score\": 7}\n```",
			want:  map[string]any{"score": float64(7)},
		},
		{
			name:  "anonymous code fence",
			input: "```\n{\"score\": 7}\n```",
			want:  map[string]any{"score": float64(7)},
		},
		{
			name:  "single backticks",
			input: "`{\"a\": 1}`",
			want:  map[string]any{"a": float64(1)},
		},
		{
			name:  "prose around the object",
			input: `Here is your exercise: {"paragraph_fr": "Salut"} Hope it helps!`,
			want:  map[string]any{"paragraph_fr": "Salut"},
		},
		{
			name:  "braces inside strings",
			input: `Sure! {"text": "use {curly} braces", "n": 1} trailing } noise`,
			want:  map[string]any{"text": "use {curly} braces", "n": float64(1)},
		},
		{
			name:  "escaped quotes inside strings",
			input: `{"text": "she said \"hi\" to me"}`,
			want:  map[string]any{"text": `she said "hi" to me`},
		},
		{
			name:  "leading and trailing whitespace",
			input: "\n\n  {\"a\": true}  \n",
			want:  map[string]any{"a": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseObject(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseObjectRejects(t *testing.T) {
	inputs := map[string]string{
		"empty":            "",
		"whitespace only":  "   \n  ",
		"no json at all":   "je ne peux pas répondre",
		"top level array":  `[{"a": 1}]`,
		"top level scalar": `42`,
		"unclosed object":  `{"a": 1`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ParseObject(input)
			require.Error(t, err)
		})
	}
}

func TestParseObjectErrorPreviewBounded(t *testing.T) {
	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'x'
	}

	_, err := ParseObject(string(long))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.LessOrEqual(t, len(perr.Preview), 203) // 200 chars plus ellipsis
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want int
	}{
		{"in range", float64(7), 7},
		{"above max", float64(15), 10},
		{"below min", float64(-3), 0},
		{"numeric string", "8", 8},
		{"float truncated", 7.9, 7},
		{"garbage string", "huit", 0},
		{"nil", nil, 0},
		{"bool true", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampInt(tt.v, 0, 10, 0))
		})
	}
}
