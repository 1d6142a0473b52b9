package generator

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseObject reads a model response as a JSON object, salvaging the object
// from surrounding noise when needed. Models wrap JSON in code fences, prose
// and stray backticks often enough that a strict parse alone is useless.
//
// Strategies, in order: parse the whole text, strip code fences and retry,
// slice from the first '{' to the last '}', and finally a balanced scan that
// tracks string and escape state. Top-level arrays and scalars are rejected
// even when they are valid JSON.
func ParseObject(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, newParseError(text, ErrEmptyResponse)
	}

	if obj, err := decodeObject(trimmed); err == nil {
		return obj, nil
	}

	candidate, ok := ExtractObject(trimmed)
	if !ok {
		return nil, newParseError(text, errors.New("no JSON object found"))
	}

	obj, err := decodeObject(candidate)
	if err != nil {
		return nil, newParseError(text, err)
	}
	return obj, nil
}

// ExtractObject pulls the first JSON object out of text, handling markdown
// code fences. It returns false when no plausible object is present.
func ExtractObject(text string) (string, bool) {
	s := stripFences(strings.TrimSpace(text))

	for _, candidate := range []string{
		s,
		sliceBraces(s),
		scanBalanced(s),
	} {
		candidate = strings.TrimSpace(candidate)
		if strings.HasPrefix(candidate, "{") && strings.HasSuffix(candidate, "}") && gjson.Valid(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func decodeObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("JSON value is not an object")
	}
	return obj, nil
}

// stripFences removes a surrounding markdown code fence (```json ... ``` or
// ``` ... ```) and stray single backticks.
func stripFences(s string) string {
	if strings.HasPrefix(s, "```") {
		lines := strings.Split(s, "\n")
		if len(lines) > 1 {
			lines = lines[1:]
		}
		if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
			lines = lines[:len(lines)-1]
		}
		s = strings.TrimSpace(strings.Join(lines, "\n"))
	}

	if strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`") {
		s = strings.TrimSpace(strings.Trim(s, "`"))
	}
	return s
}

// sliceBraces returns the span from the first '{' to the last '}', or "".
func sliceBraces(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}

// scanBalanced extracts the first brace-balanced object, ignoring braces
// inside JSON strings.
func scanBalanced(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// clampInt coerces v to an int within [lo, hi], falling back to def when v
// is not numeric. JSON numbers arrive as float64; numeric strings are also
// accepted since models sometimes quote scores.
func clampInt(v any, lo, hi, def int) int {
	n, ok := asInt(v)
	if !ok {
		return def
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case int:
		return x, true
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return int(f), true
		}
	case string:
		r := gjson.Parse(strings.TrimSpace(x))
		if r.Type == gjson.Number {
			return int(r.Float()), true
		}
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
