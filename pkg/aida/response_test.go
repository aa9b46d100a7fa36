package aida

import (
	"encoding/json"
	"testing"
)

func decodeJSON(t *testing.T, raw string) interface{} {
	t.Helper()
	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("invalid test payload: %v", err)
	}
	return data
}

func TestExtractCompletionText(t *testing.T) {
	t.Run("chat completions shape", func(t *testing.T) {
		data := decodeJSON(t, `{"choices":[{"message":{"content":"Hej!"}}]}`)
		if got := ExtractCompletionText(data); got != "Hej!" {
			t.Errorf("expected %q, got %q", "Hej!", got)
		}
	})

	t.Run("open responses shape", func(t *testing.T) {
		data := decodeJSON(t, `{
			"output": [
				{"type": "reasoning", "content": [{"type": "output_text", "text": "ignored"}]},
				{"type": "message", "content": [
					{"type": "output_text", "text": "Hej "},
					{"type": "output_text", "text": "Anna!"}
				]}
			]
		}`)
		if got := ExtractCompletionText(data); got != "Hej Anna!" {
			t.Errorf("expected %q, got %q", "Hej Anna!", got)
		}
	})

	t.Run("bare content object", func(t *testing.T) {
		data := decodeJSON(t, `{"content":"Hej!"}`)
		if got := ExtractCompletionText(data); got != "Hej!" {
			t.Errorf("expected %q, got %q", "Hej!", got)
		}
	})

	t.Run("empty choices fall through to content", func(t *testing.T) {
		data := decodeJSON(t, `{"choices":[{"message":{"content":"  "}}],"content":"fallback"}`)
		if got := ExtractCompletionText(data); got != "fallback" {
			t.Errorf("expected %q, got %q", "fallback", got)
		}
	})

	t.Run("unusable payloads return empty", func(t *testing.T) {
		for _, raw := range []string{`{}`, `{"choices":[]}`, `{"output":[]}`, `[1,2]`, `"text"`} {
			data := decodeJSON(t, raw)
			if got := ExtractCompletionText(data); got != "" {
				t.Errorf("expected empty for %s, got %q", raw, got)
			}
		}
	})
}
