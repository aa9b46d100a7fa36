package reminders

import (
	"context"
	"errors"
	"strings"
	"testing"

	remindersTypes "github.com/flytt-io/flytt-backend/pkg/reminders/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockCompletionClient struct {
	reply string
	err   error

	lastUserPrompt string
}

func (m *mockCompletionClient) Complete(ctx context.Context, systemPrompt string, userPrompt string, userTag string) (string, error) {
	m.lastUserPrompt = userPrompt
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func testCandidate() remindersTypes.ReminderCandidate {
	return remindersTypes.ReminderCandidate{
		MoveID:    primitive.NewObjectID(),
		UserName:  "Anna Svensson",
		UserEmail: "anna@example.com",
		DueItems: []remindersTypes.DueItem{
			{Title: "Teckna elavtal", DueDate: "2025-06-01"},
		},
	}
}

func TestExtractJSONObject(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"with surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
		{"wrapped in prose", "Here you go: {\"a\":1} hope it helps", `{"a":1}`},
		{"markdown fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"no object", "sorry, cannot do that", ""},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractJSONObject(tc.input)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeAidaContent(t *testing.T) {
	t.Run("valid content passes through", func(t *testing.T) {
		content := normalizeAidaContent(map[string]interface{}{
			"subject": " Dags att flytta ",
			"text":    "Hej!",
			"html":    "<p>Hej!</p>",
		})
		if content == nil {
			t.Fatal("expected content")
		}
		if content.Subject != "Dags att flytta" {
			t.Errorf("unexpected subject: %q", content.Subject)
		}
	})

	t.Run("missing or non-string keys are rejected", func(t *testing.T) {
		testCases := []map[string]interface{}{
			{"text": "x", "html": "y"},
			{"subject": 42, "text": "x", "html": "y"},
			{"subject": "s", "text": "x"},
			{"subject": "", "text": "x", "html": "y"},
			{"subject": "   ", "text": "x", "html": "y"},
		}
		for _, tc := range testCases {
			if content := normalizeAidaContent(tc); content != nil {
				t.Errorf("expected nil for %v, got %v", tc, content)
			}
		}
	})

	t.Run("overlong fields are truncated", func(t *testing.T) {
		content := normalizeAidaContent(map[string]interface{}{
			"subject": strings.Repeat("a", aidaSubjectMaxRunes+50),
			"text":    "x",
			"html":    "y",
		})
		if content == nil {
			t.Fatal("expected content")
		}
		if len([]rune(content.Subject)) != aidaSubjectMaxRunes {
			t.Errorf("expected subject truncated to %d runes, got %d", aidaSubjectMaxRunes, len([]rune(content.Subject)))
		}
	})
}

func TestAidaContentSourceGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled source returns nil", func(t *testing.T) {
		source := NewAidaContentSource(&mockCompletionClient{reply: `{"subject":"s","text":"t","html":"h"}`}, false)
		if content := source.Generate(ctx, testCandidate(), 3); content != nil {
			t.Errorf("expected nil, got %v", content)
		}
	})

	t.Run("nil client returns nil", func(t *testing.T) {
		source := NewAidaContentSource(nil, true)
		if content := source.Generate(ctx, testCandidate(), 3); content != nil {
			t.Errorf("expected nil, got %v", content)
		}
	})

	t.Run("completion error returns nil", func(t *testing.T) {
		source := NewAidaContentSource(&mockCompletionClient{err: errors.New("gateway down")}, true)
		if content := source.Generate(ctx, testCandidate(), 3); content != nil {
			t.Errorf("expected nil, got %v", content)
		}
	})

	t.Run("malformed reply returns nil", func(t *testing.T) {
		source := NewAidaContentSource(&mockCompletionClient{reply: "not json at all"}, true)
		if content := source.Generate(ctx, testCandidate(), 3); content != nil {
			t.Errorf("expected nil, got %v", content)
		}
	})

	t.Run("valid reply is used", func(t *testing.T) {
		source := NewAidaContentSource(&mockCompletionClient{reply: `{"subject":"Dags!","text":"Hej","html":"<p>Hej</p>"}`}, true)
		content := source.Generate(ctx, testCandidate(), 3)
		if content == nil {
			t.Fatal("expected content")
		}
		if content.Subject != "Dags!" {
			t.Errorf("unexpected subject: %q", content.Subject)
		}
	})

	t.Run("prompt contains tasks but never the email address", func(t *testing.T) {
		client := &mockCompletionClient{reply: `{"subject":"s","text":"t","html":"h"}`}
		source := NewAidaContentSource(client, true)
		source.Generate(ctx, testCandidate(), 3)

		if !strings.Contains(client.lastUserPrompt, "Teckna elavtal") {
			t.Errorf("task title missing from prompt: %q", client.lastUserPrompt)
		}
		if strings.Contains(client.lastUserPrompt, "anna@example.com") {
			t.Errorf("email address leaked into prompt: %q", client.lastUserPrompt)
		}
	})
}
