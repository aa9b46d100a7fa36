package reminders

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	messagingTypes "github.com/flytt-io/flytt-backend/pkg/messaging/types"
	remindersTypes "github.com/flytt-io/flytt-backend/pkg/reminders/types"
)

const (
	aidaSubjectMaxRunes = 140
	aidaTextMaxRunes    = 8000
	aidaHTMLMaxRunes    = 15000
)

const aidaSystemPrompt = "Du ar Aida, en svensk flyttassistent. " +
	"Du far INTE valja vilka uppgifter som ska paminnas om; scheduler ar redan bestamd. " +
	`Returnera ENDAST giltig JSON med exakt nycklarna: {"subject":"...","text":"...","html":"..."} ` +
	"utan markdown eller extra text."

// CompletionClient is one backend capable of answering a system+user prompt
// with free text. Implementations live in pkg/aida.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string, userTag string) (string, error)
}

// AidaContentSource is the AI-augmented content path. It is the only place
// where completion failures are handled: every failure mode collapses to a
// nil result, so callers always have the deterministic builder to fall back
// on and no error ever propagates out of content synthesis.
type AidaContentSource struct {
	client  CompletionClient
	enabled bool
}

func NewAidaContentSource(client CompletionClient, enabled bool) *AidaContentSource {
	return &AidaContentSource{
		client:  client,
		enabled: enabled,
	}
}

type aidaPromptItem struct {
	Title   string  `json:"title"`
	DueDate string  `json:"dueDate"`
	Section *string `json:"section"`
}

type aidaPromptPayload struct {
	Instruction   string           `json:"instruction"`
	RecipientName string           `json:"recipientName"`
	MoveDate      *string          `json:"moveDate"`
	LookaheadDays int              `json:"lookaheadDays"`
	DueItems      []aidaPromptItem `json:"dueItems"`
}

// Generate asks the completion backend to restyle the already selected task
// list. Returns nil when the backend is unavailable, disabled, or replies
// with anything other than a well-formed, non-empty content object.
func (s *AidaContentSource) Generate(ctx context.Context, candidate remindersTypes.ReminderCandidate, lookaheadDays int) *messagingTypes.EmailContent {
	if s == nil || !s.enabled || s.client == nil {
		return nil
	}

	// Only the minimum the model needs: task titles, due dates and section
	// labels. No email address, no move details beyond the date.
	items := make([]aidaPromptItem, 0, len(candidate.DueItems))
	for _, item := range candidate.DueItems {
		promptItem := aidaPromptItem{
			Title:   item.Title,
			DueDate: item.DueDate,
		}
		if item.Section != "" {
			section := item.Section
			promptItem.Section = &section
		}
		items = append(items, promptItem)
	}

	payload := aidaPromptPayload{
		Instruction:   "Skriv ett kort, varmt och tydligt paminnelsemail pa svenska utifran redan utvalda uppgifter.",
		RecipientName: candidate.UserName,
		LookaheadDays: lookaheadDays,
		DueItems:      items,
	}
	if candidate.MoveDate != "" {
		moveDate := candidate.MoveDate
		payload.MoveDate = &moveDate
	}

	userPrompt, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil
	}

	userTag := "cron-reminder-" + candidate.MoveID.Hex()
	reply, err := s.client.Complete(ctx, aidaSystemPrompt, string(userPrompt), userTag)
	if err != nil {
		slog.Debug("aida completion failed, using deterministic content", slog.String("moveId", candidate.MoveID.Hex()), slog.String("error", err.Error()))
		return nil
	}

	jsonText := extractJSONObject(reply)
	if jsonText == "" {
		return nil
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil
	}

	return normalizeAidaContent(parsed)
}

// extractJSONObject returns the {...} object in text: either the whole
// trimmed reply, or the outermost braces when the model wrapped the object
// in prose. Empty string when no object can be found.
func extractJSONObject(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return trimmed[start : end+1]
}

func normalizeAidaContent(value map[string]interface{}) *messagingTypes.EmailContent {
	subject, ok := value["subject"].(string)
	if !ok {
		return nil
	}
	text, ok := value["text"].(string)
	if !ok {
		return nil
	}
	htmlBody, ok := value["html"].(string)
	if !ok {
		return nil
	}

	subject = strings.TrimSpace(subject)
	text = strings.TrimSpace(text)
	htmlBody = strings.TrimSpace(htmlBody)
	if subject == "" || text == "" || htmlBody == "" {
		return nil
	}

	return &messagingTypes.EmailContent{
		Subject: truncateRunes(subject, aidaSubjectMaxRunes),
		Text:    truncateRunes(text, aidaTextMaxRunes),
		HTML:    truncateRunes(htmlBody, aidaHTMLMaxRunes),
	}
}

func truncateRunes(value string, maxRunes int) string {
	runes := []rune(value)
	if len(runes) <= maxRunes {
		return value
	}
	return string(runes[:maxRunes])
}
