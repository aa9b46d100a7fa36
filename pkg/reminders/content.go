package reminders

import (
	"fmt"
	"html"
	"strings"

	messagingTypes "github.com/flytt-io/flytt-backend/pkg/messaging/types"
	remindersTypes "github.com/flytt-io/flytt-backend/pkg/reminders/types"
)

// BuildDeterministicContent renders the reminder mail without any remote
// call. This is the fallback for the AI path and the ground truth for what a
// reminder must contain. It never fails.
func BuildDeterministicContent(candidate remindersTypes.ReminderCandidate, lookaheadDays int) messagingTypes.EmailContent {
	firstName := firstNameOf(candidate.UserName)

	subject := fmt.Sprintf("Flyttpaminnelse: %d uppgifter inom %d dagar", len(candidate.DueItems), lookaheadDays)

	var text strings.Builder
	text.WriteString("Hej " + firstName + ",\n\n")
	text.WriteString("Har ar dina narmaste flyttmoment som behover hanteras snart.\n")
	if candidate.MoveDate != "" {
		text.WriteString("Inflyttningsdatum: " + candidate.MoveDate + "\n\n")
	} else {
		text.WriteString("\n")
	}
	for i, item := range candidate.DueItems {
		if i > 0 {
			text.WriteString("\n")
		}
		text.WriteString("- " + item.DueDate + ": " + item.Title)
		if item.Section != "" {
			text.WriteString(" (" + item.Section + ")")
		}
	}
	text.WriteString("\n\nGa till din dashboard for att markera status och fa fortsatt hjalp.\n")
	text.WriteString("Halsningar,\nFlytt.io")

	var htmlBody strings.Builder
	htmlBody.WriteString("<p>Hej " + html.EscapeString(firstName) + ",</p>")
	htmlBody.WriteString("<p>Har ar dina narmaste flyttmoment som behover hanteras snart.</p>")
	if candidate.MoveDate != "" {
		htmlBody.WriteString("<p><strong>Inflyttningsdatum:</strong> " + html.EscapeString(candidate.MoveDate) + "</p>")
	}
	htmlBody.WriteString("<ul>")
	for _, item := range candidate.DueItems {
		htmlBody.WriteString("<li><strong>" + html.EscapeString(item.DueDate) + "</strong> - " + html.EscapeString(item.Title))
		if item.Section != "" {
			htmlBody.WriteString(" <em>(" + html.EscapeString(item.Section) + ")</em>")
		}
		htmlBody.WriteString("</li>")
	}
	htmlBody.WriteString("</ul>")
	htmlBody.WriteString("<p>Ga till din dashboard for att markera status och fa fortsatt hjalp.</p>")
	htmlBody.WriteString("<p>Halsningar,<br/>Flytt.io</p>")

	return messagingTypes.EmailContent{
		Subject: subject,
		Text:    text.String(),
		HTML:    htmlBody.String(),
	}
}

func firstNameOf(displayName string) string {
	first, _, _ := strings.Cut(displayName, " ")
	if first == "" {
		return "du"
	}
	return first
}
