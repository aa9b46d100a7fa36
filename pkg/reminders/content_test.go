package reminders

import (
	"strings"
	"testing"

	remindersTypes "github.com/flytt-io/flytt-backend/pkg/reminders/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildDeterministicContent(t *testing.T) {
	t.Run("renders subject greeting and task line", func(t *testing.T) {
		candidate := remindersTypes.ReminderCandidate{
			MoveID:    primitive.NewObjectID(),
			UserName:  "Anna Svensson",
			UserEmail: "anna@example.com",
			MoveDate:  "2025-06-15",
			DueItems: []remindersTypes.DueItem{
				{Title: "Teckna elavtal", Section: "El & Bredband", DueDate: "2025-06-01"},
			},
		}

		content := BuildDeterministicContent(candidate, 3)

		if content.Subject != "Flyttpaminnelse: 1 uppgifter inom 3 dagar" {
			t.Errorf("unexpected subject: %q", content.Subject)
		}
		if !strings.HasPrefix(content.Text, "Hej Anna,\n\n") {
			t.Errorf("unexpected greeting: %q", content.Text)
		}
		if !strings.Contains(content.Text, "Inflyttningsdatum: 2025-06-15") {
			t.Errorf("move date missing from text: %q", content.Text)
		}
		if !strings.Contains(content.Text, "- 2025-06-01: Teckna elavtal (El & Bredband)") {
			t.Errorf("task line missing from text: %q", content.Text)
		}
		if !strings.Contains(content.Text, "Halsningar,\nFlytt.io") {
			t.Errorf("signature missing from text: %q", content.Text)
		}
	})

	t.Run("falls back to generic greeting without a name", func(t *testing.T) {
		candidate := remindersTypes.ReminderCandidate{
			UserEmail: "anon@example.com",
			DueItems: []remindersTypes.DueItem{
				{Title: "Bestall flyttbil", DueDate: "2025-06-01"},
			},
		}

		content := BuildDeterministicContent(candidate, 3)

		if !strings.HasPrefix(content.Text, "Hej du,") {
			t.Errorf("unexpected greeting: %q", content.Text)
		}
		if strings.Contains(content.Text, "Inflyttningsdatum") {
			t.Errorf("unset move date should not be rendered: %q", content.Text)
		}
	})

	t.Run("escapes html in user provided fields", func(t *testing.T) {
		candidate := remindersTypes.ReminderCandidate{
			UserName:  "<script>alert(1)</script>",
			UserEmail: "x@example.com",
			DueItems: []remindersTypes.DueItem{
				{Title: "a < b", Section: "Ute & Inne", DueDate: "2025-06-01"},
			},
		}

		content := BuildDeterministicContent(candidate, 3)

		if strings.Contains(content.HTML, "<script>") {
			t.Errorf("unescaped html: %q", content.HTML)
		}
		if !strings.Contains(content.HTML, "a &lt; b") {
			t.Errorf("title not escaped: %q", content.HTML)
		}
		if !strings.Contains(content.HTML, "<em>(Ute &amp; Inne)</em>") {
			t.Errorf("section not rendered: %q", content.HTML)
		}
	})
}
