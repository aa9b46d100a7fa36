package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flytt-io/flytt-backend/pkg/db/reminderlogs"
	messagingTypes "github.com/flytt-io/flytt-backend/pkg/messaging/types"
	movingTypes "github.com/flytt-io/flytt-backend/pkg/moving/types"
	remindersTypes "github.com/flytt-io/flytt-backend/pkg/reminders/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockLogStore struct {
	existing  map[string]bool
	claims    []remindersTypes.ReminderLog
	lookupErr error
	claimErr  error
}

func logKey(moveID primitive.ObjectID, kind string, scheduledFor string) string {
	return moveID.Hex() + "|" + kind + "|" + scheduledFor
}

func (m *mockLogStore) HasReminderLog(moveID primitive.ObjectID, kind string, scheduledFor string) (bool, error) {
	if m.lookupErr != nil {
		return false, m.lookupErr
	}
	return m.existing[logKey(moveID, kind, scheduledFor)], nil
}

func (m *mockLogStore) ClaimReminder(log remindersTypes.ReminderLog) (remindersTypes.ReminderLog, error) {
	if m.claimErr != nil {
		return log, m.claimErr
	}
	key := logKey(log.MoveID, log.Kind, log.ScheduledFor)
	if m.existing == nil {
		m.existing = map[string]bool{}
	}
	if m.existing[key] {
		return log, reminderlogs.ErrAlreadyClaimed
	}
	m.existing[key] = true
	m.claims = append(m.claims, log)
	return log, nil
}

type mockMailSender struct {
	provider  string
	missing   []string
	from      string
	sendErr   error
	sentTo    []string
	messageID string
}

func (m *mockMailSender) Provider() string             { return m.provider }
func (m *mockMailSender) MissingCredentials() []string { return m.missing }
func (m *mockMailSender) From() string                 { return m.from }

func (m *mockMailSender) Send(to string, content messagingTypes.EmailContent) (*string, error) {
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	m.sentTo = append(m.sentTo, to)
	id := m.messageID
	return &id, nil
}

func dispatcherFixture(moves []movingTypes.MoveWithUser, items map[primitive.ObjectID][]movingTypes.ChecklistItem, logs *mockLogStore, mailer *mockMailSender) *Dispatcher {
	provider := &mockMoveDataProvider{moves: moves, itemsByMove: items}
	return NewDispatcher(NewSelector(provider), logs, mailer, NewAidaContentSource(nil, false))
}

func singleCandidateFixture(moveID primitive.ObjectID) ([]movingTypes.MoveWithUser, map[primitive.ObjectID][]movingTypes.ChecklistItem) {
	moves := []movingTypes.MoveWithUser{
		{MoveID: moveID, UserName: "Anna Svensson", UserEmail: "anna@example.com"},
	}
	items := map[primitive.ObjectID][]movingTypes.ChecklistItem{
		moveID: {{Title: "Teckna elavtal", DueDate: "2025-05-29"}},
	}
	return moves, items
}

func runOpts() RunOptions {
	return RunOptions{
		Today:         time.Date(2025, 5, 28, 10, 0, 0, 0, time.UTC),
		LookaheadDays: 3,
		DryRun:        false,
	}
}

func TestDispatcherRun(t *testing.T) {
	ctx := context.Background()

	t.Run("sends and records one reminder", func(t *testing.T) {
		moveID := primitive.NewObjectID()
		moves, items := singleCandidateFixture(moveID)
		logs := &mockLogStore{}
		mailer := &mockMailSender{provider: "resend", from: "noreply@flytt.io", messageID: "msg-1"}

		summary, err := dispatcherFixture(moves, items, logs, mailer).Run(ctx, runOpts())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if summary.Counts.Sent != 1 || summary.Counts.TotalCandidates != 1 {
			t.Errorf("unexpected counts: %+v", summary.Counts)
		}
		if len(logs.claims) != 1 {
			t.Fatalf("expected 1 ledger row, got %d", len(logs.claims))
		}
		claim := logs.claims[0]
		if claim.MoveID != moveID || claim.Kind != remindersTypes.REMINDER_KIND_DUE_SOON || claim.ScheduledFor != "2025-05-28" {
			t.Errorf("unexpected ledger row: %+v", claim)
		}
		if len(mailer.sentTo) != 1 || mailer.sentTo[0] != "anna@example.com" {
			t.Errorf("unexpected recipients: %v", mailer.sentTo)
		}
		outcome := summary.Processed[0]
		if outcome.Status != remindersTypes.REMINDER_STATUS_SENT || outcome.ProviderMessageID == nil || *outcome.ProviderMessageID != "msg-1" {
			t.Errorf("unexpected outcome: %+v", outcome)
		}
	})

	t.Run("second run skips without sending again", func(t *testing.T) {
		moveID := primitive.NewObjectID()
		moves, items := singleCandidateFixture(moveID)
		logs := &mockLogStore{}
		mailer := &mockMailSender{provider: "resend", from: "noreply@flytt.io"}
		dispatcher := dispatcherFixture(moves, items, logs, mailer)

		if _, err := dispatcher.Run(ctx, runOpts()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		summary, err := dispatcher.Run(ctx, runOpts())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if summary.Counts.Skipped != 1 || summary.Counts.Sent != 0 {
			t.Errorf("unexpected counts: %+v", summary.Counts)
		}
		if summary.Processed[0].Reason != "already_sent_today" {
			t.Errorf("unexpected reason: %q", summary.Processed[0].Reason)
		}
		if len(mailer.sentTo) != 1 {
			t.Errorf("expected exactly one send across both runs, got %d", len(mailer.sentTo))
		}
	})

	t.Run("concurrent claim loss is reported as skipped", func(t *testing.T) {
		moveID := primitive.NewObjectID()
		moves, items := singleCandidateFixture(moveID)
		logs := &mockLogStore{claimErr: reminderlogs.ErrAlreadyClaimed}
		mailer := &mockMailSender{provider: "resend", from: "noreply@flytt.io"}

		summary, err := dispatcherFixture(moves, items, logs, mailer).Run(ctx, runOpts())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if summary.Counts.Skipped != 1 {
			t.Errorf("unexpected counts: %+v", summary.Counts)
		}
		if len(mailer.sentTo) != 0 {
			t.Errorf("expected no sends, got %v", mailer.sentTo)
		}
	})

	t.Run("dry run plans without writing or sending", func(t *testing.T) {
		moveID := primitive.NewObjectID()
		moves, items := singleCandidateFixture(moveID)
		logs := &mockLogStore{}
		mailer := &mockMailSender{provider: "resend", from: "noreply@flytt.io"}

		opts := runOpts()
		opts.DryRun = true
		summary, err := dispatcherFixture(moves, items, logs, mailer).Run(ctx, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if summary.Counts.Planned != 1 {
			t.Errorf("unexpected counts: %+v", summary.Counts)
		}
		if len(logs.claims) != 0 || len(mailer.sentTo) != 0 {
			t.Errorf("dry run must not write or send: claims=%d sent=%d", len(logs.claims), len(mailer.sentTo))
		}
		outcome := summary.Processed[0]
		if outcome.Provider != "resend" || outcome.Subject == "" {
			t.Errorf("unexpected outcome: %+v", outcome)
		}
	})

	t.Run("dry run without provider reports none", func(t *testing.T) {
		moveID := primitive.NewObjectID()
		moves, items := singleCandidateFixture(moveID)
		logs := &mockLogStore{}
		mailer := &mockMailSender{provider: "", missing: []string{"RESEND_API_KEY or SENDGRID_API_KEY"}}

		opts := runOpts()
		opts.DryRun = true
		summary, err := dispatcherFixture(moves, items, logs, mailer).Run(ctx, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Processed[0].Provider != "none" {
			t.Errorf("unexpected provider: %q", summary.Processed[0].Provider)
		}
	})

	t.Run("missing provider credentials fail the candidate", func(t *testing.T) {
		moveID := primitive.NewObjectID()
		moves, items := singleCandidateFixture(moveID)
		logs := &mockLogStore{}
		mailer := &mockMailSender{provider: "", missing: []string{"RESEND_API_KEY"}}

		summary, err := dispatcherFixture(moves, items, logs, mailer).Run(ctx, runOpts())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		outcome := summary.Processed[0]
		if outcome.Status != remindersTypes.REMINDER_STATUS_FAILED {
			t.Errorf("unexpected status: %q", outcome.Status)
		}
		if outcome.Reason != "missing_provider_credentials: RESEND_API_KEY" {
			t.Errorf("unexpected reason: %q", outcome.Reason)
		}
		if len(logs.claims) != 0 {
			t.Errorf("config failures must not write ledger rows, got %d", len(logs.claims))
		}
	})

	t.Run("missing from address fails the candidate", func(t *testing.T) {
		moveID := primitive.NewObjectID()
		moves, items := singleCandidateFixture(moveID)
		logs := &mockLogStore{}
		mailer := &mockMailSender{provider: "resend"}

		summary, err := dispatcherFixture(moves, items, logs, mailer).Run(ctx, runOpts())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Processed[0].Reason != "missing REMINDER_EMAIL_FROM" {
			t.Errorf("unexpected reason: %q", summary.Processed[0].Reason)
		}
	})

	t.Run("send failure is isolated per candidate", func(t *testing.T) {
		failingMoveID := primitive.NewObjectID()
		moves, items := singleCandidateFixture(failingMoveID)
		logs := &mockLogStore{}
		mailer := &mockMailSender{provider: "resend", from: "noreply@flytt.io", sendErr: errors.New("resend returned 500")}

		summary, err := dispatcherFixture(moves, items, logs, mailer).Run(ctx, runOpts())
		if err != nil {
			t.Fatalf("a candidate failure must not fail the run: %v", err)
		}

		if summary.Counts.Failed != 1 {
			t.Errorf("unexpected counts: %+v", summary.Counts)
		}
		// The claim was written before the send, so the failed attempt
		// consumed this date's slot.
		if len(logs.claims) != 1 {
			t.Errorf("expected the claim to be recorded, got %d", len(logs.claims))
		}
	})

	t.Run("ledger lookup failure fails the candidate", func(t *testing.T) {
		moveID := primitive.NewObjectID()
		moves, items := singleCandidateFixture(moveID)
		logs := &mockLogStore{lookupErr: errors.New("db down")}
		mailer := &mockMailSender{provider: "resend", from: "noreply@flytt.io"}

		summary, err := dispatcherFixture(moves, items, logs, mailer).Run(ctx, runOpts())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Counts.Failed != 1 || len(mailer.sentTo) != 0 {
			t.Errorf("unexpected result: %+v, sent=%v", summary.Counts, mailer.sentTo)
		}
	})

	t.Run("selection failure aborts the run", func(t *testing.T) {
		provider := &mockMoveDataProvider{movesErr: errors.New("db down")}
		dispatcher := NewDispatcher(NewSelector(provider), &mockLogStore{}, &mockMailSender{provider: "resend"}, NewAidaContentSource(nil, false))

		_, err := dispatcher.Run(ctx, runOpts())
		if err == nil {
			t.Error("expected error")
		}
	})

	t.Run("aida content marks the outcome", func(t *testing.T) {
		moveID := primitive.NewObjectID()
		moves, items := singleCandidateFixture(moveID)
		logs := &mockLogStore{}
		mailer := &mockMailSender{provider: "resend", from: "noreply@flytt.io"}

		provider := &mockMoveDataProvider{moves: moves, itemsByMove: items}
		aidaSource := NewAidaContentSource(&mockCompletionClient{reply: `{"subject":"Dags!","text":"Hej","html":"<p>Hej</p>"}`}, true)
		dispatcher := NewDispatcher(NewSelector(provider), logs, mailer, aidaSource)

		summary, err := dispatcher.Run(ctx, runOpts())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		outcome := summary.Processed[0]
		if !outcome.UsedAida || summary.Counts.UsedAida != 1 {
			t.Errorf("expected aida usage to be reported: %+v", outcome)
		}
		if outcome.Subject != "Dags!" {
			t.Errorf("unexpected subject: %q", outcome.Subject)
		}
	})
}
