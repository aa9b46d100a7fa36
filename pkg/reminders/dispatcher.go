package reminders

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flytt-io/flytt-backend/pkg/db/reminderlogs"
	messagingTypes "github.com/flytt-io/flytt-backend/pkg/messaging/types"
	remindersTypes "github.com/flytt-io/flytt-backend/pkg/reminders/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReminderLogStore is the idempotency ledger. ClaimReminder must be an
// atomic insert-if-absent against a storage-level uniqueness constraint and
// return reminderlogs.ErrAlreadyClaimed when the row already exists.
type ReminderLogStore interface {
	HasReminderLog(moveID primitive.ObjectID, kind string, scheduledFor string) (bool, error)
	ClaimReminder(log remindersTypes.ReminderLog) (remindersTypes.ReminderLog, error)
}

// MailSender routes one mail to the configured delivery provider.
type MailSender interface {
	Provider() string
	MissingCredentials() []string
	From() string
	Send(to string, content messagingTypes.EmailContent) (*string, error)
}

// Dispatcher runs one reminder batch: select candidates, guard against
// duplicates, synthesize content, deliver, report.
type Dispatcher struct {
	selector *Selector
	logs     ReminderLogStore
	mailer   MailSender
	aida     *AidaContentSource
	kind     string
}

func NewDispatcher(
	selector *Selector,
	logs ReminderLogStore,
	mailer MailSender,
	aida *AidaContentSource,
) *Dispatcher {
	return &Dispatcher{
		selector: selector,
		logs:     logs,
		mailer:   mailer,
		aida:     aida,
		kind:     remindersTypes.REMINDER_KIND_DUE_SOON,
	}
}

type RunOptions struct {
	Today         time.Time
	LookaheadDays int
	DryRun        bool
}

// Run executes one batch invocation. Candidates are processed strictly
// sequentially: one candidate's failure never affects another, and the
// sequential loop bounds the outbound request rate towards the completion
// and delivery providers. An error is returned only when candidate
// selection itself fails, i.e. before any per-candidate work started.
func (d *Dispatcher) Run(ctx context.Context, opts RunOptions) (remindersTypes.RunSummary, error) {
	start := time.Now()
	runID := uuid.New().String()

	todayISO := ToISODate(opts.Today)
	horizonISO := ToISODate(opts.Today.AddDate(0, 0, opts.LookaheadDays))

	summary := remindersTypes.RunSummary{
		RunID:         runID,
		DryRun:        opts.DryRun,
		LookaheadDays: opts.LookaheadDays,
		Window:        remindersTypes.RunWindow{From: todayISO, To: horizonISO},
		Provider:      d.mailer.Provider(),
	}

	slog.Info("Starting reminder run",
		slog.String("runId", runID),
		slog.String("from", todayISO),
		slog.String("to", horizonISO),
		slog.Bool("dryRun", opts.DryRun),
	)

	candidates, err := d.selector.BuildCandidates(todayISO, horizonISO)
	if err != nil {
		slog.Error("Failed to build reminder candidates", slog.String("runId", runID), slog.String("error", err.Error()))
		return summary, err
	}

	processed := make([]remindersTypes.ProcessedReminder, 0, len(candidates))
	for _, candidate := range candidates {
		outcome := d.processCandidate(ctx, candidate, todayISO, opts)
		if outcome.Status == remindersTypes.REMINDER_STATUS_FAILED {
			slog.Error("Reminder candidate failed",
				slog.String("runId", runID),
				slog.String("moveId", outcome.MoveID),
				slog.String("reason", outcome.Reason),
			)
		}
		processed = append(processed, outcome)
	}

	summary.Processed = processed
	summary.Counts = BuildRunCounts(len(candidates), processed)
	summary.DurationMs = time.Since(start).Milliseconds()

	slog.Info("Reminder run completed",
		slog.String("runId", runID),
		slog.Int("totalCandidates", summary.Counts.TotalCandidates),
		slog.Int("sent", summary.Counts.Sent),
		slog.Int("planned", summary.Counts.Planned),
		slog.Int("skipped", summary.Counts.Skipped),
		slog.Int("failed", summary.Counts.Failed),
		slog.Int("usedAida", summary.Counts.UsedAida),
		slog.Int64("durationMs", summary.DurationMs),
	)
	return summary, nil
}

func (d *Dispatcher) processCandidate(
	ctx context.Context,
	candidate remindersTypes.ReminderCandidate,
	todayISO string,
	opts RunOptions,
) remindersTypes.ProcessedReminder {
	outcome := remindersTypes.ProcessedReminder{
		MoveID:    candidate.MoveID.Hex(),
		Email:     candidate.UserEmail,
		ItemCount: len(candidate.DueItems),
	}

	// Cheap pre-check. The claim insert below remains the source of truth
	// under concurrent invocations.
	alreadySent, err := d.logs.HasReminderLog(candidate.MoveID, d.kind, todayISO)
	if err != nil {
		outcome.Status = remindersTypes.REMINDER_STATUS_FAILED
		outcome.Reason = "reminder log lookup failed: " + err.Error()
		return outcome
	}
	if alreadySent {
		outcome.Status = remindersTypes.REMINDER_STATUS_SKIPPED
		outcome.Reason = "already_sent_today"
		return outcome
	}

	content := BuildDeterministicContent(candidate, opts.LookaheadDays)
	if aidaContent := d.aida.Generate(ctx, candidate, opts.LookaheadDays); aidaContent != nil {
		content = *aidaContent
		outcome.UsedAida = true
	}

	provider := d.mailer.Provider()

	if opts.DryRun {
		outcome.Status = remindersTypes.REMINDER_STATUS_PLANNED
		outcome.Provider = provider
		if provider == "" {
			outcome.Provider = "none"
		}
		outcome.Subject = content.Subject
		return outcome
	}

	if provider == "" {
		outcome.Status = remindersTypes.REMINDER_STATUS_FAILED
		outcome.Reason = "missing_provider_credentials: " + strings.Join(d.mailer.MissingCredentials(), ", ")
		return outcome
	}
	outcome.Provider = provider

	if d.mailer.From() == "" {
		outcome.Status = remindersTypes.REMINDER_STATUS_FAILED
		outcome.Reason = "missing REMINDER_EMAIL_FROM"
		return outcome
	}

	// Claim the ledger row before touching the provider: the unique index
	// makes this the atomic at-most-once gate, and a failed send still
	// counts as this date's one attempt.
	_, err = d.logs.ClaimReminder(remindersTypes.ReminderLog{
		MoveID:       candidate.MoveID,
		Kind:         d.kind,
		ScheduledFor: todayISO,
		EmailTo:      candidate.UserEmail,
		Provider:     provider,
		Subject:      content.Subject,
	})
	if err != nil {
		if errors.Is(err, reminderlogs.ErrAlreadyClaimed) {
			outcome.Status = remindersTypes.REMINDER_STATUS_SKIPPED
			outcome.Reason = "already_sent_today"
			return outcome
		}
		outcome.Status = remindersTypes.REMINDER_STATUS_FAILED
		outcome.Reason = "reminder log write failed: " + err.Error()
		return outcome
	}

	messageID, err := d.mailer.Send(candidate.UserEmail, content)
	if err != nil {
		outcome.Status = remindersTypes.REMINDER_STATUS_FAILED
		outcome.Reason = err.Error()
		return outcome
	}

	outcome.Status = remindersTypes.REMINDER_STATUS_SENT
	outcome.Subject = content.Subject
	outcome.ProviderMessageID = messageID
	return outcome
}
