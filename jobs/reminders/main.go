package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/flytt-io/flytt-backend/pkg/aida"
	"github.com/flytt-io/flytt-backend/pkg/db"
	"github.com/flytt-io/flytt-backend/pkg/db/movedata"
	"github.com/flytt-io/flytt-backend/pkg/db/reminderlogs"
	emailsending "github.com/flytt-io/flytt-backend/pkg/messaging/email-sending"
	"github.com/flytt-io/flytt-backend/pkg/reminders"
	"github.com/robfig/cron/v3"
)

func main() {
	slog.Info("Starting reminders job")

	moveDataDBService, err := movedata.NewMoveDataDBService(db.DBConfigFromYamlObj(conf.DBConfigs.MoveDataDB))
	if err != nil {
		slog.Error("Error connecting to Move Data DB", slog.String("error", err.Error()))
		return
	}

	reminderLogDBService, err := reminderlogs.NewReminderLogDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ReminderLogDB))
	if err != nil {
		slog.Error("Error connecting to Reminder Log DB", slog.String("error", err.Error()))
		return
	}

	dispatcher := reminders.NewDispatcher(
		reminders.NewSelector(moveDataDBService),
		reminderLogDBService,
		emailsending.NewRouter(conf.MessagingConfigs),
		newAidaContentSource(),
	)

	if conf.RunConfigs.Schedule == "" {
		runOnce(dispatcher)
		return
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(conf.RunConfigs.Schedule, func() {
		runOnce(dispatcher)
	})
	if err != nil {
		slog.Error("Invalid cron schedule", slog.String("schedule", conf.RunConfigs.Schedule), slog.String("error", err.Error()))
		return
	}

	slog.Info("Reminders job scheduled", slog.String("schedule", conf.RunConfigs.Schedule))
	scheduler.Run()
}

func runOnce(dispatcher *reminders.Dispatcher) {
	lookaheadDays := conf.RunConfigs.LookaheadDays
	if lookaheadDays < 1 {
		lookaheadDays = reminders.DEFAULT_LOOKAHEAD_DAYS
	}
	if lookaheadDays > reminders.MAX_LOOKAHEAD_DAYS {
		lookaheadDays = reminders.MAX_LOOKAHEAD_DAYS
	}

	dryRun := conf.Environment != "production"
	switch conf.RunConfigs.DryRun {
	case "true", "1":
		dryRun = true
	case "false", "0":
		dryRun = false
	}

	summary, err := dispatcher.Run(context.Background(), reminders.RunOptions{
		Today:         time.Now().UTC(),
		LookaheadDays: lookaheadDays,
		DryRun:        dryRun,
	})
	if err != nil {
		slog.Error("Reminders job run failed", slog.String("error", err.Error()))
		return
	}

	slog.Info("Reminders job run finished",
		slog.String("runId", summary.RunID),
		slog.Bool("dryRun", summary.DryRun),
		slog.Int("totalCandidates", summary.Counts.TotalCandidates),
		slog.Int("sent", summary.Counts.Sent),
		slog.Int("planned", summary.Counts.Planned),
		slog.Int("skipped", summary.Counts.Skipped),
		slog.Int("failed", summary.Counts.Failed),
	)
}

// newAidaContentSource picks the completion backend: the Aida gateway when
// configured, otherwise DeepSeek directly, otherwise AI restyling stays off.
func newAidaContentSource() *reminders.AidaContentSource {
	enabled := conf.AidaConfigs.UseAida == "" || conf.AidaConfigs.UseAida == "true"

	gatewayClient := aida.NewGatewayClient(conf.AidaConfigs.Gateway)
	if gatewayClient.IsConfigured() {
		return reminders.NewAidaContentSource(gatewayClient, enabled)
	}

	if conf.AidaConfigs.Deepseek.APIKey != "" {
		deepseekClient, err := aida.NewDeepseekClient(conf.AidaConfigs.Deepseek)
		if err != nil {
			slog.Error("Error creating DeepSeek client, AI content disabled", slog.String("error", err.Error()))
			return reminders.NewAidaContentSource(nil, false)
		}
		return reminders.NewAidaContentSource(deepseekClient, enabled)
	}

	slog.Info("No completion backend configured, reminders use deterministic content only")
	return reminders.NewAidaContentSource(nil, false)
}
