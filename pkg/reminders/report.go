package reminders

import (
	remindersTypes "github.com/flytt-io/flytt-backend/pkg/reminders/types"
)

// BuildRunCounts aggregates the per-candidate outcomes into the run totals.
func BuildRunCounts(totalCandidates int, processed []remindersTypes.ProcessedReminder) remindersTypes.RunCounts {
	counts := remindersTypes.RunCounts{
		TotalCandidates: totalCandidates,
	}
	for _, outcome := range processed {
		switch outcome.Status {
		case remindersTypes.REMINDER_STATUS_SENT:
			counts.Sent++
		case remindersTypes.REMINDER_STATUS_PLANNED:
			counts.Planned++
		case remindersTypes.REMINDER_STATUS_SKIPPED:
			counts.Skipped++
		case remindersTypes.REMINDER_STATUS_FAILED:
			counts.Failed++
		}
		if outcome.UsedAida {
			counts.UsedAida++
		}
	}
	return counts
}
