package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reminder kinds. Currently only the due-soon digest exists, but the ledger
// is keyed by kind so further categories can be added without a migration.
const (
	REMINDER_KIND_DUE_SOON = "due_soon"
)

// Per-candidate outcome statuses.
const (
	REMINDER_STATUS_SENT    = "sent"
	REMINDER_STATUS_PLANNED = "planned"
	REMINDER_STATUS_SKIPPED = "skipped"
	REMINDER_STATUS_FAILED  = "failed"
)

// DueItem is one outstanding checklist task inside the lookahead window.
type DueItem struct {
	TaskKey   string `json:"taskKey,omitempty"`
	Title     string `json:"title"`
	Section   string `json:"section,omitempty"`
	DueDate   string `json:"dueDate"`
	Status    string `json:"status,omitempty"`
	SortOrder int    `json:"sortOrder"`
}

// ReminderCandidate is one move with at least one qualifying due item.
// Candidates are derived fresh on every run and never persisted.
type ReminderCandidate struct {
	MoveID    primitive.ObjectID `json:"moveId"`
	UserName  string             `json:"userName"`
	UserEmail string             `json:"userEmail"`
	MoveDate  string             `json:"moveDate,omitempty"`
	DueItems  []DueItem          `json:"dueItems"`
}

// ReminderLog is the idempotency ledger row. At most one row may exist per
// (moveId, kind, scheduledFor); the storage layer enforces this with a
// unique index. Rows are append-only.
type ReminderLog struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	MoveID            primitive.ObjectID `bson:"moveId" json:"moveId"`
	Kind              string             `bson:"kind" json:"kind"`
	ScheduledFor      string             `bson:"scheduledFor" json:"scheduledFor"` // ISO date the reminder belongs to
	EmailTo           string             `bson:"emailTo" json:"emailTo"`
	Provider          string             `bson:"provider" json:"provider"`
	ProviderMessageID *string            `bson:"providerMessageId" json:"providerMessageId"`
	Subject           string             `bson:"subject" json:"subject"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProcessedReminder is one entry of the run report.
type ProcessedReminder struct {
	MoveID            string  `json:"moveId"`
	Email             string  `json:"email"`
	ItemCount         int     `json:"itemCount"`
	Status            string  `json:"status"`
	Reason            string  `json:"reason,omitempty"`
	Provider          string  `json:"provider,omitempty"`
	Subject           string  `json:"subject,omitempty"`
	ProviderMessageID *string `json:"providerMessageId,omitempty"`
	UsedAida          bool    `json:"usedAida"`
}

type RunCounts struct {
	TotalCandidates int `json:"totalCandidates"`
	Sent            int `json:"sent"`
	Planned         int `json:"planned"`
	Skipped         int `json:"skipped"`
	Failed          int `json:"failed"`
	UsedAida        int `json:"usedAida"`
}

type RunWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RunSummary is the aggregate result of one dispatcher invocation.
type RunSummary struct {
	RunID         string              `json:"runId"`
	DryRun        bool                `json:"dryRun"`
	LookaheadDays int                 `json:"lookaheadDays"`
	Window        RunWindow           `json:"window"`
	Provider      string              `json:"provider,omitempty"`
	Counts        RunCounts           `json:"counts"`
	Processed     []ProcessedReminder `json:"processed"`
	DurationMs    int64               `json:"durationMs"`
}
