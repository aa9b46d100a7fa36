package reminders

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	movingTypes "github.com/flytt-io/flytt-backend/pkg/moving/types"
	remindersTypes "github.com/flytt-io/flytt-backend/pkg/reminders/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DEFAULT_LOOKAHEAD_DAYS = 3
	MAX_LOOKAHEAD_DAYS     = 30

	isoDateLayout = "2006-01-02"
	isoDateLength = 10
)

// MoveDataProvider is the read-only view on the application's move records.
type MoveDataProvider interface {
	GetMovesWithUsers() ([]movingTypes.MoveWithUser, error)
	GetChecklistItemsByMove(moveID primitive.ObjectID) ([]movingTypes.ChecklistItem, error)
}

func ToISODate(t time.Time) string {
	return t.UTC().Format(isoDateLayout)
}

// ParseLookaheadDays interprets the raw query value: floored to an integer,
// capped at the ceiling, anything invalid or non-positive falls back to the
// default.
func ParseLookaheadDays(value string) int {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed <= 0 {
		return DEFAULT_LOOKAHEAD_DAYS
	}
	days := int(math.Floor(parsed))
	if days > MAX_LOOKAHEAD_DAYS {
		return MAX_LOOKAHEAD_DAYS
	}
	return days
}

// Selector computes the reminder candidates for one run.
type Selector struct {
	moveData MoveDataProvider
}

func NewSelector(moveData MoveDataProvider) *Selector {
	return &Selector{moveData: moveData}
}

// BuildCandidates returns every move that has at least one not-done
// checklist item due within [todayISO, horizonISO], both bounds inclusive.
// ISO date strings compare lexicographically in chronological order, so the
// window check is plain string comparison. Moves whose user has no email and
// moves with zero qualifying items are dropped.
func (s *Selector) BuildCandidates(todayISO string, horizonISO string) ([]remindersTypes.ReminderCandidate, error) {
	moveRows, err := s.moveData.GetMovesWithUsers()
	if err != nil {
		return nil, err
	}

	candidates := []remindersTypes.ReminderCandidate{}
	for _, moveRow := range moveRows {
		if moveRow.UserEmail == "" {
			continue
		}

		items, err := s.moveData.GetChecklistItemsByMove(moveRow.MoveID)
		if err != nil {
			return nil, err
		}

		dueItems := []remindersTypes.DueItem{}
		for _, item := range items {
			if item.IsDone() {
				continue
			}
			if len(item.DueDate) != isoDateLength {
				continue
			}
			if item.DueDate < todayISO || item.DueDate > horizonISO {
				continue
			}
			dueItems = append(dueItems, remindersTypes.DueItem{
				TaskKey:   item.TaskKey,
				Title:     item.Title,
				Section:   item.Section,
				DueDate:   item.DueDate,
				Status:    item.Status,
				SortOrder: item.SortOrder,
			})
		}

		if len(dueItems) == 0 {
			continue
		}

		SortDueItems(dueItems)

		candidates = append(candidates, remindersTypes.ReminderCandidate{
			MoveID:    moveRow.MoveID,
			UserName:  moveRow.UserName,
			UserEmail: moveRow.UserEmail,
			MoveDate:  moveRow.MoveDate,
			DueItems:  dueItems,
		})
	}

	return candidates, nil
}

// SortDueItems orders items by due date, then sort order, then title. The
// content synthesizer relies on this to present the soonest tasks first.
func SortDueItems(items []remindersTypes.DueItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DueDate != items[j].DueDate {
			return items[i].DueDate < items[j].DueDate
		}
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return items[i].Title < items[j].Title
	})
}
