package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CHECKLIST_STATUS_TODO        = "todo"
	CHECKLIST_STATUS_IN_PROGRESS = "in_progress"
	CHECKLIST_STATUS_DONE        = "done"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Move struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	FromStreet    string             `bson:"fromStreet,omitempty" json:"fromStreet,omitempty"`
	FromPostal    string             `bson:"fromPostal,omitempty" json:"fromPostal,omitempty"`
	FromCity      string             `bson:"fromCity,omitempty" json:"fromCity,omitempty"`
	ToStreet      string             `bson:"toStreet,omitempty" json:"toStreet,omitempty"`
	ToPostal      string             `bson:"toPostal,omitempty" json:"toPostal,omitempty"`
	ToCity        string             `bson:"toCity,omitempty" json:"toCity,omitempty"`
	MoveDate      string             `bson:"moveDate,omitempty" json:"moveDate,omitempty"` // ISO date string, empty if not set
	HouseholdType string             `bson:"householdType,omitempty" json:"householdType,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

type ChecklistItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	MoveID      primitive.ObjectID `bson:"moveId" json:"moveId"`
	TaskKey     string             `bson:"taskKey,omitempty" json:"taskKey,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Section     string             `bson:"section,omitempty" json:"section,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	DueDate     string             `bson:"dueDate,omitempty" json:"dueDate,omitempty"` // ISO date string, empty if not set
	Completed   bool               `bson:"completed" json:"completed"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	SortOrder   int                `bson:"sortOrder" json:"sortOrder"`
}

// MoveWithUser is the joined row the reminder selector works from.
type MoveWithUser struct {
	MoveID    primitive.ObjectID `json:"moveId"`
	MoveDate  string             `json:"moveDate,omitempty"`
	UserName  string             `json:"userName"`
	UserEmail string             `json:"userEmail,omitempty"`
}

// IsDone reconciles the legacy completed flag with the newer status field:
// an item counts as done if either one says so.
func (item ChecklistItem) IsDone() bool {
	return item.Completed || item.Status == CHECKLIST_STATUS_DONE
}
