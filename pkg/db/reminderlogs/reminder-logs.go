package reminderlogs

import (
	"errors"
	"time"

	remindersTypes "github.com/flytt-io/flytt-backend/pkg/reminders/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrAlreadyClaimed is returned when a log row for the same
// (moveId, kind, scheduledFor) already exists, i.e. another invocation
// claimed the send first.
var ErrAlreadyClaimed = errors.New("reminder already claimed for this date")

// ClaimReminder inserts the ledger row for one send attempt. The insert is
// the atomic insert-if-absent: a duplicate key error against the unique
// index is mapped to ErrAlreadyClaimed.
func (dbService *ReminderLogDBService) ClaimReminder(log remindersTypes.ReminderLog) (remindersTypes.ReminderLog, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	log.ID = primitive.NilObjectID
	log.CreatedAt = time.Now().UTC()

	res, err := dbService.collectionReminderLogs().InsertOne(ctx, log)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return log, ErrAlreadyClaimed
		}
		return log, err
	}
	log.ID = res.InsertedID.(primitive.ObjectID)
	return log, nil
}

// HasReminderLog reports whether a row exists for the given key. Used as the
// cheap pre-check before content synthesis; the insert remains the source of
// truth under concurrency.
func (dbService *ReminderLogDBService) HasReminderLog(moveID primitive.ObjectID, kind string, scheduledFor string) (bool, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"moveId":       moveID,
		"kind":         kind,
		"scheduledFor": scheduledFor,
	}

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := dbService.collectionReminderLogs().FindOne(ctx, filter, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (dbService *ReminderLogDBService) GetReminderLogsByDate(scheduledFor string) ([]remindersTypes.ReminderLog, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"scheduledFor": scheduledFor}
	cursor, err := dbService.collectionReminderLogs().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []remindersTypes.ReminderLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
