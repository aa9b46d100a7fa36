package reminderlogs

import (
	"context"
	"log/slog"
	"time"

	"github.com/flytt-io/flytt-backend/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	COLLECTION_NAME_REMINDER_LOGS = "reminder-logs"
)

type ReminderLogDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewReminderLogDBService(configs db.DBConfig) (*ReminderLogDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	reminderLogDBSc := &ReminderLogDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		if err := reminderLogDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for reminder log DB", slog.String("error", err.Error()))
		}
	}

	return reminderLogDBSc, nil
}

func (dbService *ReminderLogDBService) getDBName() string {
	return dbService.DBNamePrefix + "flytt_reminderDB"
}

func (dbService *ReminderLogDBService) collectionReminderLogs() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_REMINDER_LOGS)
}

func (dbService *ReminderLogDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *ReminderLogDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for reminder log DB")
	ctx, cancel := dbService.getContext()
	defer cancel()

	// The at-most-one-reminder-per-day contract lives in this index, not in
	// application logic: concurrent runs race on the insert and the loser
	// gets a duplicate key error.
	_, err := dbService.collectionReminderLogs().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "moveId", Value: 1},
				{Key: "kind", Value: 1},
				{Key: "scheduledFor", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("moveId_kind_scheduledFor_1"),
		},
	)
	return err
}
