package movedata

import (
	"context"
	"time"

	"github.com/flytt-io/flytt-backend/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_USERS           = "users"
	COLLECTION_NAME_MOVES           = "moves"
	COLLECTION_NAME_CHECKLIST_ITEMS = "checklist-items"
)

// MoveDataDBService provides read-only access to the application's move,
// user and checklist records. These collections are owned by the web app;
// the reminder subsystem never writes them.
type MoveDataDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewMoveDataDBService(configs db.DBConfig) (*MoveDataDBService, error) {
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

	return &MoveDataDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}, nil
}

func (dbService *MoveDataDBService) getDBName() string {
	return dbService.DBNamePrefix + "flytt_appDB"
}

func (dbService *MoveDataDBService) collectionUsers() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_USERS)
}

func (dbService *MoveDataDBService) collectionMoves() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_MOVES)
}

func (dbService *MoveDataDBService) collectionChecklistItems() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_CHECKLIST_ITEMS)
}

func (dbService *MoveDataDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}
