package movedata

import (
	movingTypes "github.com/flytt-io/flytt-backend/pkg/moving/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (dbService *MoveDataDBService) GetMoves() ([]movingTypes.Move, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionMoves().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	moves := []movingTypes.Move{}
	if err := cursor.All(ctx, &moves); err != nil {
		return nil, err
	}
	return moves, nil
}

func (dbService *MoveDataDBService) GetUserByID(userID primitive.ObjectID) (movingTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var user movingTypes.User
	filter := bson.M{"_id": userID}
	err := dbService.collectionUsers().FindOne(ctx, filter).Decode(&user)
	return user, err
}

func (dbService *MoveDataDBService) GetChecklistItemsByMove(moveID primitive.ObjectID) ([]movingTypes.ChecklistItem, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"moveId": moveID}
	cursor, err := dbService.collectionChecklistItems().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []movingTypes.ChecklistItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
