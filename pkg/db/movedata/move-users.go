package movedata

import (
	"errors"
	"log/slog"

	movingTypes "github.com/flytt-io/flytt-backend/pkg/moving/types"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetMovesWithUsers joins every move to its user. Moves pointing at a
// missing user record are dropped, matching inner-join semantics.
func (dbService *MoveDataDBService) GetMovesWithUsers() ([]movingTypes.MoveWithUser, error) {
	moves, err := dbService.GetMoves()
	if err != nil {
		return nil, err
	}

	rows := []movingTypes.MoveWithUser{}
	for _, move := range moves {
		user, err := dbService.GetUserByID(move.UserID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				slog.Warn("move references missing user", slog.String("moveId", move.ID.Hex()), slog.String("userId", move.UserID.Hex()))
				continue
			}
			return nil, err
		}

		rows = append(rows, movingTypes.MoveWithUser{
			MoveID:    move.ID,
			MoveDate:  move.MoveDate,
			UserName:  user.Name,
			UserEmail: user.Email,
		})
	}
	return rows, nil
}
