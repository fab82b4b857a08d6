/* scores.go
 * Contains the aggregation used for the cross user top scores list
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"cpr-backend/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// topScoresPipeline flattens every user's game results, orders them by score and keeps the first limit entries.
// Equal scores are ordered oldest first so the result is stable between calls
func topScoresPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$gameDetails"}},
		{{Key: "$sort", Value: bson.D{
			{Key: "gameDetails.gameScore", Value: -1},
			{Key: "gameDetails.createdAt", Value: 1},
		}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "userId", Value: 1},
			{Key: "topScore", Value: "$gameDetails"},
		}}},
	}
}

// TopGameEntries returns the highest game results across all users. The same user can appear more than once; callers
// that want one entry per user should pass the result through logic.FirstPerUser
// Preconditions: Receives context and limit > 0
// Postconditions: Returns at most limit entries sorted by score descending, or a StorageError
func (s *Store) TopGameEntries(ctx context.Context, limit int) ([]TopScore, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	cursor, err := s.Collections.Users.Aggregate(ctx, topScoresPipeline(limit))
	if err != nil {
		return nil, shared.NewStorageError("aggregate top scores", err)
	}

	entries := []TopScore{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, shared.NewStorageError("decode top scores", err)
	}
	return entries, nil
}
