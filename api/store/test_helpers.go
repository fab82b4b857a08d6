/* test_helpers.go
 * Contains test helper functions and sample data for store package tests and for packages that build on the store
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function that drops the database and disconnects.
func CreateTestStore(ctx context.Context, mongoURI string) (*Store, func(), error) {
	dbName := fmt.Sprintf("test_cpr_%d", time.Now().UnixNano())
	store, err := NewStore(ctx, dbName, mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			store.Database.Drop(context.Background())
			store.Client.Disconnect(context.Background())
		}
	}

	return store, cleanup, nil
}

// CreateSampleSession creates a CprSession with fixed metrics for testing.
func CreateSampleSession(rate float64, createdAt time.Time) CprSession {
	breaths := 2
	return CprSession{
		Id:          primitive.NewObjectID(),
		CprRate:     rate,
		CprFraction: 0.8,
		Compression: 30,
		TotalTime:   120,
		Breaths:     &breaths,
		Feedback:    true,
		Reps:        []primitive.M{},
		CreatedAt:   createdAt,
	}
}

// CreateSampleGameResult creates a GameResult for testing.
func CreateSampleGameResult(name string, score float64, createdAt time.Time) GameResult {
	return GameResult{
		Id:        primitive.NewObjectID(),
		GameName:  name,
		GameScore: score,
		CreatedAt: createdAt,
	}
}
