/* sessions.go
 * Contains the logic for building CPR sessions and game results from client input
 * Authors: Zachary Bower
 */

package logic

import (
	"time"

	"cpr-backend/api/shared"
	"cpr-backend/api/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewCprSession builds the session to be stored from the client input.
// Preconditions: Receives the CprSessionInput from the client and the creation time
// Postconditions: Returns a CprSession with a fresh id. A missing cprRate is stored as 0 and reps are copied as is
func NewCprSession(input shared.CprSessionInput, now time.Time) store.CprSession {
	var rate float64
	if input.CprRate != nil {
		rate = *input.CprRate
	}

	reps := make([]bson.M, 0, len(input.Reps))
	for _, rep := range input.Reps {
		reps = append(reps, bson.M(rep))
	}

	var breaths *int
	if input.Breaths != nil {
		b := *input.Breaths
		breaths = &b
	}

	return store.CprSession{
		Id:              primitive.NewObjectID(),
		CprRate:         rate,
		CprFraction:     input.CprFraction,
		Compression:     input.Compression,
		TotalTime:       input.TotalTime,
		Breaths:         breaths,
		Feedback:        input.Feedback,
		CompressionOnly: input.CompressionOnly,
		Reps:            reps,
		CreatedAt:       now,
	}
}

// NewGameResult builds the game result to be stored
// Preconditions: Receives game name, score and the creation time
// Postconditions: Returns a GameResult with a fresh id
func NewGameResult(name string, score float64, now time.Time) store.GameResult {
	return store.GameResult{
		Id:        primitive.NewObjectID(),
		GameName:  name,
		GameScore: score,
		CreatedAt: now,
	}
}

// LastN returns the final n sessions in their original order, or all of them if there are fewer than n
// Preconditions: Receives slice of sessions and n
// Postconditions: Returns a new slice, empty (not nil) when n <= 0 or there are no sessions
func LastN(sessions []store.CprSession, n int) []store.CprSession {
	if n <= 0 || len(sessions) == 0 {
		return []store.CprSession{}
	}
	start := len(sessions) - n
	if start < 0 {
		start = 0
	}
	out := make([]store.CprSession, len(sessions)-start)
	copy(out, sessions[start:])
	return out
}
