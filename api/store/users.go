/* users.go
 * Contains the methods for interacting with the users collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"cpr-backend/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindUser does DB lookup and gets the record for a user
// Preconditions: Receives context and userID
// Postconditions: Returns the user's record, shared.ErrNotFound if there is none, or a StorageError if the lookup failed
func (s *Store) FindUser(ctx context.Context, userID string) (UserRecord, error) {
	var user UserRecord
	err := s.Collections.Users.FindOne(ctx, bson.M{"userId": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UserRecord{}, shared.ErrNotFound
		}
		return UserRecord{}, shared.NewStorageError("find user", err)
	}
	return user, nil
}

// UserExists checks whether a record exists for userID without loading its history
// Preconditions: Receives context and userID
// Postconditions: Returns true if a record exists, or a StorageError if the lookup failed
func (s *Store) UserExists(ctx context.Context, userID string) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := s.Collections.Users.FindOne(ctx, bson.M{"userId": userID}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, shared.NewStorageError("check user exists", err)
	}
	return true, nil
}

// InsertUser stores a new user record. There is no unique index on userId, callers check for an existing record first
// Preconditions: Receives context and the UserRecord to insert
// Postconditions: Inserts the document, or returns a StorageError if the insert failed
func (s *Store) InsertUser(ctx context.Context, user UserRecord) error {
	if user.CprSessions == nil {
		user.CprSessions = []CprSession{}
	}
	if user.GameResults == nil {
		user.GameResults = []GameResult{}
	}
	if _, err := s.Collections.Users.InsertOne(ctx, user); err != nil {
		return shared.NewStorageError("insert user", err)
	}
	return nil
}

// PushCprSession appends a session to the end of a user's cprDetails array
// Preconditions: Receives context, userID and the session to append
// Postconditions: Appends the session, returns shared.ErrNotFound if no record matched, or a StorageError
func (s *Store) PushCprSession(ctx context.Context, userID string, session CprSession) error {
	return s.pushToUser(ctx, userID, "cprDetails", session)
}

// PushGameResult appends a result to the end of a user's gameDetails array
// Preconditions: Receives context, userID and the result to append
// Postconditions: Appends the result, returns shared.ErrNotFound if no record matched, or a StorageError
func (s *Store) PushGameResult(ctx context.Context, userID string, result GameResult) error {
	return s.pushToUser(ctx, userID, "gameDetails", result)
}

func (s *Store) pushToUser(ctx context.Context, userID string, field string, value interface{}) error {
	filter := bson.M{"userId": userID}
	update := bson.M{"$push": bson.M{field: value}}

	res, err := s.Collections.Users.UpdateOne(ctx, filter, update)
	if err != nil {
		return shared.NewStorageError(fmt.Sprintf("push %s", field), err)
	}
	if res.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListUsers does a full scan of the users collection
// Preconditions: Receives context
// Postconditions: Returns every user record (empty slice if there are none), or a StorageError
func (s *Store) ListUsers(ctx context.Context) ([]UserRecord, error) {
	cursor, err := s.Collections.Users.Find(ctx, bson.D{})
	if err != nil {
		return nil, shared.NewStorageError("list users", err)
	}

	results := []UserRecord{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, shared.NewStorageError("decode users", err)
	}
	return results, nil
}

// FindCprTail gets the last n CPR sessions for a user. The slicing is done by the server with a $slice projection so
// the full history is never transferred
// Preconditions: Receives context, userID and n > 0
// Postconditions: Returns up to n sessions in the order they were stored, shared.ErrNotFound if there is no record,
// or a StorageError
func (s *Store) FindCprTail(ctx context.Context, userID string, n int) ([]CprSession, error) {
	if n <= 0 {
		return nil, fmt.Errorf("session count must be positive, got %d", n)
	}
	opts := options.FindOne().SetProjection(bson.M{
		"userId":     1,
		"cprDetails": bson.M{"$slice": -n},
	})

	var user UserRecord
	err := s.Collections.Users.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError("find cpr sessions", err)
	}

	if user.CprSessions == nil {
		return []CprSession{}, nil
	}
	return user.CprSessions, nil
}
