/* trainers.go
 * Contains the methods for interacting with the trainers collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"

	"cpr-backend/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertTrainer stores a new trainer. trainerId is not checked for uniqueness
// Preconditions: Receives context and the Trainer to insert
// Postconditions: Inserts the document, or returns a StorageError
func (s *Store) InsertTrainer(ctx context.Context, trainer Trainer) error {
	if trainer.UserIDs == nil {
		trainer.UserIDs = []string{}
	}
	if _, err := s.Collections.Trainers.InsertOne(ctx, trainer); err != nil {
		return shared.NewStorageError("insert trainer", err)
	}
	return nil
}

// AddUserToTrainer adds userID to the trainer's userIds. Uses $addToSet so adding the same id twice is a no-op
// Preconditions: Receives context, trainerID and userID
// Postconditions: Updates the trainer, returns shared.ErrNotFound if no trainer matched, or a StorageError
func (s *Store) AddUserToTrainer(ctx context.Context, trainerID string, userID string) error {
	filter := bson.M{"trainerId": trainerID}
	update := bson.M{"$addToSet": bson.M{"userIds": userID}}

	res, err := s.Collections.Trainers.UpdateOne(ctx, filter, update)
	if err != nil {
		return shared.NewStorageError("add user to trainer", err)
	}
	if res.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindTrainer does DB lookup and gets a trainer by trainerId. If several trainers share the id the first is returned
// Preconditions: Receives context and trainerID
// Postconditions: Returns the Trainer, shared.ErrNotFound if there is none, or a StorageError
func (s *Store) FindTrainer(ctx context.Context, trainerID string) (Trainer, error) {
	var trainer Trainer
	err := s.Collections.Trainers.FindOne(ctx, bson.M{"trainerId": trainerID}).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Trainer{}, shared.ErrNotFound
		}
		return Trainer{}, shared.NewStorageError("find trainer", err)
	}
	if trainer.UserIDs == nil {
		trainer.UserIDs = []string{}
	}
	return trainer, nil
}
