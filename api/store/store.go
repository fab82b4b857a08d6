/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split into three files:
 * users, scores and trainers. Each of these files contain methods for interacting with that part of the database
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names match the ones mongoose generated for the Data and Trainer models, so existing data keeps working
const (
	UsersCollection    = "datas"
	TrainersCollection = "trainers"
)

type Collections struct {
	Users    *mongo.Collection
	Trainers *mongo.Collection
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections Collections
}

// Function for initialising Store. Opens the client and sets the collection handles
// Preconditions: Receives context, name of the database and the mongo connection string
// Postconditions: Returns pointer to the Store object, or error if the options were invalid. The driver connects
// lazily, so an unreachable server is only reported by Ping
func NewStore(ctx context.Context, dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	return newStoreFromDatabase(client, client.Database(dbName)), nil
}

func newStoreFromDatabase(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Client:   client,
		Database: db,
		Collections: Collections{
			Users:    db.Collection(UsersCollection),
			Trainers: db.Collection(TrainersCollection),
		},
	}
}

// Ping checks that the primary is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

// Close disconnects the client. Safe to call on a Store without a client
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}
