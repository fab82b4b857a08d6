/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import "context"

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	// Users
	FindUser(ctx context.Context, userID string) (UserRecord, error)
	UserExists(ctx context.Context, userID string) (bool, error)
	InsertUser(ctx context.Context, user UserRecord) error
	PushCprSession(ctx context.Context, userID string, session CprSession) error
	PushGameResult(ctx context.Context, userID string, result GameResult) error
	ListUsers(ctx context.Context) ([]UserRecord, error)
	FindCprTail(ctx context.Context, userID string, n int) ([]CprSession, error)

	// Scores
	TopGameEntries(ctx context.Context, limit int) ([]TopScore, error)

	// Trainers
	InsertTrainer(ctx context.Context, trainer Trainer) error
	AddUserToTrainer(ctx context.Context, trainerID string, userID string) error
	FindTrainer(ctx context.Context, trainerID string) (Trainer, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)
