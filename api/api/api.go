/* api.go
 * This file contains the public methods for interacting with this package. Consumers (web and bot) should only call
 * the methods in this file, not the sub packages for store and logic. Every method takes the request context first
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cpr-backend/api/logic"
	"cpr-backend/api/shared"
	"cpr-backend/api/store"
	"cpr-backend/logger"
)

// API holds the persistence handle and the notifier. It replaces any package level connection state, create one with
// NewAPI at startup and Close it on shutdown
type API struct {
	Store    store.Interface
	Notifier Notifier
	Log      *logger.Logger
	Now      func() time.Time
}

// NewAPI creates a new API instance backed by MongoDB
// Preconditions: Receives context, database name, mongo connection string, the notifier and a logger
// Postconditions: Returns pointer to the API, or an error if the store could not be created. The database is not
// contacted here, call Ping to check connectivity
func NewAPI(ctx context.Context, dbName string, mongoURI string, notifier Notifier, log *logger.Logger) (*API, error) {
	if dbName == "" || mongoURI == "" {
		return nil, fmt.Errorf("dbName and mongoURI are required")
	}

	s, err := store.NewStore(ctx, dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return New(s, notifier, log), nil
}

// New creates an API over an existing store. Used by NewAPI and by tests with a MockStore
func New(s store.Interface, notifier Notifier, log *logger.Logger) *API {
	if log == nil {
		log = logger.NewNop()
	}
	return &API{
		Store:    s,
		Notifier: notifier,
		Log:      log,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

func requireID(name string, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required: %w", name, shared.ErrInvalidArgument)
	}
	return nil
}

// region session and game ingestion

// AppendCprSession saves a CPR session for a user, creating their record if this is their first session
// Preconditions: Receives context, userID and the session fields sent by the client
// Postconditions: The session is appended to the user's history, or a new record holding only this session is
// created. Returns a StorageError if either write fails
func (a *API) AppendCprSession(ctx context.Context, userID string, input shared.CprSessionInput) error {
	if err := requireID("userId", userID); err != nil {
		return err
	}
	session := logic.NewCprSession(input, a.Now())

	err := a.Store.PushCprSession(ctx, userID, session)
	if err == nil {
		a.Log.Debug("appended cpr session", "userId", userID, "sessionId", session.Id.Hex())
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	// First session for this user
	user := store.NewUserRecord(userID)
	user.CprSessions = append(user.CprSessions, session)
	if err := a.Store.InsertUser(ctx, user); err != nil {
		return err
	}
	a.Log.Info("created user from first cpr session", "userId", userID)
	return nil
}

// AppendGameResult saves a game score for an existing user. Unlike AppendCprSession it never creates the user
// Preconditions: Receives context, userID, game name and score
// Postconditions: Appends the result, returns shared.ErrNotFound if the user has no record, or a StorageError
func (a *API) AppendGameResult(ctx context.Context, userID string, gameName string, gameScore float64) error {
	if err := requireID("userId", userID); err != nil {
		return err
	}
	result := logic.NewGameResult(gameName, gameScore, a.Now())
	if err := a.Store.PushGameResult(ctx, userID, result); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("user %s: %w", userID, err)
		}
		return err
	}
	return nil
}

// endregion

// region score queries

func (a *API) gameResults(ctx context.Context, userID string) ([]store.GameResult, error) {
	user, err := a.Store.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, err)
		}
		return nil, err
	}
	if len(user.GameResults) == 0 {
		return nil, fmt.Errorf("no game results for user %s: %w", userID, shared.ErrNotFound)
	}
	return user.GameResults, nil
}

// TopScore returns the highest score a user has recorded
// Preconditions: Receives context and userID
// Postconditions: Returns the max gameScore, shared.ErrNotFound if the user is absent or has no results, or a StorageError
func (a *API) TopScore(ctx context.Context, userID string) (float64, error) {
	results, err := a.gameResults(ctx, userID)
	if err != nil {
		return 0, err
	}
	best, _ := logic.MaxScore(results)
	return best, nil
}

// RecentScore returns the game result a user recorded last
// Preconditions: Receives context and userID
// Postconditions: Returns the last appended GameResult, shared.ErrNotFound if the user is absent or has no results,
// or a StorageError
func (a *API) RecentScore(ctx context.Context, userID string) (store.GameResult, error) {
	results, err := a.gameResults(ctx, userID)
	if err != nil {
		return store.GameResult{}, err
	}
	latest, _ := logic.Latest(results)
	return latest, nil
}

// TopScoresAcrossUsers builds the leaderboard. The store returns the global top limit entries and this keeps each
// user's first (highest) one, so fewer than limit entries can come back
// Preconditions: Receives context and limit. limit <= 0 uses DefaultTopScoresLimit
// Postconditions: Returns entries sorted by score descending with no repeated userId, or a StorageError
func (a *API) TopScoresAcrossUsers(ctx context.Context, limit int) ([]store.TopScore, error) {
	if limit <= 0 {
		limit = DefaultTopScoresLimit
	}
	entries, err := a.Store.TopGameEntries(ctx, limit)
	if err != nil {
		return nil, err
	}
	return logic.FirstPerUser(entries), nil
}

// endregion

// region user and session retrieval

// GetUser returns a user's full record
func (a *API) GetUser(ctx context.Context, userID string) (store.UserRecord, error) {
	if err := requireID("userId", userID); err != nil {
		return store.UserRecord{}, err
	}
	return a.Store.FindUser(ctx, userID)
}

// ListAllUsers returns every user record. There is no pagination
func (a *API) ListAllUsers(ctx context.Context) ([]store.UserRecord, error) {
	return a.Store.ListUsers(ctx)
}

// LastNCprSessions returns a user's most recent sessions
// Preconditions: Receives context, userID and n. n <= 0 uses DefaultSessionCount
// Postconditions: Returns the final n sessions in the order they were saved (fewer if the history is shorter),
// shared.ErrNotFound if the user is absent, or a StorageError
func (a *API) LastNCprSessions(ctx context.Context, userID string, n int) ([]store.CprSession, error) {
	if err := requireID("userId", userID); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultSessionCount
	}
	return a.Store.FindCprTail(ctx, userID, n)
}

// endregion

// region creation and grouping

// CreateUser creates an empty record for userID
// Preconditions: Receives context and userID
// Postconditions: Inserts the record, returns shared.ErrAlreadyExists if one exists, or a StorageError.
// The existence check and the insert are not atomic
func (a *API) CreateUser(ctx context.Context, userID string) error {
	if err := requireID("userId", userID); err != nil {
		return err
	}
	exists, err := a.Store.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("user %s: %w", userID, shared.ErrAlreadyExists)
	}
	if err := a.Store.InsertUser(ctx, store.NewUserRecord(userID)); err != nil {
		return err
	}
	a.Log.Info("created user", "userId", userID)
	return nil
}

// CreateTrainer inserts a trainer with no users. trainerId is not checked for uniqueness
func (a *API) CreateTrainer(ctx context.Context, trainerID string, name string) error {
	if err := requireID("trainerId", trainerID); err != nil {
		return err
	}
	if err := a.Store.InsertTrainer(ctx, store.NewTrainer(trainerID, name)); err != nil {
		return err
	}
	a.Log.Info("created trainer", "trainerId", trainerID)
	return nil
}

// AttachUserToTrainer adds userID to a trainer and then asks the provisioning service to create the user there.
// The trainer update is committed before the notifier is called and is not rolled back if the notifier fails
// Preconditions: Receives context, trainerID and userID
// Postconditions: Returns nil once both steps succeed. Returns shared.ErrAlreadyExists if the user already has a
// record, shared.ErrNotFound if the trainer does not exist (in both cases the trainer is unchanged), a StorageError,
// or the notifier's RemoteError
func (a *API) AttachUserToTrainer(ctx context.Context, trainerID string, userID string) error {
	if err := requireID("trainerId", trainerID); err != nil {
		return err
	}
	if err := requireID("userId", userID); err != nil {
		return err
	}

	exists, err := a.Store.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("user %s: %w", userID, shared.ErrAlreadyExists)
	}

	if err := a.Store.AddUserToTrainer(ctx, trainerID, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("trainer %s: %w", trainerID, err)
		}
		return err
	}

	if a.Notifier == nil {
		err = &shared.RemoteError{Op: "notify user created", Err: errors.New("no notifier configured")}
	} else {
		err = a.Notifier.NotifyUserCreated(ctx, userID)
	}
	if err != nil {
		a.Log.Warn("user added to trainer but provisioning failed, trainer keeps the user",
			"trainerId", trainerID, "userId", userID, "error", err)
		return err
	}

	a.Log.Info("attached user to trainer", "trainerId", trainerID, "userId", userID)
	return nil
}

// ListTrainerUsers returns the ids of the users attached to a trainer
// Preconditions: Receives context and trainerID
// Postconditions: Returns the raw user ids (empty slice if none), shared.ErrNotFound if there is no trainer,
// or a StorageError
func (a *API) ListTrainerUsers(ctx context.Context, trainerID string) ([]string, error) {
	if err := requireID("trainerId", trainerID); err != nil {
		return nil, err
	}
	trainer, err := a.Store.FindTrainer(ctx, trainerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("trainer %s: %w", trainerID, err)
		}
		return nil, err
	}
	if trainer.UserIDs == nil {
		return []string{}, nil
	}
	return trainer.UserIDs, nil
}

// endregion

// SuggestUserIDs fuzzy matches query against every known user id. Used by the bot when a lookup misses
// Preconditions: Receives context, the query and the maximum number of ids to return. max <= 0 uses DefaultSuggestions
// Postconditions: Returns the closest ids best first, or a StorageError
func (a *API) SuggestUserIDs(ctx context.Context, query string, max int) ([]string, error) {
	if max <= 0 {
		max = DefaultSuggestions
	}
	users, err := a.Store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.UserID)
	}
	return logic.SuggestIDs(query, ids, max), nil
}

// Ping checks the database is reachable
func (a *API) Ping(ctx context.Context) error {
	return a.Store.Ping(ctx)
}

// Close disconnects from the database
func (a *API) Close(ctx context.Context) error {
	if a == nil || a.Store == nil {
		return nil
	}
	return a.Store.Close(ctx)
}
