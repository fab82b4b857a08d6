/* test_mocks.go
 * Contains mock structures for testing the API package and the packages that consume it (web, bot)
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"fmt"

	"cpr-backend/api/logic"
	"cpr-backend/api/shared"
	"cpr-backend/api/store"
)

// MockStore implements store.Interface in memory for testing
type MockStore struct {
	// Storage for mock data. userOrder keeps ListUsers in insertion order like a collection scan
	Users     map[string]*store.UserRecord
	userOrder []string
	Trainers  []*store.Trainer

	// Error injection for testing error paths
	FindUserError         error
	UserExistsError       error
	InsertUserError       error
	PushCprSessionError   error
	PushGameResultError   error
	ListUsersError        error
	FindCprTailError      error
	TopGameEntriesError   error
	InsertTrainerError    error
	AddUserToTrainerError error
	FindTrainerError      error
	PingError             error

	// Call tracking
	InsertUserCalls       int
	AddUserToTrainerCalls int
	Closed                bool
}

// NewMockStore creates a new empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{
		Users:    make(map[string]*store.UserRecord),
		Trainers: []*store.Trainer{},
	}
}

// FindUser mock implementation
func (m *MockStore) FindUser(ctx context.Context, userID string) (store.UserRecord, error) {
	if m.FindUserError != nil {
		return store.UserRecord{}, m.FindUserError
	}
	user, ok := m.Users[userID]
	if !ok {
		return store.UserRecord{}, shared.ErrNotFound
	}
	return copyUser(*user), nil
}

// UserExists mock implementation
func (m *MockStore) UserExists(ctx context.Context, userID string) (bool, error) {
	if m.UserExistsError != nil {
		return false, m.UserExistsError
	}
	_, ok := m.Users[userID]
	return ok, nil
}

// InsertUser mock implementation. Like the real store it does not enforce uniqueness, a second insert replaces
// the first in the map but both ids stay in userOrder
func (m *MockStore) InsertUser(ctx context.Context, user store.UserRecord) error {
	m.InsertUserCalls++
	if m.InsertUserError != nil {
		return m.InsertUserError
	}
	user = copyUser(user)
	if user.CprSessions == nil {
		user.CprSessions = []store.CprSession{}
	}
	if user.GameResults == nil {
		user.GameResults = []store.GameResult{}
	}
	if _, ok := m.Users[user.UserID]; !ok {
		m.userOrder = append(m.userOrder, user.UserID)
	}
	m.Users[user.UserID] = &user
	return nil
}

// PushCprSession mock implementation
func (m *MockStore) PushCprSession(ctx context.Context, userID string, session store.CprSession) error {
	if m.PushCprSessionError != nil {
		return m.PushCprSessionError
	}
	user, ok := m.Users[userID]
	if !ok {
		return shared.ErrNotFound
	}
	user.CprSessions = append(user.CprSessions, session)
	return nil
}

// PushGameResult mock implementation
func (m *MockStore) PushGameResult(ctx context.Context, userID string, result store.GameResult) error {
	if m.PushGameResultError != nil {
		return m.PushGameResultError
	}
	user, ok := m.Users[userID]
	if !ok {
		return shared.ErrNotFound
	}
	user.GameResults = append(user.GameResults, result)
	return nil
}

// ListUsers mock implementation
func (m *MockStore) ListUsers(ctx context.Context) ([]store.UserRecord, error) {
	if m.ListUsersError != nil {
		return nil, m.ListUsersError
	}
	users := make([]store.UserRecord, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		users = append(users, copyUser(*m.Users[id]))
	}
	return users, nil
}

// FindCprTail mock implementation
func (m *MockStore) FindCprTail(ctx context.Context, userID string, n int) ([]store.CprSession, error) {
	if m.FindCprTailError != nil {
		return nil, m.FindCprTailError
	}
	if n <= 0 {
		return nil, fmt.Errorf("session count must be positive, got %d", n)
	}
	user, ok := m.Users[userID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return logic.LastN(user.CprSessions, n), nil
}

// TopGameEntries mock implementation. Ranks in memory the same way the aggregation pipeline does
func (m *MockStore) TopGameEntries(ctx context.Context, limit int) ([]store.TopScore, error) {
	if m.TopGameEntriesError != nil {
		return nil, m.TopGameEntriesError
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	users, _ := m.ListUsers(ctx)
	return logic.RankGameEntries(users, limit), nil
}

// InsertTrainer mock implementation
func (m *MockStore) InsertTrainer(ctx context.Context, trainer store.Trainer) error {
	if m.InsertTrainerError != nil {
		return m.InsertTrainerError
	}
	if trainer.UserIDs == nil {
		trainer.UserIDs = []string{}
	}
	m.Trainers = append(m.Trainers, &trainer)
	return nil
}

// AddUserToTrainer mock implementation. Updates the first trainer with a matching id, like UpdateOne
func (m *MockStore) AddUserToTrainer(ctx context.Context, trainerID string, userID string) error {
	m.AddUserToTrainerCalls++
	if m.AddUserToTrainerError != nil {
		return m.AddUserToTrainerError
	}
	trainer := m.findTrainer(trainerID)
	if trainer == nil {
		return shared.ErrNotFound
	}
	for _, id := range trainer.UserIDs {
		if id == userID {
			return nil
		}
	}
	trainer.UserIDs = append(trainer.UserIDs, userID)
	return nil
}

// FindTrainer mock implementation
func (m *MockStore) FindTrainer(ctx context.Context, trainerID string) (store.Trainer, error) {
	if m.FindTrainerError != nil {
		return store.Trainer{}, m.FindTrainerError
	}
	trainer := m.findTrainer(trainerID)
	if trainer == nil {
		return store.Trainer{}, shared.ErrNotFound
	}
	out := *trainer
	out.UserIDs = append([]string{}, trainer.UserIDs...)
	return out, nil
}

// Ping mock implementation
func (m *MockStore) Ping(ctx context.Context) error {
	return m.PingError
}

// Close mock implementation
func (m *MockStore) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

// Helper methods for setting up test scenarios

// AddUser seeds a user record directly
func (m *MockStore) AddUser(user store.UserRecord) {
	_ = m.InsertUser(context.Background(), user)
	m.InsertUserCalls--
}

// AddTrainer seeds a trainer directly
func (m *MockStore) AddTrainer(trainerID string, name string, userIDs ...string) {
	trainer := store.NewTrainer(trainerID, name)
	trainer.UserIDs = append(trainer.UserIDs, userIDs...)
	m.Trainers = append(m.Trainers, &trainer)
}

func (m *MockStore) findTrainer(trainerID string) *store.Trainer {
	for _, trainer := range m.Trainers {
		if trainer.TrainerID == trainerID {
			return trainer
		}
	}
	return nil
}

func copyUser(user store.UserRecord) store.UserRecord {
	if user.CprSessions != nil {
		user.CprSessions = append([]store.CprSession{}, user.CprSessions...)
	}
	if user.GameResults != nil {
		user.GameResults = append([]store.GameResult{}, user.GameResults...)
	}
	return user
}

var _ store.Interface = (*MockStore)(nil)

// MockNotifier implements Notifier for testing
type MockNotifier struct {
	Calls []string
	Err   error
}

// NotifyUserCreated mock implementation. Records the call even when Err is set
func (n *MockNotifier) NotifyUserCreated(ctx context.Context, userID string) error {
	n.Calls = append(n.Calls, userID)
	return n.Err
}
