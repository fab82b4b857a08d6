/* api_test.go
 * Contains unit tests for api.go - testing all public API methods against the in memory MockStore
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"cpr-backend/api/shared"
	"cpr-backend/api/store"
	"cpr-backend/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestAPI() (*API, *MockStore, *MockNotifier) {
	mockStore := NewMockStore()
	notifier := &MockNotifier{}
	a := New(mockStore, notifier, logger.NewNop())

	// Deterministic clock, each call is one minute after the last
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	a.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return a, mockStore, notifier
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// region NewAPI tests

func TestNewAPI_MissingParameters(t *testing.T) {
	tests := []struct {
		name     string
		dbName   string
		mongoURI string
	}{
		{"missing dbName", "", "mongodb://localhost:27017"},
		{"missing mongoURI", "cpr", ""},
		{"all missing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAPI(context.Background(), tt.dbName, tt.mongoURI, &MockNotifier{}, nil)
			assert.Error(t, err)
		})
	}
}

func TestNewAPI_InvalidURI(t *testing.T) {
	_, err := NewAPI(context.Background(), "cpr", "not-a-mongo-uri", &MockNotifier{}, nil)
	assert.Error(t, err)
}

func TestNew_DefaultsLogger(t *testing.T) {
	a := New(NewMockStore(), nil, nil)
	assert.NotNil(t, a.Log)
	assert.NotNil(t, a.Now)
}

// endregion

// region AppendCprSession tests

func TestAppendCprSession_CreatesUserOnFirstSave(t *testing.T) {
	a, mockStore, _ := newTestAPI()

	input := shared.CprSessionInput{
		CprRate:     nil,
		CprFraction: 0.8,
		Compression: 30,
		TotalTime:   120,
		Breaths:     intPtr(2),
		Feedback:    true,
	}
	err := a.AppendCprSession(context.Background(), "u1", input)
	require.NoError(t, err)

	require.Len(t, mockStore.Users, 1)
	user := mockStore.Users["u1"]
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.UserID)
	require.Len(t, user.CprSessions, 1)
	assert.Equal(t, 0.0, user.CprSessions[0].CprRate)
	assert.Equal(t, 0.8, user.CprSessions[0].CprFraction)
	assert.Equal(t, 30.0, user.CprSessions[0].Compression)
	assert.Equal(t, 120.0, user.CprSessions[0].TotalTime)
	assert.Equal(t, 2, *user.CprSessions[0].Breaths)
	assert.True(t, user.CprSessions[0].Feedback)
	assert.Empty(t, user.GameResults)
	assert.Equal(t, 1, mockStore.InsertUserCalls)
}

func TestAppendCprSession_GrowsExistingHistory(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		require.NoError(t, a.AppendCprSession(ctx, "u1", shared.CprSessionInput{CprRate: floatPtr(float64(i))}))

		user := mockStore.Users["u1"]
		require.Len(t, user.CprSessions, i)
		// earlier entries are untouched
		for j := 0; j < i; j++ {
			assert.Equal(t, float64(j+1), user.CprSessions[j].CprRate)
		}
	}
	assert.Equal(t, 1, mockStore.InsertUserCalls)
	assert.Len(t, mockStore.Users, 1)
}

func TestAppendCprSession_StorageError(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	mockStore.PushCprSessionError = shared.NewStorageError("push cprDetails", errors.New("write failed"))

	err := a.AppendCprSession(context.Background(), "u1", shared.CprSessionInput{})

	var storageErr *shared.StorageError
	assert.True(t, errors.As(err, &storageErr))
	assert.Equal(t, 0, mockStore.InsertUserCalls)
}

func TestAppendCprSession_InsertError(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	mockStore.InsertUserError = shared.NewStorageError("insert user", errors.New("write failed"))

	err := a.AppendCprSession(context.Background(), "u1", shared.CprSessionInput{})

	var storageErr *shared.StorageError
	assert.True(t, errors.As(err, &storageErr))
}

func TestAppendCprSession_EmptyUserID(t *testing.T) {
	a, mockStore, _ := newTestAPI()

	err := a.AppendCprSession(context.Background(), "  ", shared.CprSessionInput{})

	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	assert.Empty(t, mockStore.Users)
}

// endregion

// region AppendGameResult tests

func TestAppendGameResult_DoesNotCreateUser(t *testing.T) {
	a, mockStore, _ := newTestAPI()

	err := a.AppendGameResult(context.Background(), "ghost", "rhythm", 50)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, mockStore.Users)
	assert.Equal(t, 0, mockStore.InsertUserCalls)
}

func TestAppendGameResult_AsymmetryWithCprSession(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()

	// A game result for an unknown user fails, a cpr session for the same user creates them
	assert.ErrorIs(t, a.AppendGameResult(ctx, "u1", "rhythm", 10), shared.ErrNotFound)
	require.NoError(t, a.AppendCprSession(ctx, "u1", shared.CprSessionInput{}))
	require.NoError(t, a.AppendGameResult(ctx, "u1", "rhythm", 10))

	assert.Len(t, mockStore.Users["u1"].GameResults, 1)
}

func TestAppendGameResult_Appends(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	mockStore.AddUser(store.NewUserRecord("u1"))

	require.NoError(t, a.AppendGameResult(context.Background(), "u1", "rhythm", 42.5))

	results := mockStore.Users["u1"].GameResults
	require.Len(t, results, 1)
	assert.Equal(t, "rhythm", results[0].GameName)
	assert.Equal(t, 42.5, results[0].GameScore)
	assert.False(t, results[0].Id.IsZero())
	assert.False(t, results[0].CreatedAt.IsZero())
}

func TestAppendGameResult_StorageError(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	mockStore.AddUser(store.NewUserRecord("u1"))
	mockStore.PushGameResultError = shared.NewStorageError("push gameDetails", errors.New("boom"))

	err := a.AppendGameResult(context.Background(), "u1", "rhythm", 1)

	var storageErr *shared.StorageError
	assert.True(t, errors.As(err, &storageErr))
}

// endregion

// region TopScore / RecentScore tests

func TestTopScoreAndRecentScore_Differ(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()
	mockStore.AddUser(store.NewUserRecord("u1"))

	for _, score := range []float64{30, 95, 60} {
		require.NoError(t, a.AppendGameResult(ctx, "u1", "rhythm", score))
	}

	top, err := a.TopScore(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 95.0, top)

	recent, err := a.RecentScore(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 60.0, recent.GameScore)
}

func TestTopScore_NotFound(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()

	_, err := a.TopScore(ctx, "ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Present user with no results is also not found
	mockStore.AddUser(store.NewUserRecord("u1"))
	_, err = a.TopScore(ctx, "u1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRecentScore_NotFound(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()

	_, err := a.RecentScore(ctx, "ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	mockStore.AddUser(store.NewUserRecord("u1"))
	_, err = a.RecentScore(ctx, "u1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTopScore_StorageError(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	mockStore.FindUserError = shared.NewStorageError("find user", errors.New("timeout"))

	_, err := a.TopScore(context.Background(), "u1")

	var storageErr *shared.StorageError
	assert.True(t, errors.As(err, &storageErr))
	assert.False(t, errors.Is(err, shared.ErrNotFound))
}

// endregion

// region TopScoresAcrossUsers tests

func TestTopScoresAcrossUsers_OneEntryPerUser(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		mockStore.AddUser(store.NewUserRecord(id))
	}

	// a holds most of the global top entries
	scores := map[string][]float64{
		"a": {99, 98, 97, 96, 95, 94, 93, 92},
		"b": {91, 50},
		"c": {10},
	}
	for _, id := range []string{"a", "b", "c"} {
		for _, score := range scores[id] {
			require.NoError(t, a.AppendGameResult(ctx, id, "rhythm", score))
		}
	}

	entries, err := a.TopScoresAcrossUsers(ctx, 10)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, entry := range entries {
		assert.False(t, seen[entry.UserID], "duplicate user %s", entry.UserID)
		seen[entry.UserID] = true
	}

	// top 10 entries are a's eight and b's two, so c is cut off before de-duplication
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].UserID)
	assert.Equal(t, 99.0, entries[0].TopScore.GameScore)
	assert.Equal(t, "b", entries[1].UserID)
	assert.Equal(t, 91.0, entries[1].TopScore.GameScore)
}

func TestTopScoresAcrossUsers_DefaultLimit(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		id := string(rune('a' + i))
		mockStore.AddUser(store.NewUserRecord(id))
		require.NoError(t, a.AppendGameResult(ctx, id, "rhythm", float64(i)))
	}

	entries, err := a.TopScoresAcrossUsers(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultTopScoresLimit)
	assert.Equal(t, 14.0, entries[0].TopScore.GameScore)
}

func TestTopScoresAcrossUsers_Empty(t *testing.T) {
	a, _, _ := newTestAPI()

	entries, err := a.TopScoresAcrossUsers(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestTopScoresAcrossUsers_StorageError(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	mockStore.TopGameEntriesError = shared.NewStorageError("aggregate top scores", errors.New("boom"))

	_, err := a.TopScoresAcrossUsers(context.Background(), 10)
	assert.Error(t, err)
}

// endregion

// region GetUser / ListAllUsers / LastNCprSessions tests

func TestGetUser(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()
	mockStore.AddUser(store.NewUserRecord("u1"))

	user, err := a.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)

	_, err = a.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListAllUsers(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()

	users, err := a.ListAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	mockStore.AddUser(store.NewUserRecord("u1"))
	mockStore.AddUser(store.NewUserRecord("u2"))

	users, err = a.ListAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].UserID)
	assert.Equal(t, "u2", users[1].UserID)
}

func TestLastNCprSessions_LastThreeOfFive(t *testing.T) {
	a, _, _ := newTestAPI()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, a.AppendCprSession(ctx, "u1", shared.CprSessionInput{CprRate: floatPtr(float64(i))}))
	}

	sessions, err := a.LastNCprSessions(ctx, "u1", 3)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, 3.0, sessions[0].CprRate)
	assert.Equal(t, 4.0, sessions[1].CprRate)
	assert.Equal(t, 5.0, sessions[2].CprRate)
}

func TestLastNCprSessions_ShortHistoryAndDefault(t *testing.T) {
	a, _, _ := newTestAPI()
	ctx := context.Background()
	require.NoError(t, a.AppendCprSession(ctx, "u1", shared.CprSessionInput{CprRate: floatPtr(100)}))

	sessions, err := a.LastNCprSessions(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 100.0, sessions[0].CprRate)
}

func TestLastNCprSessions_NotFound(t *testing.T) {
	a, _, _ := newTestAPI()

	_, err := a.LastNCprSessions(context.Background(), "ghost", 3)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

// endregion

// region CreateUser / CreateTrainer tests

func TestCreateUser(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()

	require.NoError(t, a.CreateUser(ctx, "u1"))
	require.Contains(t, mockStore.Users, "u1")
	assert.Empty(t, mockStore.Users["u1"].CprSessions)
	assert.Empty(t, mockStore.Users["u1"].GameResults)

	err := a.CreateUser(ctx, "u1")
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.Equal(t, 1, mockStore.InsertUserCalls)
}

func TestCreateUser_StorageError(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	mockStore.UserExistsError = shared.NewStorageError("check user exists", errors.New("boom"))

	err := a.CreateUser(context.Background(), "u1")

	var storageErr *shared.StorageError
	assert.True(t, errors.As(err, &storageErr))
	assert.Equal(t, 0, mockStore.InsertUserCalls)
}

func TestCreateTrainer_NoUniquenessCheck(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()

	require.NoError(t, a.CreateTrainer(ctx, "t1", "Alex"))
	require.NoError(t, a.CreateTrainer(ctx, "t1", "Alex again"))

	assert.Len(t, mockStore.Trainers, 2)
	assert.Empty(t, mockStore.Trainers[0].UserIDs)
}

func TestCreateTrainer_StorageError(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	mockStore.InsertTrainerError = shared.NewStorageError("insert trainer", errors.New("boom"))

	assert.Error(t, a.CreateTrainer(context.Background(), "t1", "Alex"))
}

// endregion

// region AttachUserToTrainer / ListTrainerUsers tests

func TestAttachUserToTrainer_Success(t *testing.T) {
	a, mockStore, notifier := newTestAPI()
	ctx := context.Background()
	mockStore.AddTrainer("t1", "Alex")

	require.NoError(t, a.AttachUserToTrainer(ctx, "t1", "u1"))

	ids, err := a.ListTrainerUsers(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids)
	assert.Equal(t, []string{"u1"}, notifier.Calls)
	// the local user record is created by the provisioning service, not here
	assert.NotContains(t, mockStore.Users, "u1")
}

func TestAttachUserToTrainer_IdempotentAdd(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()
	mockStore.AddTrainer("t1", "Alex")

	require.NoError(t, a.AttachUserToTrainer(ctx, "t1", "u1"))
	require.NoError(t, a.AttachUserToTrainer(ctx, "t1", "u1"))

	ids, err := a.ListTrainerUsers(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids)
}

func TestAttachUserToTrainer_ExistingUserLeavesTrainerUnchanged(t *testing.T) {
	a, mockStore, notifier := newTestAPI()
	ctx := context.Background()
	mockStore.AddTrainer("t1", "Alex", "u0")
	mockStore.AddUser(store.NewUserRecord("u1"))

	err := a.AttachUserToTrainer(ctx, "t1", "u1")

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	ids, _ := a.ListTrainerUsers(ctx, "t1")
	assert.Equal(t, []string{"u0"}, ids)
	assert.Equal(t, 0, mockStore.AddUserToTrainerCalls)
	assert.Empty(t, notifier.Calls)
}

func TestAttachUserToTrainer_MissingTrainer(t *testing.T) {
	a, mockStore, notifier := newTestAPI()
	ctx := context.Background()
	mockStore.AddTrainer("t1", "Alex", "u0")

	err := a.AttachUserToTrainer(ctx, "ghost", "u1")

	assert.ErrorIs(t, err, shared.ErrNotFound)
	ids, _ := a.ListTrainerUsers(ctx, "t1")
	assert.Equal(t, []string{"u0"}, ids)
	assert.Empty(t, notifier.Calls)
}

func TestAttachUserToTrainer_NotifierFailureKeepsTrainerUpdate(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	a, mockStore, notifier := newTestAPI()
	a.Log = &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	ctx := context.Background()
	mockStore.AddTrainer("t1", "Alex")
	notifier.Err = &shared.RemoteError{Op: "notify user created", Status: 500, Err: errors.New("unavailable")}

	err := a.AttachUserToTrainer(ctx, "t1", "u1")

	var remoteErr *shared.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, 500, remoteErr.Status)

	// no rollback, the trainer already holds the user
	ids, listErr := a.ListTrainerUsers(ctx, "t1")
	require.NoError(t, listErr)
	assert.Equal(t, []string{"u1"}, ids)
	assert.Equal(t, []string{"u1"}, notifier.Calls)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	assert.Equal(t, "u1", entry.ContextMap()["userId"])
}

func TestAttachUserToTrainer_NoNotifier(t *testing.T) {
	mockStore := NewMockStore()
	mockStore.AddTrainer("t1", "Alex")
	a := New(mockStore, nil, nil)

	err := a.AttachUserToTrainer(context.Background(), "t1", "u1")

	var remoteErr *shared.RemoteError
	assert.True(t, errors.As(err, &remoteErr))
}

func TestAttachUserToTrainer_EmptyIDs(t *testing.T) {
	a, _, _ := newTestAPI()
	ctx := context.Background()

	assert.ErrorIs(t, a.AttachUserToTrainer(ctx, "", "u1"), shared.ErrInvalidArgument)
	assert.ErrorIs(t, a.AttachUserToTrainer(ctx, "t1", ""), shared.ErrInvalidArgument)
}

func TestListTrainerUsers_NotFound(t *testing.T) {
	a, _, _ := newTestAPI()

	_, err := a.ListTrainerUsers(context.Background(), "ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListTrainerUsers_Empty(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	mockStore.AddTrainer("t1", "Alex")

	ids, err := a.ListTrainerUsers(context.Background(), "t1")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

// endregion

// region SuggestUserIDs / Ping / Close tests

func TestSuggestUserIDs(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	for _, id := range []string{"alice", "alicia", "bob"} {
		mockStore.AddUser(store.NewUserRecord(id))
	}

	ids, err := a.SuggestUserIDs(context.Background(), "ali", 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "alicia"}, ids)
}

func TestSuggestUserIDs_StorageError(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	mockStore.ListUsersError = shared.NewStorageError("list users", errors.New("boom"))

	_, err := a.SuggestUserIDs(context.Background(), "ali", 3)
	assert.Error(t, err)
}

func TestPingAndClose(t *testing.T) {
	a, mockStore, _ := newTestAPI()
	ctx := context.Background()

	assert.NoError(t, a.Ping(ctx))
	mockStore.PingError = errors.New("unreachable")
	assert.Error(t, a.Ping(ctx))

	require.NoError(t, a.Close(ctx))
	assert.True(t, mockStore.Closed)

	var nilAPI *API
	assert.NoError(t, nilAPI.Close(ctx))
}

// endregion
