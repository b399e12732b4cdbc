package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserEmailTaken(t *testing.T) {
	registerTestUser(t, "taken@test.local")

	_, err := testStore.RegisterUser(context.Background(), "taken@test.local", "hash", newTestID(t))
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUserRollsBackWithoutRootFolder(t *testing.T) {
	// Force the root folder insert to fail by reusing an existing folder ID;
	// the user insert must roll back with it.
	_, root := registerTestUser(t, "rollback_seed@test.local")

	_, err := testStore.RegisterUser(context.Background(), "rollback@test.local", "hash", root.ID)
	require.Error(t, err)

	got, err := testStore.GetUserByEmail(context.Background(), "rollback@test.local")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetUserByEmail(t *testing.T) {
	user, _ := registerTestUser(t, "lookup@test.local")

	got, err := testStore.GetUserByEmail(context.Background(), "lookup@test.local")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, user.ID, got.ID)

	missing, err := testStore.GetUserByEmail(context.Background(), "nobody@test.local")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	registerTestUser(t, "email_a@test.local")
	user, _ := registerTestUser(t, "email_b@test.local")

	err := testStore.UpdateUserEmail(context.Background(), user.ID, "email_a@test.local")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func createTestSession(t *testing.T, userID int64, token string, expiresAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := testStore.CreateSession(context.Background(), CreateSessionParams{
		ID:           id,
		UserID:       userID,
		RefreshToken: token,
		UserAgent:    "test-agent",
		ClientIP:     "127.0.0.1",
		ExpiresAt:    expiresAt,
	})
	require.NoError(t, err)
	return id
}

func TestGetUserByRefreshToken(t *testing.T) {
	user, _ := registerTestUser(t, "session@test.local")

	createTestSession(t, user.ID, "valid-token-1", time.Now().Add(time.Hour))
	createTestSession(t, user.ID, "expired-token-1", time.Now().Add(-time.Hour))

	got, err := testStore.GetUserByRefreshToken(context.Background(), "valid-token-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, user.ID, got.ID)

	// Expired sessions do not resolve.
	got, err = testStore.GetUserByRefreshToken(context.Background(), "expired-token-1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDeleteSessionByRefreshToken(t *testing.T) {
	user, _ := registerTestUser(t, "session_delete@test.local")

	createTestSession(t, user.ID, "delete-me", time.Now().Add(time.Hour))

	err := testStore.DeleteSessionByRefreshToken(context.Background(), "delete-me")
	require.NoError(t, err)

	got, err := testStore.GetUserByRefreshToken(context.Background(), "delete-me")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestListSessionsForUser(t *testing.T) {
	user, _ := registerTestUser(t, "session_list@test.local")

	createTestSession(t, user.ID, "list-token-1", time.Now().Add(time.Hour))
	createTestSession(t, user.ID, "list-token-2", time.Now().Add(time.Hour))
	createTestSession(t, user.ID, "list-token-expired", time.Now().Add(-time.Hour))

	sessions, err := testStore.ListSessionsForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
}

func TestDeleteSessionByID(t *testing.T) {
	user, _ := registerTestUser(t, "session_by_id@test.local")
	other, _ := registerTestUser(t, "session_by_id_other@test.local")

	id := createTestSession(t, user.ID, "by-id-token", time.Now().Add(time.Hour))

	// Another user cannot revoke the session.
	err := testStore.DeleteSessionByID(context.Background(), id, other.ID)
	require.NoError(t, err)
	sessions, err := testStore.ListSessionsForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	err = testStore.DeleteSessionByID(context.Background(), id, user.ID)
	require.NoError(t, err)
	sessions, err = testStore.ListSessionsForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func TestDeleteAllSessionsForUser(t *testing.T) {
	user, _ := registerTestUser(t, "session_all@test.local")

	createTestSession(t, user.ID, "all-token-1", time.Now().Add(time.Hour))
	createTestSession(t, user.ID, "all-token-2", time.Now().Add(time.Hour))

	err := testStore.DeleteAllSessionsForUser(context.Background(), user.ID)
	require.NoError(t, err)

	sessions, err := testStore.ListSessionsForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, sessions)
}
