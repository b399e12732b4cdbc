package database

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogEventAndGetEventsSince(t *testing.T) {
	user, _ := registerTestUser(t, "events@test.local")

	err := testStore.LogEvent(context.Background(), user.ID, EventFolderCreated, map[string]string{"id": "f1"})
	require.NoError(t, err)
	err = testStore.LogEvent(context.Background(), user.ID, EventFileUploaded, map[string]string{"id": "a1"})
	require.NoError(t, err)

	events, err := testStore.GetEventsSince(context.Background(), user.ID, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, EventFolderCreated, events[0].EventType)
	require.Equal(t, EventFileUploaded, events[1].EventType)
	require.Less(t, events[0].ID, events[1].ID)

	var payload struct {
		EventType string            `json:"event_type"`
		Payload   map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
	require.Equal(t, "f1", payload.Payload["id"])

	// Only events after the cursor come back.
	tail, err := testStore.GetEventsSince(context.Background(), user.ID, events[0].ID)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	require.Equal(t, events[1].ID, tail[0].ID)
}

func TestGetEventsSinceIsPerUser(t *testing.T) {
	userA, _ := registerTestUser(t, "events_a@test.local")
	userB, _ := registerTestUser(t, "events_b@test.local")

	err := testStore.LogEvent(context.Background(), userA.ID, EventFolderDeleted, map[string]string{"id": "gone"})
	require.NoError(t, err)

	events, err := testStore.GetEventsSince(context.Background(), userB.ID, 0)
	require.NoError(t, err)
	require.Empty(t, events)
}
