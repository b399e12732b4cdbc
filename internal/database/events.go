package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Event types appended to the journal on drive mutations.
const (
	EventFolderCreated = "folder.created"
	EventFolderRenamed = "folder.renamed"
	EventFolderMoved   = "folder.moved"
	EventFolderDeleted = "folder.deleted"
	EventFileUploaded  = "file.uploaded"
	EventFileRenamed   = "file.renamed"
	EventFileMoved     = "file.moved"
	EventFileDeleted   = "file.deleted"
)

// LogEvent appends a change event to the journal and pushes it to the
// owner's connected websocket clients. Journal failures are returned so
// callers can log them, but the triggering mutation has already committed.
func (s *Store) LogEvent(ctx context.Context, userID int64, eventType string, payload interface{}) error {
	eventMsg := map[string]interface{}{
		"event_type": eventType,
		"payload":    payload,
	}
	eventBytes, err := json.Marshal(eventMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO event_journal (user_id, event_type, payload) VALUES ($1, $2, $3)`,
		userID, eventType, eventBytes,
	)
	if err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Notify(userID, eventBytes)
	}

	return nil
}

type Event struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	EventTime time.Time       `json:"event_time"`
	Payload   json.RawMessage `json:"payload"`
}

func (q *Queries) GetEventsSince(ctx context.Context, userID int64, sinceID int64) ([]Event, error) {
	query := `
		SELECT id, event_type, event_time, payload
		FROM event_journal
		WHERE user_id = $1 AND id > $2
		ORDER BY id ASC
		LIMIT 100
	`
	rows, err := q.db.Query(ctx, query, userID, sinceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		if err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.EventTime,
			&event.Payload,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if events == nil {
		return []Event{}, nil
	}

	return events, nil
}
