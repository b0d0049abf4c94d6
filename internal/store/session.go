package store

import (
	"database/sql"
	"time"
)

// Event kinds recorded during a session.
const (
	EventKindGesture    = "gesture"
	EventKindFocusEnter = "focus-enter"
	EventKindFocusExit  = "focus-exit"
)

// SessionEvent represents a single gesture or focus event recorded during a
// session.
type SessionEvent struct {
	ID        int64
	SessionID string
	Kind      string
	Detail    string
	CreatedAt time.Time
}

// SessionRepository provides operations for session event history.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Append records a new event for the given session.
func (r *SessionRepository) Append(sessionID, kind, detail string) error {
	_, err := r.db.Exec(
		`INSERT INTO session_events (session_id, kind, detail) VALUES (?, ?, ?)`,
		sessionID, kind, detail,
	)
	return err
}

// List retrieves the events for a session, oldest first.
func (r *SessionRepository) List(sessionID string) ([]*SessionEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, kind, detail, created_at
		 FROM session_events WHERE session_id = ? ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*SessionEvent
	for rows.Next() {
		e := &SessionEvent{}
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Kind, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Recent retrieves the most recent events across all sessions, newest first.
func (r *SessionRepository) Recent(limit int) ([]*SessionEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, session_id, kind, detail, created_at
		 FROM session_events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*SessionEvent
	for rows.Next() {
		e := &SessionEvent{}
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Kind, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Purge deletes events older than the given cutoff. Returns the number of
// deleted rows.
func (r *SessionRepository) Purge(before time.Time) (int64, error) {
	result, err := r.db.Exec(
		`DELETE FROM session_events WHERE created_at < ?`, before,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
