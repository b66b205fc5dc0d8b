package wizard

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLStore keeps wizard sessions in the sqlite wizard_sessions table.
type SQLStore struct {
	db  *sqlx.DB
	ttl time.Duration
}

// NewSQLStore creates a session store. A non-positive ttl uses DefaultSessionTTL.
func NewSQLStore(db *sqlx.DB, ttl time.Duration) *SQLStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SQLStore{db: db, ttl: ttl}
}

const upsertSessionSQL = `INSERT INTO wizard_sessions (id, state_json, expires_at, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		state_json = excluded.state_json,
		expires_at = excluded.expires_at,
		updated_at = excluded.updated_at`

// Save writes the session and pushes its expiry out by the TTL.
func (s *SQLStore) Save(ctx context.Context, sess *Session) error {
	now := time.Now().UTC()
	sess.UpdatedAt = now

	data, err := json.Marshal(sess.Wizard)
	if err != nil {
		return fmt.Errorf("marshaling wizard state: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, upsertSessionSQL, sess.ID, string(data), now.Add(s.ttl), now); err != nil {
		return fmt.Errorf("storing wizard session: %w", err)
	}
	return nil
}

// Load returns the session, deleting it if it has expired.
func (s *SQLStore) Load(ctx context.Context, id string) (*Session, error) {
	var row struct {
		StateJSON string    `db:"state_json"`
		ExpiresAt time.Time `db:"expires_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}

	err := s.db.GetContext(ctx, &row,
		"SELECT state_json, expires_at, updated_at FROM wizard_sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying wizard session: %w", err)
	}

	if time.Now().After(row.ExpiresAt) {
		if err := s.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("deleting expired session: %w", err)
		}
		return nil, ErrSessionNotFound
	}

	var c Controller
	if err := json.Unmarshal([]byte(row.StateJSON), &c); err != nil {
		return nil, corruptSession(id, err)
	}

	return &Session{ID: id, Wizard: &c, UpdatedAt: row.UpdatedAt}, nil
}

// Delete removes the session. Deleting an unknown ID is not an error.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM wizard_sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting wizard session: %w", err)
	}
	return nil
}

// Cleanup removes expired sessions and returns how many were deleted.
func (s *SQLStore) Cleanup(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM wizard_sessions WHERE expires_at < ?", time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("cleaning up wizard sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}
