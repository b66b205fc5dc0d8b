package wizard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle wizard session is kept.
const DefaultSessionTTL = 24 * time.Hour

// Session is one browser's (or one CLI run's) wizard.
type Session struct {
	ID        string      `json:"id"`
	Wizard    *Controller `json:"wizard"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewSession starts a wizard at step 1 under a fresh ID.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		Wizard:    New(),
		UpdatedAt: time.Now().UTC(),
	}
}

// Store persists wizard sessions between requests.
type Store interface {
	// Load returns ErrSessionNotFound for unknown or expired IDs.
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
