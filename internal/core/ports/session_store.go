package ports

import (
	"context"
	"time"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
)

// SessionStore persists sessions keyed by their opaque id. The stored
// record is the auth token plus a profile snapshot; nothing else survives a
// restart.
type SessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	// Purge drops sessions expired at now and reports how many were removed.
	// Stores with native expiry may make this a no-op.
	Purge(ctx context.Context, now time.Time) (int, error)
}
