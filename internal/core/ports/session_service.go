package ports

import (
	"context"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
)

// SessionService owns the login/logout lifecycle and the cached profile
// snapshot. It is the only shared state between views.
type SessionService interface {
	// Login authenticates against the backend and creates a session with the
	// freshly fetched profile.
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Signup(ctx context.Context, in SignupInput) error
	// Resume loads an existing session by id, rejecting expired ones.
	Resume(ctx context.Context, sessionID string) (*domain.Session, error)
	// RefreshProfile re-fetches the profile snapshot after a mutating action.
	// A 401/403 from the backend destroys the session and returns
	// domain.ErrUnauthorized.
	RefreshProfile(ctx context.Context, s *domain.Session) (*domain.Profile, error)
	// Logout tears the session down explicitly.
	Logout(ctx context.Context, sessionID string) error
	// Invalidate destroys a session whose token the backend rejected.
	Invalidate(ctx context.Context, sessionID string)
}
