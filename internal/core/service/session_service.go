package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
)

// SessionService implements login/logout and the cached profile snapshot.
type SessionService struct {
	gateway    ports.Gateway
	store      ports.SessionStore
	defaultTTL time.Duration
	logger     zerolog.Logger
}

func NewSessionService(gateway ports.Gateway, store ports.SessionStore, defaultTTL time.Duration, logger zerolog.Logger) *SessionService {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &SessionService{gateway: gateway, store: store, defaultTTL: defaultTTL, logger: logger}
}

func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	token, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile, err := s.gateway.Profile(ctx, token)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		Profile:   *profile,
		CreatedAt: now,
		ExpiresAt: s.tokenExpiry(token, now),
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", profile.ID).Str("role", profile.Role).Bool("admin", profile.IsAdmin).Msg("session created")
	return sess, nil
}

func (s *SessionService) Signup(ctx context.Context, in ports.SignupInput) error {
	return s.gateway.Signup(ctx, in)
}

func (s *SessionService) Resume(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Expired(time.Now().UTC()) {
		_ = s.store.Delete(ctx, sessionID)
		return nil, domain.ErrSessionExpired
	}
	return sess, nil
}

func (s *SessionService) RefreshProfile(ctx context.Context, sess *domain.Session) (*domain.Profile, error) {
	profile, err := s.gateway.Profile(ctx, sess.Token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.Invalidate(ctx, sess.ID)
		}
		return nil, err
	}

	sess.Profile = *profile
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *SessionService) Invalidate(ctx context.Context, sessionID string) {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to invalidate session")
		return
	}
	s.logger.Info().Str("session_id", sessionID).Msg("session invalidated after backend auth rejection")
}

// tokenExpiry derives the session lifetime from the backend token's exp
// claim. The signature is the backend's to verify; only the claim is read.
// Tokens without a usable exp fall back to the configured default TTL.
func (s *SessionService) tokenExpiry(token string, now time.Time) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.After(now) {
			return exp.Time
		}
	}
	return now.Add(s.defaultTTL)
}
