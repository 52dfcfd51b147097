package domain

import "time"

// Session binds a backend auth token to a cached profile snapshot. It is
// the only state the client persists: login populates it, logout or any
// 401/403 from the backend destroys it.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session outlived its backend token.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// TTL is the remaining lifetime, used for store-level expiry.
func (s *Session) TTL(now time.Time) time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}
