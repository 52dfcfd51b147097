// Package session provides the two SessionStore implementations: a
// process-local map for single-instance deployments and a Redis store for
// anything that needs sessions to survive a restart.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/api/metrics"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
)

// MemoryStore keeps sessions in a mutex-guarded map. Expired entries are
// dropped lazily on Get and in bulk by Purge (driven by the cron sweeper).
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

func (s *MemoryStore) Put(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.sessions[sess.ID]
	s.sessions[sess.ID] = *sess
	if !existed {
		metrics.SessionsActive.Inc()
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if sess.Expired(time.Now().UTC()) {
		s.mu.Lock()
		if _, still := s.sessions[id]; still {
			delete(s.sessions, id)
			metrics.SessionsActive.Dec()
		}
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	copy := sess
	return &copy, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		metrics.SessionsActive.Dec()
	}
	return nil
}

func (s *MemoryStore) Purge(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.SessionsActive.Sub(float64(removed))
	}
	return removed, nil
}

// Len reports the number of stored sessions, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
