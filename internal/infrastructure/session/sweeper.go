package session

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper periodically evicts expired sessions from the memory store.
// Redis expires keys on its own, so the sweeper only runs for the
// in-memory backend.
type Sweeper struct {
	cron  *cron.Cron
	store *MemoryStore
	log   zerolog.Logger
}

func NewSweeper(store *MemoryStore, every time.Duration, log zerolog.Logger) *Sweeper {
	s := &Sweeper{
		cron:  cron.New(),
		store: store,
		log:   log,
	}
	s.cron.Schedule(cron.Every(every), cron.FuncJob(s.sweep))
	return s
}

func (s *Sweeper) sweep() {
	removed, err := s.store.Purge(context.Background(), time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("session sweep failed")
		return
	}
	if removed > 0 {
		s.log.Debug().Int("removed", removed).Msg("expired sessions swept")
	}
}

func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
