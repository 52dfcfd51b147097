package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
)

// ChallengeService assembles the challenge board and drives the
// enroll → submit-proof workflow. Validation/rejection are admin-only and
// show up here only as refreshed status.
type ChallengeService struct {
	gateway  ports.Gateway
	sessions ports.SessionService
	logger   zerolog.Logger
	now      func() time.Time
}

func NewChallengeService(gateway ports.Gateway, sessions ports.SessionService, logger zerolog.Logger) *ChallengeService {
	return &ChallengeService{gateway: gateway, sessions: sessions, logger: logger, now: time.Now}
}

// Board returns the challenges visible to the session's user joined with
// their own participations. The backend returns the full challenge list;
// the visibility predicate is evaluated here.
func (s *ChallengeService) Board(ctx context.Context, sess *domain.Session) ([]ports.ChallengeCard, error) {
	challenges, err := s.gateway.AllChallenges(ctx)
	if err != nil {
		return nil, err
	}
	participations, err := s.gateway.Participations(ctx, sess.Token)
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}

	byChallenge := make(map[string]*domain.Participation, len(participations))
	for i := range participations {
		byChallenge[participations[i].ChallengeID] = &participations[i]
	}

	now := s.now()
	cards := make([]ports.ChallengeCard, 0, len(challenges))
	for _, c := range challenges {
		if !c.VisibleTo(sess.Profile) {
			continue
		}
		cards = append(cards, ports.ChallengeCard{
			Challenge:     c,
			Participation: byChallenge[c.ID],
			Expired:       c.Expired(now),
		})
	}
	return cards, nil
}

func (s *ChallengeService) Enroll(ctx context.Context, sess *domain.Session, challengeID string) ([]ports.ChallengeCard, error) {
	card, err := s.findCard(ctx, sess, challengeID)
	if err != nil {
		return nil, err
	}
	if card.Participation != nil {
		return nil, domain.ErrAlreadyEnrolled
	}
	if card.Expired {
		return nil, domain.ErrChallengeExpired
	}

	if _, err := s.gateway.Enroll(ctx, sess.Token, challengeID); err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	s.logger.Info().Str("challenge_id", challengeID).Str("user_id", sess.Profile.ID).Msg("enrolled in challenge")
	return s.Board(ctx, sess)
}

func (s *ChallengeService) SubmitProof(ctx context.Context, sess *domain.Session, challengeID, proofURL string) ([]ports.ChallengeCard, error) {
	if strings.TrimSpace(proofURL) == "" {
		return nil, domain.NewValidationError("proof_url", "is required")
	}

	card, err := s.findCard(ctx, sess, challengeID)
	if err != nil {
		return nil, err
	}
	if card.Participation == nil {
		return nil, domain.ErrNotEnrolled
	}
	if !card.Participation.Status.CanTransitionTo(domain.ParticipationSubmitted) {
		return nil, domain.NewValidationError("status", "proof already submitted or participation closed")
	}

	if _, err := s.gateway.SubmitProof(ctx, sess.Token, challengeID, proofURL); err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	s.logger.Info().Str("challenge_id", challengeID).Str("user_id", sess.Profile.ID).Msg("proof submitted")
	return s.Board(ctx, sess)
}

func (s *ChallengeService) findCard(ctx context.Context, sess *domain.Session, challengeID string) (*ports.ChallengeCard, error) {
	cards, err := s.Board(ctx, sess)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if cards[i].Challenge.ID == challengeID {
			return &cards[i], nil
		}
	}
	return nil, domain.NewValidationError("challenge_id", "challenge not found or not visible")
}

func (s *ChallengeService) guard(ctx context.Context, sess *domain.Session, err error) error {
	if err != nil && errors.Is(err, domain.ErrUnauthorized) {
		s.sessions.Invalidate(ctx, sess.ID)
	}
	return err
}
