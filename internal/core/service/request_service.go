package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
)

// RequestService drives the request submission workflow and the points
// conversion for the logged-in user.
type RequestService struct {
	gateway  ports.Gateway
	sessions ports.SessionService
	logger   zerolog.Logger
}

func NewRequestService(gateway ports.Gateway, sessions ports.SessionService, logger zerolog.Logger) *RequestService {
	return &RequestService{gateway: gateway, sessions: sessions, logger: logger}
}

func (s *RequestService) List(ctx context.Context, sess *domain.Session) ([]domain.Request, error) {
	requests, err := s.gateway.Requests(ctx, sess.Token)
	return requests, s.guard(ctx, sess, err)
}

// Submit runs the draft state machine. Validation failures never reach the
// backend; submission failures preserve the draft so the user retries
// without re-entering data.
func (s *RequestService) Submit(ctx context.Context, sess *domain.Session, in ports.SubmitRequestInput) (*ports.SubmitRequestResult, *domain.RequestDraft, error) {
	draft := domain.NewRequestDraft(in.Type, in.Amount, in.Unit, in.Reason)
	if err := draft.Validate(); err != nil {
		return nil, draft, err
	}
	if err := draft.Begin(); err != nil {
		return nil, draft, err
	}

	created, err := s.gateway.CreateRequest(ctx, sess.Token, draft.Type, draft.Hours(), draft.Reason)
	if err != nil {
		draft.Fail(failureMessage(err))
		return nil, draft, s.guard(ctx, sess, err)
	}
	draft.Complete()

	// Full reload, no incremental merge: the backend may have computed side
	// effects the client cannot reproduce.
	requests, err := s.gateway.Requests(ctx, sess.Token)
	if err != nil {
		return nil, draft, s.guard(ctx, sess, err)
	}
	profile, err := s.sessions.RefreshProfile(ctx, sess)
	if err != nil {
		return nil, draft, err
	}

	s.logger.Info().Str("request_id", created.ID).Str("type", string(created.Type)).Float64("hours", created.Hours).Msg("request submitted")
	return &ports.SubmitRequestResult{Request: created, Requests: requests, Profile: profile}, draft, nil
}

func (s *RequestService) ConvertPoints(ctx context.Context, sess *domain.Session, hours float64) (*ports.ConvertResult, error) {
	if hours <= 0 {
		return nil, domain.NewValidationError("hours", "must be greater than zero")
	}
	if !domain.ValidGranularity(hours) {
		return nil, domain.NewValidationError("hours", "must be a multiple of half an hour")
	}

	settings, err := s.gateway.Settings(ctx, sess.Token)
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	if !domain.CanConvert(sess.Profile.Points, hours, settings.PointsPerHour) {
		return nil, domain.NewValidationError("hours", "insufficient points for conversion")
	}

	if _, err := s.gateway.ConvertPoints(ctx, sess.Token, hours); err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	profile, err := s.sessions.RefreshProfile(ctx, sess)
	if err != nil {
		return nil, err
	}

	cost := domain.ConversionCost(hours, settings.PointsPerHour)
	s.logger.Info().Str("user_id", sess.Profile.ID).Float64("hours", hours).Float64("cost", cost).Msg("points converted")
	return &ports.ConvertResult{Profile: profile, Cost: cost}, nil
}

// guard tears the session down when the backend rejected its token.
func (s *RequestService) guard(ctx context.Context, sess *domain.Session, err error) error {
	if err != nil && errors.Is(err, domain.ErrUnauthorized) {
		s.sessions.Invalidate(ctx, sess.ID)
	}
	return err
}

// failureMessage surfaces the backend detail verbatim when present,
// otherwise a generic recoverable message.
func failureMessage(err error) string {
	var be *domain.BackendError
	if errors.As(err, &be) {
		return be.UserMessage()
	}
	return "não foi possível enviar a solicitação, tente novamente"
}
