package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
)

const minPasswordLength = 6

// AdminService implements the moderation views. Every mutation runs the
// same pattern: one backend call, then a full re-fetch of the affected
// list, returned to the caller so rows are never patched locally.
type AdminService struct {
	gateway  ports.Gateway
	sessions ports.SessionService
	logger   zerolog.Logger
}

func NewAdminService(gateway ports.Gateway, sessions ports.SessionService, logger zerolog.Logger) *AdminService {
	return &AdminService{gateway: gateway, sessions: sessions, logger: logger}
}

// actThenReload is the moderation-view pattern: a fire-and-forget mutation
// followed by a full list refresh. Reload errors surface as-is; the backend
// already applied the mutation at that point.
func actThenReload[T any](ctx context.Context, act func(context.Context) error, reload func(context.Context) ([]T, error)) ([]T, error) {
	if err := act(ctx); err != nil {
		return nil, err
	}
	return reload(ctx)
}

// --- Settings ---

func (s *AdminService) Settings(ctx context.Context, sess *domain.Session) (*domain.Settings, error) {
	settings, err := s.gateway.Settings(ctx, sess.Token)
	return settings, s.guard(ctx, sess, err)
}

func (s *AdminService) UpdateSettings(ctx context.Context, sess *domain.Session, pointsPerHour int) (*domain.Settings, error) {
	if pointsPerHour <= 0 {
		return nil, domain.NewValidationError("points_per_hour", "must be a positive integer")
	}
	settings, err := s.gateway.UpdateSettings(ctx, sess.Token, pointsPerHour)
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	s.logger.Info().Int("points_per_hour", settings.PointsPerHour).Msg("conversion rate updated")
	return settings, nil
}

// --- Requests ---

func (s *AdminService) Requests(ctx context.Context, sess *domain.Session) ([]domain.Request, error) {
	requests, err := s.gateway.AllRequests(ctx, sess.Token)
	return requests, s.guard(ctx, sess, err)
}

func (s *AdminService) ProcessRequest(ctx context.Context, sess *domain.Session, requestID string, status domain.RequestStatus) ([]domain.Request, error) {
	if status != domain.RequestApproved && status != domain.RequestDenied {
		return nil, domain.NewValidationError("status", "must be aprovado or negado")
	}
	list, err := actThenReload(ctx,
		func(ctx context.Context) error {
			return s.gateway.ProcessRequest(ctx, sess.Token, requestID, status)
		},
		func(ctx context.Context) ([]domain.Request, error) {
			return s.gateway.AllRequests(ctx, sess.Token)
		})
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	s.logger.Info().Str("request_id", requestID).Str("status", string(status)).Msg("request processed")
	return list, nil
}

// --- Proof validation ---

func (s *AdminService) PendingValidations(ctx context.Context, sess *domain.Session) ([]domain.Participation, error) {
	pending, err := s.gateway.PendingValidations(ctx, sess.Token)
	return pending, s.guard(ctx, sess, err)
}

func (s *AdminService) AllParticipations(ctx context.Context, sess *domain.Session) ([]domain.Participation, error) {
	all, err := s.gateway.AllParticipations(ctx, sess.Token)
	return all, s.guard(ctx, sess, err)
}

func (s *AdminService) ValidateParticipant(ctx context.Context, sess *domain.Session, participantID string, approved bool) ([]domain.Participation, error) {
	list, err := actThenReload(ctx,
		func(ctx context.Context) error {
			return s.gateway.ValidateParticipant(ctx, sess.Token, participantID, approved)
		},
		func(ctx context.Context) ([]domain.Participation, error) {
			return s.gateway.PendingValidations(ctx, sess.Token)
		})
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	s.logger.Info().Str("participant_id", participantID).Bool("approved", approved).Msg("proof validated")
	return list, nil
}

// --- Challenges ---

func (s *AdminService) Challenges(ctx context.Context, sess *domain.Session) ([]domain.Challenge, error) {
	return s.gateway.AllChallenges(ctx)
}

func (s *AdminService) CreateChallenge(ctx context.Context, sess *domain.Session, in ports.CreateChallengeInput) ([]domain.Challenge, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.NewValidationError("title", "is required")
	}
	if in.Points < 0 {
		return nil, domain.NewValidationError("points", "must not be negative")
	}
	if len(in.AllowedRoles) > 0 {
		roleSet, err := s.roleSet(ctx)
		if err != nil {
			return nil, err
		}
		for i, name := range in.AllowedRoles {
			resolved, err := roleSet.Resolve(name)
			if err != nil {
				return nil, domain.NewValidationError("allowed_roles", "unknown role "+name)
			}
			in.AllowedRoles[i] = resolved
		}
	}

	list, err := actThenReload(ctx,
		func(ctx context.Context) error {
			_, err := s.gateway.CreateChallenge(ctx, sess.Token, in)
			return err
		},
		func(ctx context.Context) ([]domain.Challenge, error) {
			return s.gateway.AllChallenges(ctx)
		})
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	s.logger.Info().Str("title", in.Title).Int("points", in.Points).Msg("challenge created")
	return list, nil
}

func (s *AdminService) DeleteChallenge(ctx context.Context, sess *domain.Session, challengeID string) ([]domain.Challenge, error) {
	list, err := actThenReload(ctx,
		func(ctx context.Context) error {
			return s.gateway.DeleteChallenge(ctx, sess.Token, challengeID)
		},
		func(ctx context.Context) ([]domain.Challenge, error) {
			return s.gateway.AllChallenges(ctx)
		})
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	s.logger.Info().Str("challenge_id", challengeID).Msg("challenge deleted")
	return list, nil
}

// --- Users ---

func (s *AdminService) Users(ctx context.Context, sess *domain.Session) ([]domain.Profile, error) {
	users, err := s.gateway.AllUsers(ctx, sess.Token)
	return users, s.guard(ctx, sess, err)
}

func (s *AdminService) UpdateUser(ctx context.Context, sess *domain.Session, userID string, in ports.UpdateUserInput) ([]domain.Profile, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	roleSet, err := s.roleSet(ctx)
	if err != nil {
		return nil, err
	}
	resolved, err := roleSet.Resolve(in.Role)
	if err != nil {
		return nil, err
	}
	in.Role = resolved

	list, err := actThenReload(ctx,
		func(ctx context.Context) error {
			_, err := s.gateway.UpdateUser(ctx, sess.Token, userID, in)
			return err
		},
		func(ctx context.Context) ([]domain.Profile, error) {
			return s.gateway.AllUsers(ctx, sess.Token)
		})
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	s.logger.Info().Str("user_id", userID).Str("role", in.Role).Bool("admin", in.IsAdmin).Msg("user updated")
	return list, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, sess *domain.Session, userID string) ([]domain.Profile, error) {
	list, err := actThenReload(ctx,
		func(ctx context.Context) error {
			return s.gateway.DeleteUser(ctx, sess.Token, userID)
		},
		func(ctx context.Context) ([]domain.Profile, error) {
			return s.gateway.AllUsers(ctx, sess.Token)
		})
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	s.logger.Info().Str("user_id", userID).Msg("user deleted")
	return list, nil
}

func (s *AdminService) ResetPassword(ctx context.Context, sess *domain.Session, userID, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.NewValidationError("new_password", "must be at least 6 characters")
	}
	if err := s.gateway.ResetPassword(ctx, sess.Token, userID, newPassword); err != nil {
		return s.guard(ctx, sess, err)
	}
	s.logger.Info().Str("user_id", userID).Msg("password reset")
	return nil
}

func (s *AdminService) UserRequests(ctx context.Context, sess *domain.Session, userID string) ([]domain.Request, error) {
	requests, err := s.gateway.UserRequests(ctx, sess.Token, userID)
	return requests, s.guard(ctx, sess, err)
}

// AdjustUserHours applies a manual balance adjustment. The amount is
// normalized to hours before submission; negative values deduct.
func (s *AdminService) AdjustUserHours(ctx context.Context, sess *domain.Session, userID string, in ports.AdjustHoursInput) ([]domain.Request, error) {
	if in.Amount == 0 {
		return nil, domain.NewValidationError("amount", "must not be zero")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.NewValidationError("reason", "is required for the audit trail")
	}
	hours := domain.ToHours(in.Amount, in.Unit)
	if !domain.ValidGranularity(hours) {
		return nil, domain.NewValidationError("amount", "must be a multiple of half an hour")
	}

	list, err := actThenReload(ctx,
		func(ctx context.Context) error {
			return s.gateway.AdjustUserHours(ctx, sess.Token, userID, hours, in.Reason)
		},
		func(ctx context.Context) ([]domain.Request, error) {
			return s.gateway.UserRequests(ctx, sess.Token, userID)
		})
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	s.logger.Info().Str("user_id", userID).Float64("hours", hours).Str("reason", in.Reason).Msg("balance adjusted")
	return list, nil
}

// --- Roles ---

func (s *AdminService) Roles(ctx context.Context, sess *domain.Session) ([]domain.Role, error) {
	return s.gateway.PublicRoles(ctx)
}

func (s *AdminService) AddRole(ctx context.Context, sess *domain.Session, name string) ([]domain.Role, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	list, err := actThenReload(ctx,
		func(ctx context.Context) error {
			return s.gateway.AddRole(ctx, sess.Token, strings.TrimSpace(name))
		},
		func(ctx context.Context) ([]domain.Role, error) {
			return s.gateway.PublicRoles(ctx)
		})
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	return list, nil
}

func (s *AdminService) DeleteRole(ctx context.Context, sess *domain.Session, roleID string) ([]domain.Role, error) {
	list, err := actThenReload(ctx,
		func(ctx context.Context) error {
			return s.gateway.DeleteRole(ctx, sess.Token, roleID)
		},
		func(ctx context.Context) ([]domain.Role, error) {
			return s.gateway.PublicRoles(ctx)
		})
	if err != nil {
		return nil, s.guard(ctx, sess, err)
	}
	return list, nil
}

func (s *AdminService) roleSet(ctx context.Context) (domain.RoleSet, error) {
	roles, err := s.gateway.PublicRoles(ctx)
	if err != nil {
		return domain.RoleSet{}, err
	}
	return domain.NewRoleSet(roles), nil
}

func (s *AdminService) guard(ctx context.Context, sess *domain.Session, err error) error {
	if err != nil && errors.Is(err, domain.ErrUnauthorized) {
		s.sessions.Invalidate(ctx, sess.ID)
	}
	return err
}
