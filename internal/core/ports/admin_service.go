package ports

import (
	"context"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
)

// AdjustHoursInput is a manual balance adjustment. Amount may be negative
// to deduct and may be entered in hours or days; Reason is mandatory for
// the audit trail.
type AdjustHoursInput struct {
	Amount float64
	Unit   domain.Unit
	Reason string
}

// AdminService implements the moderation views: every mutation is a single
// backend call followed by a full re-fetch of the affected list, which is
// returned so the view never patches rows locally.
type AdminService interface {
	Settings(ctx context.Context, s *domain.Session) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, s *domain.Session, pointsPerHour int) (*domain.Settings, error)

	Requests(ctx context.Context, s *domain.Session) ([]domain.Request, error)
	ProcessRequest(ctx context.Context, s *domain.Session, requestID string, status domain.RequestStatus) ([]domain.Request, error)

	PendingValidations(ctx context.Context, s *domain.Session) ([]domain.Participation, error)
	AllParticipations(ctx context.Context, s *domain.Session) ([]domain.Participation, error)
	ValidateParticipant(ctx context.Context, s *domain.Session, participantID string, approved bool) ([]domain.Participation, error)

	Challenges(ctx context.Context, s *domain.Session) ([]domain.Challenge, error)
	CreateChallenge(ctx context.Context, s *domain.Session, in CreateChallengeInput) ([]domain.Challenge, error)
	DeleteChallenge(ctx context.Context, s *domain.Session, challengeID string) ([]domain.Challenge, error)

	Users(ctx context.Context, s *domain.Session) ([]domain.Profile, error)
	UpdateUser(ctx context.Context, s *domain.Session, userID string, in UpdateUserInput) ([]domain.Profile, error)
	DeleteUser(ctx context.Context, s *domain.Session, userID string) ([]domain.Profile, error)
	ResetPassword(ctx context.Context, s *domain.Session, userID, newPassword string) error
	UserRequests(ctx context.Context, s *domain.Session, userID string) ([]domain.Request, error)
	AdjustUserHours(ctx context.Context, s *domain.Session, userID string, in AdjustHoursInput) ([]domain.Request, error)

	Roles(ctx context.Context, s *domain.Session) ([]domain.Role, error)
	AddRole(ctx context.Context, s *domain.Session, name string) ([]domain.Role, error)
	DeleteRole(ctx context.Context, s *domain.Session, roleID string) ([]domain.Role, error)
}
