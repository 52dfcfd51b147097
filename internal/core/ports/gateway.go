package ports

import (
	"context"
	"time"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
)

// SignupInput carries the public registration fields.
type SignupInput struct {
	Name     string
	Role     string
	Email    string
	Password string
}

// CreateChallengeInput carries the fields an admin submits when launching a
// challenge.
type CreateChallengeInput struct {
	Title          string
	Description    string
	Points         int
	AllowedRoles   []string
	AllowedUserIDs []string
	DueAt          *time.Time
}

// UpdateUserInput is the admin edit of a profile. Role is already resolved
// against the current role set by the caller.
type UpdateUserInput struct {
	Name    string
	Role    string
	IsAdmin bool
}

// Gateway is the typed façade over the remote hour-bank backend: one method
// per backend operation, no business logic. Authenticated operations take
// the session's bearer token explicitly; implementations attach it to the
// outgoing call. Non-2xx responses surface as *domain.BackendError.
type Gateway interface {
	// Public.
	Login(ctx context.Context, email, password string) (accessToken string, err error)
	Signup(ctx context.Context, in SignupInput) error
	PublicRoles(ctx context.Context) ([]domain.Role, error)
	AllChallenges(ctx context.Context) ([]domain.Challenge, error)

	// Current user.
	Profile(ctx context.Context, token string) (*domain.Profile, error)
	Requests(ctx context.Context, token string) ([]domain.Request, error)
	CreateRequest(ctx context.Context, token string, t domain.RequestType, hours float64, reason string) (*domain.Request, error)
	ConvertPoints(ctx context.Context, token string, hours float64) (*domain.Profile, error)
	Participations(ctx context.Context, token string) ([]domain.Participation, error)
	Enroll(ctx context.Context, token, challengeID string) (*domain.Participation, error)
	SubmitProof(ctx context.Context, token, challengeID, proofURL string) (*domain.Participation, error)

	// Admin.
	Settings(ctx context.Context, token string) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, token string, pointsPerHour int) (*domain.Settings, error)
	AllRequests(ctx context.Context, token string) ([]domain.Request, error)
	ProcessRequest(ctx context.Context, token, requestID string, status domain.RequestStatus) error
	CreateChallenge(ctx context.Context, token string, in CreateChallengeInput) (*domain.Challenge, error)
	DeleteChallenge(ctx context.Context, token, challengeID string) error
	PendingValidations(ctx context.Context, token string) ([]domain.Participation, error)
	AllParticipations(ctx context.Context, token string) ([]domain.Participation, error)
	ValidateParticipant(ctx context.Context, token, participantID string, approved bool) error
	AllUsers(ctx context.Context, token string) ([]domain.Profile, error)
	UpdateUser(ctx context.Context, token, userID string, in UpdateUserInput) (*domain.Profile, error)
	DeleteUser(ctx context.Context, token, userID string) error
	ResetPassword(ctx context.Context, token, userID, newPassword string) error
	UserRequests(ctx context.Context, token, userID string) ([]domain.Request, error)
	AdjustUserHours(ctx context.Context, token, userID string, hours float64, reason string) error
	AddRole(ctx context.Context, token, name string) error
	DeleteRole(ctx context.Context, token, roleID string) error
}
