package ports

import (
	"context"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
)

// SubmitRequestInput is a request draft as entered in the form. Amount may
// be in hours or days; normalization happens inside the workflow.
type SubmitRequestInput struct {
	Type   domain.RequestType
	Amount float64
	Unit   domain.Unit
	Reason string
}

// SubmitRequestResult carries the accepted request, the fully reloaded
// request list and the refreshed profile snapshot.
type SubmitRequestResult struct {
	Request  *domain.Request
	Requests []domain.Request
	Profile  *domain.Profile
}

// ConvertResult is the outcome of a points-to-hours conversion.
type ConvertResult struct {
	Profile *domain.Profile
	Cost    float64
}

// RequestService drives the request submission workflow and the points
// conversion.
type RequestService interface {
	List(ctx context.Context, s *domain.Session) ([]domain.Request, error)
	// Submit validates the draft client-side, runs the Editing→Submitting→
	// Submitted machine and reloads the list. On failure the returned draft
	// is preserved for retry and carries the user-facing failure reason.
	Submit(ctx context.Context, s *domain.Session, in SubmitRequestInput) (*SubmitRequestResult, *domain.RequestDraft, error)
	// ConvertPoints checks affordability against the current rate before
	// calling the backend, then refreshes the profile.
	ConvertPoints(ctx context.Context, s *domain.Session, hours float64) (*ConvertResult, error)
}

// ChallengeCard joins a visible challenge with the user's own participation
// (nil when not enrolled).
type ChallengeCard struct {
	Challenge     domain.Challenge
	Participation *domain.Participation
	// Expired mirrors the due-date gate evaluated at assembly time.
	Expired bool
}

// ChallengeService drives enrollment and proof submission. All mutations
// are followed by a full board reload.
type ChallengeService interface {
	Board(ctx context.Context, s *domain.Session) ([]ChallengeCard, error)
	Enroll(ctx context.Context, s *domain.Session, challengeID string) ([]ChallengeCard, error)
	SubmitProof(ctx context.Context, s *domain.Session, challengeID, proofURL string) ([]ChallengeCard, error)
}
