package handler

import (
	"time"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
)

// errorResponse is the standard error envelope returned on 4xx/5xx.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type sessionResponse struct {
	SessionID string         `json:"session_id"`
	ExpiresAt time.Time      `json:"expires_at"`
	Profile   domain.Profile `json:"profile"`
}

// --- User surface ---

type profileResponse struct {
	domain.Profile
	// BalanceDays is the hour balance rendered in days for display.
	BalanceDays string `json:"balance_days"`
}

type createRequestRequest struct {
	Type   string  `json:"type"   validate:"required,oneof=gozo concessao"`
	Amount float64 `json:"amount" validate:"required"`
	Unit   string  `json:"unit"   validate:"required,oneof=hours days"`
	Reason string  `json:"reason"`
}

type requestRow struct {
	ID        string               `json:"id"`
	Type      domain.RequestType   `json:"type"`
	Hours     float64              `json:"hours"`
	Days      string               `json:"days"`
	Reason    string               `json:"reason"`
	Status    domain.RequestStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	// Actionable tells the moderation view whether to render the
	// approve/deny controls for this row.
	Actionable bool   `json:"actionable"`
	Requester  string `json:"requester,omitempty"`
}

func toRequestRow(r domain.Request) requestRow {
	row := requestRow{
		ID:         r.ID,
		Type:       r.Type,
		Hours:      r.Hours,
		Days:       domain.FormatDays(r.Hours),
		Reason:     r.Reason,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		Actionable: r.Status.Actionable(),
	}
	if r.Requester != nil {
		row.Requester = r.Requester.Name
	}
	return row
}

func toRequestRows(requests []domain.Request) []requestRow {
	rows := make([]requestRow, len(requests))
	for i, r := range requests {
		rows[i] = toRequestRow(r)
	}
	return rows
}

type submitRequestResponse struct {
	Request  requestRow     `json:"request"`
	Requests []requestRow   `json:"requests"`
	Profile  domain.Profile `json:"profile"`
}

type convertRequest struct {
	Hours float64 `json:"hours" validate:"required,gt=0"`
}

type convertResponse struct {
	Profile domain.Profile `json:"profile"`
	Cost    float64        `json:"cost"`
}

type proofRequest struct {
	ProofURL string `json:"proof_url" validate:"required"`
}

type challengeCardResponse struct {
	Challenge     domain.Challenge      `json:"challenge"`
	Participation *domain.Participation `json:"participation,omitempty"`
	Expired       bool                  `json:"expired"`
}

func toChallengeCards(cards []ports.ChallengeCard) []challengeCardResponse {
	out := make([]challengeCardResponse, len(cards))
	for i, c := range cards {
		out[i] = challengeCardResponse{
			Challenge:     c.Challenge,
			Participation: c.Participation,
			Expired:       c.Expired,
		}
	}
	return out
}

// --- Admin surface ---

type updateSettingsRequest struct {
	PointsPerHour int `json:"points_per_hour" validate:"required,gt=0"`
}

type processRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=aprovado negado"`
}

type validateParticipantRequest struct {
	// Pointer so an explicit false survives the required check.
	Approved *bool `json:"approved" validate:"required"`
}

type createChallengeRequest struct {
	Title          string     `json:"title"  validate:"required"`
	Description    string     `json:"description"`
	Points         int        `json:"points" validate:"gte=0"`
	AllowedRoles   []string   `json:"allowed_roles"`
	AllowedUserIDs []string   `json:"allowed_user_ids"`
	DueAt          *time.Time `json:"due_at"`
}

type updateUserRequest struct {
	Name    string `json:"name" validate:"required"`
	Role    string `json:"role" validate:"required"`
	IsAdmin bool   `json:"is_admin"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type adjustHoursRequest struct {
	Amount float64 `json:"amount" validate:"required"`
	Unit   string  `json:"unit"   validate:"required,oneof=hours days"`
	Reason string  `json:"reason" validate:"required"`
}

type addRoleRequest struct {
	Name string `json:"name" validate:"required"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}
