package backend

import (
	"time"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
)

// Wire types owned by the transport layer. The backend embeds joined rows
// under the table names of its relations ("profiles", "challenges"); the
// domain model is intentionally decoupled from those names.

type requestWire struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	Type      domain.RequestType   `json:"type"`
	Hours     float64              `json:"hours"`
	Reason    string               `json:"reason"`
	Status    domain.RequestStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	Profiles  *domain.Profile      `json:"profiles,omitempty"`
}

func (w requestWire) toDomain() domain.Request {
	return domain.Request{
		ID:        w.ID,
		UserID:    w.UserID,
		Type:      w.Type,
		Hours:     w.Hours,
		Reason:    w.Reason,
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
		Requester: w.Profiles,
	}
}

func requestsFromWire(wire []requestWire) []domain.Request {
	out := make([]domain.Request, len(wire))
	for i, w := range wire {
		out[i] = w.toDomain()
	}
	return out
}

type challengeWire struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Points         int        `json:"points"`
	AllowedRoles   []string   `json:"allowed_roles"`
	AllowedUserIDs []string   `json:"allowed_user_ids"`
	DueAt          *time.Time `json:"due_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (w challengeWire) toDomain() domain.Challenge {
	return domain.Challenge{
		ID:             w.ID,
		Title:          w.Title,
		Description:    w.Description,
		Points:         w.Points,
		AllowedRoles:   w.AllowedRoles,
		AllowedUserIDs: w.AllowedUserIDs,
		DueAt:          w.DueAt,
		CreatedAt:      w.CreatedAt,
	}
}

func challengesFromWire(wire []challengeWire) []domain.Challenge {
	out := make([]domain.Challenge, len(wire))
	for i, w := range wire {
		out[i] = w.toDomain()
	}
	return out
}

type participationWire struct {
	ID          string                     `json:"id"`
	ChallengeID string                     `json:"challenge_id"`
	UserID      string                     `json:"user_id"`
	Status      domain.ParticipationStatus `json:"status"`
	ProofURL    string                     `json:"proof_url"`
	CreatedAt   time.Time                  `json:"created_at"`
	Profiles    *domain.Profile            `json:"profiles,omitempty"`
	Challenges  *challengeWire             `json:"challenges,omitempty"`
}

func (w participationWire) toDomain() domain.Participation {
	p := domain.Participation{
		ID:          w.ID,
		ChallengeID: w.ChallengeID,
		UserID:      w.UserID,
		Status:      w.Status,
		ProofURL:    w.ProofURL,
		CreatedAt:   w.CreatedAt,
		Participant: w.Profiles,
	}
	if w.Challenges != nil {
		ch := w.Challenges.toDomain()
		p.Challenge = &ch
	}
	return p
}

func participationsFromWire(wire []participationWire) []domain.Participation {
	out := make([]domain.Participation, len(wire))
	for i, w := range wire {
		out[i] = w.toDomain()
	}
	return out
}
