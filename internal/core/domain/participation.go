package domain

import "time"

// ParticipationStatus is the lifecycle state of one user's engagement with
// one challenge. Constants carry the backend's wire values.
type ParticipationStatus string

const (
	ParticipationEnrolled  ParticipationStatus = "inscrito"
	ParticipationSubmitted ParticipationStatus = "enviado"
	ParticipationValidated ParticipationStatus = "validado"
	ParticipationRejected  ParticipationStatus = "recusado"
)

// participationTransitions defines the allowed state machine transitions.
// The user only drives enrolled→submitted; validation and rejection happen
// through admin action and are observed via refreshed status.
var participationTransitions = map[ParticipationStatus][]ParticipationStatus{
	ParticipationEnrolled:  {ParticipationSubmitted},
	ParticipationSubmitted: {ParticipationValidated, ParticipationRejected},
}

func (s ParticipationStatus) CanTransitionTo(next ParticipationStatus) bool {
	for _, allowed := range participationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Final reports whether the participation reached a terminal state.
func (s ParticipationStatus) Final() bool {
	return s == ParticipationValidated || s == ParticipationRejected
}

// Participation records one user's engagement with one challenge.
type Participation struct {
	ID          string              `json:"id"`
	ChallengeID string              `json:"challenge_id"`
	UserID      string              `json:"user_id"`
	Status      ParticipationStatus `json:"status"`
	ProofURL    string              `json:"proof_url,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	// Participant and Challenge are populated only on admin listings
	// (backend joins).
	Participant *Profile   `json:"participant,omitempty"`
	Challenge   *Challenge `json:"challenge,omitempty"`
}
