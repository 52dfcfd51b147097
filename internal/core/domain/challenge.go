package domain

import "time"

// Challenge is a gamification task defined by an admin. Empty allow-lists
// mean the challenge is open to everyone.
type Challenge struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Points         int        `json:"points"`
	AllowedRoles   []string   `json:"allowed_roles"`
	AllowedUserIDs []string   `json:"allowed_user_ids"`
	DueAt          *time.Time `json:"due_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// VisibleTo evaluates the client-side visibility predicate: unrestricted
// challenges are visible to everyone, restricted ones to users matching the
// role list or explicitly listed by id. The backend does not pre-filter.
func (c Challenge) VisibleTo(p Profile) bool {
	if len(c.AllowedRoles) == 0 && len(c.AllowedUserIDs) == 0 {
		return true
	}
	for _, role := range c.AllowedRoles {
		if role == p.Role {
			return true
		}
	}
	for _, id := range c.AllowedUserIDs {
		if id == p.ID {
			return true
		}
	}
	return false
}

// Expired reports whether the enrollment deadline has passed. Challenges
// without a due date never expire.
func (c Challenge) Expired(now time.Time) bool {
	return c.DueAt != nil && now.After(*c.DueAt)
}
