package domain

import "strings"

// Profile is the read-only snapshot of a user held by the client. The
// backend owns the authoritative copy; the snapshot is refreshed after any
// mutating action and is stale in between.
type Profile struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email,omitempty"`
	Role    string  `json:"role"`
	IsAdmin bool    `json:"is_admin"`
	Hours   float64 `json:"hours"`
	Points  int     `json:"points"`
}

// Role is an admin-managed job title. Profiles and challenges reference
// roles by name, not by id; uniqueness of names is the backend's problem.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoleSet resolves free-text role names against the current role list so
// unknown names are rejected at the boundary instead of stored stringly.
type RoleSet struct {
	names map[string]struct{}
}

func NewRoleSet(roles []Role) RoleSet {
	s := RoleSet{names: make(map[string]struct{}, len(roles))}
	for _, r := range roles {
		s.names[r.Name] = struct{}{}
	}
	return s
}

func (s RoleSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Resolve validates a role name, returning ErrUnknownRole for names that do
// not exist in the current role list.
func (s RoleSet) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || !s.Contains(name) {
		return "", ErrUnknownRole
	}
	return name, nil
}

// Settings is the process-wide backend configuration singleton. Fetched on
// demand; there is no local cache invalidation guarantee.
type Settings struct {
	PointsPerHour int `json:"points_per_hour"`
}
