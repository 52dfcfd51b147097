package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers any 401/403 from the backend. The session
	// holding the rejected token must be torn down before this surfaces.
	ErrUnauthorized = errors.New("unauthorized")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	ErrAlreadyEnrolled  = errors.New("already enrolled in challenge")
	ErrChallengeExpired = errors.New("challenge enrollment closed")
	ErrNotEnrolled      = errors.New("not enrolled in challenge")
	ErrUnknownRole      = errors.New("unknown role name")
)

// ValidationError is raised before any network call is attempted. The
// message is meant for the end user, not for logs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// BackendError is a non-2xx response from the remote backend. Detail carries
// the backend's free-text detail field when present; callers surface it
// verbatim to the user.
type BackendError struct {
	Status int
	Detail string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match auth failures without
// callers inspecting status codes.
func (e *BackendError) Is(target error) bool {
	return target == ErrUnauthorized && (e.Status == 401 || e.Status == 403)
}

// UserMessage returns the backend detail when present, otherwise a generic
// recoverable-failure message.
func (e *BackendError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "operação falhou, tente novamente"
}
