package domain

import (
	"errors"
	"testing"
)

func TestRoleSet_Resolve(t *testing.T) {
	set := NewRoleSet([]Role{
		{ID: "r1", Name: "Técnico"},
		{ID: "r2", Name: "Analista"},
	})

	name, err := set.Resolve("Técnico")
	if err != nil {
		t.Fatalf("known role rejected: %v", err)
	}
	if name != "Técnico" {
		t.Errorf("resolved name %q", name)
	}

	if name, err := set.Resolve("  Analista  "); err != nil || name != "Analista" {
		t.Errorf("surrounding whitespace must be trimmed, got %q, %v", name, err)
	}

	if _, err := set.Resolve("Gerente"); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("unknown role must return ErrUnknownRole, got %v", err)
	}
	if _, err := set.Resolve(""); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("empty name must return ErrUnknownRole, got %v", err)
	}
}

func TestBackendError_MatchesUnauthorized(t *testing.T) {
	for _, status := range []int{401, 403} {
		err := error(&BackendError{Status: status})
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("status %d must match ErrUnauthorized", status)
		}
	}
	if errors.Is(error(&BackendError{Status: 500}), ErrUnauthorized) {
		t.Error("status 500 must not match ErrUnauthorized")
	}
}

func TestBackendError_UserMessage(t *testing.T) {
	withDetail := &BackendError{Status: 400, Detail: "Saldo insuficiente"}
	if got := withDetail.UserMessage(); got != "Saldo insuficiente" {
		t.Errorf("detail must surface verbatim, got %q", got)
	}

	bare := &BackendError{Status: 500}
	if got := bare.UserMessage(); got != "operação falhou, tente novamente" {
		t.Errorf("missing detail must fall back to the generic message, got %q", got)
	}
}
