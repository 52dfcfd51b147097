package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSessionService_Login_CreatesSession(t *testing.T) {
	gw := newStubGateway()
	store := newStubStore()
	svc := NewSessionService(gw, store, time.Hour, discardLogger)

	sess, err := svc.Login(context.Background(), "maria@example.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if sess.ID == "" {
		t.Error("session id must be generated")
	}
	if sess.Token != gw.token {
		t.Errorf("session must hold the backend token, got %q", sess.Token)
	}
	if sess.Profile.Name != "Maria" {
		t.Errorf("profile snapshot not captured: %+v", sess.Profile)
	}
	if !store.has(sess.ID) {
		t.Error("session must be persisted")
	}
}

func TestSessionService_Login_ExpiryFromTokenClaim(t *testing.T) {
	exp := time.Now().Add(8 * time.Hour).Truncate(time.Second)

	gw := newStubGateway()
	gw.token = signedToken(t, exp)
	svc := NewSessionService(gw, newStubStore(), time.Hour, discardLogger)

	sess, err := svc.Login(context.Background(), "maria@example.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Errorf("expiry must come from the token's exp claim: got %v, want %v", sess.ExpiresAt, exp)
	}
}

func TestSessionService_Login_FallbackTTLForOpaqueToken(t *testing.T) {
	gw := newStubGateway()
	gw.token = "opaque-token-without-claims"
	svc := NewSessionService(gw, newStubStore(), 30*time.Minute, discardLogger)

	before := time.Now().UTC()
	sess, err := svc.Login(context.Background(), "maria@example.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	want := before.Add(30 * time.Minute)
	if sess.ExpiresAt.Before(want) || sess.ExpiresAt.After(want.Add(time.Minute)) {
		t.Errorf("opaque token must fall back to the default TTL, got %v", sess.ExpiresAt)
	}
}

func TestSessionService_Login_GatewayFailure(t *testing.T) {
	gw := newStubGateway()
	gw.errs["Login"] = &domain.BackendError{Status: 401, Detail: "credenciais inválidas"}
	store := newStubStore()
	svc := NewSessionService(gw, store, time.Hour, discardLogger)

	_, err := svc.Login(context.Background(), "maria@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}
	if len(store.sessions) != 0 {
		t.Error("failed login must not persist a session")
	}
}

func TestSessionService_Resume(t *testing.T) {
	_, _, svc, sess := testSetup()

	got, err := svc.Resume(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if got.ID != sess.ID || got.Token != sess.Token {
		t.Errorf("resumed wrong session: %+v", got)
	}

	if _, err := svc.Resume(context.Background(), "unknown"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("unknown session must return ErrSessionNotFound, got %v", err)
	}
}

func TestSessionService_Resume_ExpiredSessionIsDropped(t *testing.T) {
	_, store, svc, sess := testSetup()

	sess.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	_ = store.Put(context.Background(), sess)

	if _, err := svc.Resume(context.Background(), sess.ID); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if store.has(sess.ID) {
		t.Error("expired session must be deleted on resume")
	}
}

func TestSessionService_RefreshProfile_UpdatesSnapshot(t *testing.T) {
	gw, store, svc, sess := testSetup()
	gw.profile.Hours = 24
	gw.profile.Points = 80

	profile, err := svc.RefreshProfile(context.Background(), sess)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if profile.Hours != 24 || profile.Points != 80 {
		t.Errorf("refreshed profile stale: %+v", profile)
	}

	stored, _ := store.Get(context.Background(), sess.ID)
	if stored.Profile.Hours != 24 {
		t.Error("refreshed snapshot must be persisted")
	}
}

func TestSessionService_RefreshProfile_AuthRejectionTearsDownSession(t *testing.T) {
	gw, store, svc, sess := testSetup()
	gw.errs["Profile"] = &domain.BackendError{Status: 401}

	_, err := svc.RefreshProfile(context.Background(), sess)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if store.has(sess.ID) {
		t.Error("session must be invalidated after a backend 401")
	}
}

func TestSessionService_Logout(t *testing.T) {
	_, store, svc, sess := testSetup()

	if err := svc.Logout(context.Background(), sess.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if store.has(sess.ID) {
		t.Error("logout must delete the session")
	}
}
