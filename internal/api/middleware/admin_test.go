package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
)

func runAdmin(t *testing.T, sess *domain.Session) (error, bool) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/users", nil), httptest.NewRecorder())
	if sess != nil {
		c.Set(sessionContextKey, sess)
	}

	called := false
	err := RequireAdmin()(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return err, called
}

func TestRequireAdmin_AllowsAdmins(t *testing.T) {
	sess := &domain.Session{ID: "s1", Profile: domain.Profile{ID: "u1", IsAdmin: true}}
	err, called := runAdmin(t, sess)
	if err != nil || !called {
		t.Fatalf("admin must pass, err=%v called=%v", err, called)
	}
}

func TestRequireAdmin_RejectsNonAdmins(t *testing.T) {
	sess := &domain.Session{ID: "s1", Profile: domain.Profile{ID: "u1"}}
	err, called := runAdmin(t, sess)
	if called {
		t.Error("non-admin must not reach the handler")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestRequireAdmin_RejectsMissingSession(t *testing.T) {
	err, called := runAdmin(t, nil)
	if called {
		t.Error("missing session must not reach the handler")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}
