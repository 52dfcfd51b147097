package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
)

const sessionContextKey = "portal_session"

// Session resolves the bearer session id against the store and injects the
// session into context. Unknown or expired sessions force re-login.
func Session(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			sess, err := sessions.Resume(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired, log in again")
			}

			SetSession(c, sess)
			return next(c)
		}
	}
}

// SetSession injects a resolved session into the request context.
func SetSession(c echo.Context, sess *domain.Session) {
	c.Set(sessionContextKey, sess)
}

// CurrentSession extracts the session injected by the Session middleware.
func CurrentSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}
