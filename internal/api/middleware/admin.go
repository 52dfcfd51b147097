package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/domain"
)

// RequireAdmin gates the moderation views on the cached profile's is_admin
// flag. The backend enforces the same rule authoritatively; this just keeps
// non-admins out of the admin surface.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := c.Get(sessionContextKey).(*domain.Session)
			if sess == nil || !sess.Profile.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
