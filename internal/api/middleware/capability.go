package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/majikku/community-api/internal/core/domain"
)

// Require rejects the request unless the session actor's capability snapshot
// passes check. Must run after Auth.
func Require(check func(domain.CapabilitySet) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !check(actor.Capabilities) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireStaff gates the admin panel surface: any capability flag suffices.
func RequireStaff() echo.MiddlewareFunc {
	return Require(domain.CapabilitySet.CanViewAdminPanel)
}
