package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/majikku/community-api/internal/api/middleware"
	"github.com/majikku/community-api/internal/core/domain"
)

// ctxActor extracts the session actor injected by the Auth middleware and
// fast-fails before any service call when the claims are missing or
// structurally unusable (no subject id).
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok || actor.ID == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
