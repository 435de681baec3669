package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/api/middleware"
	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

// OAuthProvider is the slice of the Discord client the login flow needs.
type OAuthProvider interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	Identify(ctx context.Context, accessToken string) (*domain.Actor, error)
}

// AuthHandler implements the Discord OAuth login flow. The capability
// snapshot is resolved once here and baked into the session token.
type AuthHandler struct {
	oauth      OAuthProvider
	resolver   ports.RoleResolver
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthHandler(oauth OAuthProvider, resolver ports.RoleResolver, jwtSecret string, sessionTTL time.Duration, log zerolog.Logger) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthHandler{oauth: oauth, resolver: resolver, jwtSecret: jwtSecret, sessionTTL: sessionTTL, log: log}
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  domain.Actor `json:"user"`
}

// Login redirects the browser to Discord's OAuth consent screen.
//
// @Summary      Start Discord OAuth login
// @Tags         auth
// @Success      302
// @Router       /auth/login [get]
func (h *AuthHandler) Login(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.oauth.AuthorizeURL(""))
}

// Callback completes the OAuth flow and issues a session token.
//
// @Summary      Discord OAuth callback
// @Tags         auth
// @Produce      json
// @Param        code  query     string  true  "OAuth authorization code"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing authorization code"})
	}

	ctx := c.Request().Context()
	accessToken, err := h.oauth.ExchangeCode(ctx, code)
	if err != nil {
		h.log.Error().Err(err).Msg("oauth code exchange failed")
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "login failed"})
	}

	actor, err := h.oauth.Identify(ctx, accessToken)
	if err != nil {
		h.log.Error().Err(err).Msg("oauth identify failed")
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "login failed"})
	}

	// A failed role lookup degrades to zero capabilities: the user still gets
	// a session, just without staff surfaces.
	caps, err := h.resolver.Resolve(ctx, actor.ID)
	if err != nil {
		h.log.Warn().Err(err).Str("actor_id", actor.ID).Msg("capability resolution degraded to none")
	}
	actor.Capabilities = caps

	token, err := middleware.IssueToken(h.jwtSecret, h.sessionTTL, *actor)
	if err != nil {
		h.log.Error().Err(err).Msg("session token signing failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "login failed"})
	}

	h.log.Info().Str("actor_id", actor.ID).Str("username", actor.Username).Msg("login completed")
	return c.JSON(http.StatusOK, sessionResponse{Token: token, User: *actor})
}

// Me returns the session actor, mostly so the UI can render capability-gated
// navigation.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Actor
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actor)
}
