package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/majikku/community-api/internal/core/domain"
)

// actorKey is the echo context key the Auth middleware stores the actor under.
const actorKey = "actor"

// IssueToken mints a session token carrying the actor's identity and
// capability snapshot. Flags are resolved once at login; a role change takes
// effect on the next login.
func IssueToken(secret string, ttl time.Duration, actor domain.Actor) (string, error) {
	claims := jwt.MapClaims{
		"sub":         actor.ID,
		"username":    actor.Username,
		"avatar_url":  actor.AvatarURL,
		"admin":       actor.Capabilities.Admin,
		"coordinator": actor.Capabilities.Coordinator,
		"storyteller": actor.Capabilities.Storyteller,
		"wiki_lead":   actor.Capabilities.WikiLead,
		"wiki_editor": actor.Capabilities.WikiEditor,
		"exp":         time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Auth validates the session JWT and injects the actor into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
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

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(actorKey, actorFromClaims(claims))
			return next(c)
		}
	}
}

func actorFromClaims(claims jwt.MapClaims) domain.Actor {
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}
	flag := func(key string) bool {
		v, _ := claims[key].(bool)
		return v
	}
	return domain.Actor{
		ID:        str("sub"),
		Username:  str("username"),
		AvatarURL: str("avatar_url"),
		Capabilities: domain.CapabilitySet{
			Admin:       flag("admin"),
			Coordinator: flag("coordinator"),
			Storyteller: flag("storyteller"),
			WikiLead:    flag("wiki_lead"),
			WikiEditor:  flag("wiki_editor"),
		},
	}
}

// ActorFrom extracts the actor injected by Auth. ok is false when the
// middleware did not run on this route.
func ActorFrom(c echo.Context) (domain.Actor, bool) {
	actor, ok := c.Get(actorKey).(domain.Actor)
	return actor, ok
}
