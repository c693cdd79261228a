package middleware // reusable HTTP middleware: identity, roles, rate limiting and caching

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/2ellamills/fitness-class/internal/utils"
)

// JWTAuth requires a valid Bearer token and stores the actor it names in
// the request context (see ActorFrom).  The secret must match the identity
// provider's signing key.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			actor, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			setActor(c, actor)
			return next(c)
		}
	}
}

// OptionalJWT is JWTAuth for public routes: a valid token sets the actor, no
// token leaves the request anonymous.  A token that is present but invalid
// is still rejected so clients notice expired sessions.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c)
			if !ok {
				return next(c)
			}
			actor, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			setActor(c, actor)
			return next(c)
		}
	}
}

func bearer(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return raw, raw != ""
}
