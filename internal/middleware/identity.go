package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/2ellamills/fitness-class/internal/model"
)

// Context keys set by JWTAuth and OptionalJWT.
const (
	ctxActor  = "actor"
	ctxUserID = "user_id"
	ctxRole   = "role"
)

func setActor(c echo.Context, a *model.Actor) {
	c.Set(ctxActor, a)
	c.Set(ctxUserID, a.ID)
	c.Set(ctxRole, a.Role)
}

// ActorFrom returns the authenticated actor, or nil for anonymous requests.
func ActorFrom(c echo.Context) *model.Actor {
	a, _ := c.Get(ctxActor).(*model.Actor)
	return a
}

// currentUserID is the actor id used in rate limit keys.
func currentUserID(c echo.Context) string {
	if s, ok := c.Get(ctxUserID).(string); ok && s != "" {
		return s
	}
	return "anon"
}
