package router // package router registers the HTTP routes of the booking API

import (
	"github.com/labstack/echo/v4"

	"github.com/2ellamills/fitness-class/internal/handler"
	"github.com/2ellamills/fitness-class/internal/middleware"
	"github.com/2ellamills/fitness-class/internal/model"
)

// Handlers bundles everything the API routes need.  Limit and Cache may be
// pass-through middleware when Redis is unavailable.
type Handlers struct {
	Classes   *handler.ClassHandler
	Passes    *handler.PassHandler
	Admin     *handler.AdminHandler
	JWTSecret string
	Limit     echo.MiddlewareFunc
	Cache     echo.MiddlewareFunc
}

// RegisterRoutes registers routes that need no identity.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the catalog browse routes.  A bearer token is
// optional here; when present it fills in the per-class "booked" flag and
// enables ?mine=true.
func RegisterPublic(e *echo.Echo, h Handlers) {
	g := e.Group("/v1", middleware.OptionalJWT(h.JWTSecret))
	g.GET("/classes", h.Classes.List)
	g.GET("/classes/dates", h.Classes.Dates)
	g.GET("/classes/:id", h.Classes.Get)

	// identical for every caller, so safe to cache
	e.GET("/v1/pass-types", handler.Types, h.Cache)
}

// RegisterAuth registers the routes that act on the caller's own passes and
// bookings.  Mutations go through the rate limiter.
func RegisterAuth(e *echo.Echo, h Handlers) {
	auth := e.Group("/v1", middleware.JWTAuth(h.JWTSecret))
	auth.Use(middleware.RequireRole(model.RoleUser, model.RoleAdmin))

	auth.POST("/classes/:id/book", h.Classes.Book, h.Limit)
	auth.DELETE("/classes/:id/book", h.Classes.Cancel, h.Limit)

	auth.GET("/passes", h.Passes.List)
	auth.GET("/passes/usable", h.Passes.Usable)
	auth.POST("/passes", h.Passes.Purchase, h.Limit)

	admin := e.Group("/v1/admin", middleware.JWTAuth(h.JWTSecret), middleware.RequireRole(model.RoleAdmin))
	admin.GET("/stats", h.Admin.Stats)
}

// Register wires every route group.
func Register(e *echo.Echo, h Handlers) {
	if h.Limit == nil {
		h.Limit = noop
	}
	if h.Cache == nil {
		h.Cache = noop
	}
	RegisterRoutes(e)
	RegisterPublic(e, h)
	RegisterAuth(e, h)
}

func noop(next echo.HandlerFunc) echo.HandlerFunc { return next }
