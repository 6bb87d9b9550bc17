package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/admin-dashboard/internal/handler"    // handlers that implement business logic
	"github.com/iliyamo/admin-dashboard/internal/middleware" // session guard and rate limiting
	"github.com/iliyamo/admin-dashboard/internal/repository" // user repository needed by the session guard
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check that
// load balancers and monitoring systems can probe.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Register and login do
// not require a session; check-session sits behind the session guard so it
// reflects the caller's live account state.  The rate limiter wraps the
// unauthenticated group to slow down credential stuffing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, users *repository.UserRepo, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	// check-session lives under the same prefix but behind the guard: it
	// answers whether the presented credential still maps to a live,
	// unblocked account.
	g.GET("/check-session", a.CheckSession, middleware.SessionGuard(jwtSecret, users))
}

// RegisterUsers registers the dashboard's user table and moderation routes.
// Every route requires a valid session; the guard re-reads the caller's
// record on each request so freshly blocked users lose access immediately.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, users *repository.UserRepo, jwtSecret string) {
	g := e.Group("/v1/users")
	g.Use(middleware.SessionGuard(jwtSecret, users))
	g.GET("", h.List)
	g.PUT("/block", h.SetStatus)
	g.PUT("/unblock", h.Unblock)
	g.DELETE("", h.Delete)
}
