// Package router maps the HTTP surface onto handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/yeep/bus-reservation/internal/config"
	"github.com/yeep/bus-reservation/internal/handler"
	"github.com/yeep/bus-reservation/internal/middleware"
	"github.com/yeep/bus-reservation/internal/model"
)

// RegisterRoutes registers the unauthenticated service endpoints.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration, login and token management under
// /v1/auth.  Logout needs a valid access token so it can revoke every
// session of the caller.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))
}

// RegisterPublic registers the browse endpoints: routes, trips and seat
// availability.  No authentication, so riders can check seats before
// signing in.  The availability reads sit behind the Redis response
// cache; its short TTL bounds how stale a cached answer can be.
func RegisterPublic(e *echo.Echo, t *handler.TripHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.NewRedisCache(cacheCfg, rdb)

	e.GET("/v1/routes", t.Routes)
	e.GET("/v1/routes/:id/trips", t.TripsByRoute, cached)
	e.GET("/v1/trips/:id", t.TripByID)
	e.GET("/v1/trips/:id/availability", t.SeatAvailability, cached)
	e.GET("/v1/trips/:id/seats", t.SeatMap, cached)
}

// RegisterCustomer registers the booking lifecycle under /v1.  All
// routes require a valid JWT; booking and cancelling are additionally
// rate limited per user so a misbehaving client cannot hammer the
// ledger.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, jwtSecret string,
	rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleDriver),
	)
	limited := middleware.NewTokenBucket(rlCfg, rdb)

	g.POST("/trips/:id/bookings", b.Create, limited)
	g.DELETE("/bookings/:id", b.Cancel, limited)
	g.GET("/my-bookings", b.MyBookings)
	g.GET("/bookings/code/:code", b.ByCode)
}

// RegisterDriver registers driver-only endpoints.
func RegisterDriver(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1/driver",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleDriver),
	)
	g.GET("/routes/:id/bookings", b.Manifest)
}
