// Package middleware holds the reusable Echo middleware: bearer-token
// authentication, role guards, a Redis token-bucket rate limiter and a
// Redis response cache.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yeep/bus-reservation/internal/utils"
)

// Context keys populated by JWTAuth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// JWTAuth validates a Bearer access token and injects the subject and
// role claims into the request context.  The secret must match the one
// used when issuing tokens.  Handlers behind this middleware read the
// caller through UserID(c) and c.Get(CtxRole).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			uid := claims.UserID()
			if uid == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			c.Set(CtxUserID, uid)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// UserID returns the authenticated user's id from the context, or 0
// when the request is unauthenticated.
func UserID(c echo.Context) uint64 {
	if id, ok := c.Get(CtxUserID).(uint64); ok {
		return id
	}
	return 0
}
