package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// limiterIdentity derives the rate-limit bucket key for a request.
// Authenticated callers are limited per user so one busy holder cannot
// starve others behind the same NAT; anonymous callers fall back to the
// client IP.
func limiterIdentity(c echo.Context) string {
	if id := UserID(c); id > 0 {
		return fmt.Sprintf("user:%d", id)
	}
	return "ip:" + c.RealIP()
}
