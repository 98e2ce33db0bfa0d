package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/octobees/user-service/internal/auth"
)

// Context keys used to store authentication metadata.
const (
	ContextKeyUsername  = "username"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

// IdentityFromContext returns the caller identity stored by JWT.
func IdentityFromContext(c echo.Context) (auth.Identity, bool) {
	username, _ := c.Get(ContextKeyUsername).(string)
	role, _ := c.Get(ContextKeyUserRole).(string)
	if username == "" || role == "" {
		return auth.Identity{}, false
	}
	return auth.Identity{Username: username, Role: role}, true
}

func detail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"detail": message})
}
