package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/user-service/internal/entity"
)

// AdminRequired rejects callers that are not admins. It must run after JWT.
func AdminRequired() echo.MiddlewareFunc {
	return requireRole(entity.RoleAdmin, "Admin access required")
}

// requireRole rejects requests whose role differs from role with denied.
func requireRole(role, denied string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			value, ok := c.Get(ContextKeyUserRole).(string)
			if !ok || value == "" {
				return detail(c, http.StatusForbidden, "missing role")
			}
			if value != role {
				return detail(c, http.StatusForbidden, denied)
			}
			return next(c)
		}
	}
}
