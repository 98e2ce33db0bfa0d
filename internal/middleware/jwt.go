package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/octobees/user-service/internal/auth"
	"github.com/octobees/user-service/internal/logger"
)

// JWT validates bearer tokens and stores the caller identity in the request context.
func JWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "Not authenticated")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return unauthorized(c, "Invalid authorization header")
			}

			claims, err := manager.ParseToken(strings.TrimSpace(parts[1]))
			if err != nil {
				logger.FromContext(c.Request().Context()).Debug().Err(err).Msg("rejecting bearer token")
				return unauthorized(c, "Invalid token")
			}

			identity, err := claims.Identity()
			if err != nil {
				return unauthorized(c, "Invalid authentication token")
			}

			c.Set(ContextKeyUsername, identity.Username)
			c.Set(ContextKeyUserRole, identity.Role)

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return detail(c, http.StatusUnauthorized, message)
}
