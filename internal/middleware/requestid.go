package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/user-service/internal/logger"
)

// RequestID injects an identifier for traceability if the caller did not
// provide one, and attaches a logger carrying it to the request context.
func RequestID(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}

			c.Set(ContextKeyRequestID, rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			req := c.Request()
			reqLog := log.Child("request_id", rid)
			c.SetRequest(req.WithContext(reqLog.WithContext(req.Context())))

			return next(c)
		}
	}
}

func requestIDFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeyRequestID).(string); ok {
		return val
	}
	return ""
}
