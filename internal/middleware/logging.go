package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/user-service/internal/logger"
)

// Logging writes one structured line for each HTTP request.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			logger.FromContext(req.Context()).Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", latency).
				Msg("request handled")

			return err
		}
	}
}
