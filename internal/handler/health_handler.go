package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/user-service/internal/database"
	"github.com/octobees/user-service/internal/logger"
)

// HealthHandler serves the root greeting and the readiness probe.
type HealthHandler struct {
	db database.Pinger
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db database.Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root handles GET /.
func (h *HealthHandler) Root(c echo.Context) error {
	return Message(c, http.StatusOK, "Welcome to the API")
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(c echo.Context) error {
	if err := database.Healthy(c.Request().Context(), h.db); err != nil {
		logger.FromContext(c.Request().Context()).Warn().Err(err).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
