package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/user-service/internal/dto"
	"github.com/octobees/user-service/internal/logger"
)

// DetailResponse is the error body returned by every endpoint.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Message sends a {"message": ...} body.
func Message(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, dto.MessageResponse{Message: message})
}

// Detail sends a {"detail": ...} error body.
func Detail(c echo.Context, status int, detail string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, DetailResponse{Detail: detail})
}

// ErrorHandler renders errors returned by handlers. *echo.HTTPError keeps its
// code and message; everything else becomes an opaque 500 and is logged.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		detail := http.StatusText(http.StatusInternalServerError)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			detail = fmt.Sprint(he.Message)
			if he.Internal != nil {
				logger.FromContext(c.Request().Context()).Debug().Err(he.Internal).Int("status", status).Msg(detail)
			}
		} else {
			logger.FromContext(c.Request().Context()).Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = Detail(c, status, detail)
		}
		if writeErr != nil {
			logger.FromContext(c.Request().Context()).Error().Err(writeErr).Msg("write error response")
		}
	}
}
