package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/user-service/internal/auth"
	"github.com/octobees/user-service/internal/dto"
	"github.com/octobees/user-service/internal/entity"
	"github.com/octobees/user-service/internal/middleware"
	"github.com/octobees/user-service/internal/service"
)

// Authenticator registers users and exchanges credentials for tokens.
// *service.AuthService is the production implementation.
type Authenticator interface {
	Register(ctx context.Context, in dto.RegisterInput) (*entity.User, error)
	Authenticate(ctx context.Context, username, password string) (token string, ok bool, err error)
}

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authenticator Authenticator) *AuthHandler {
	return &AuthHandler{auth: authenticator}
}

// Signup handles POST /signup requests.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.auth.Register(c.Request().Context(), req.Input()); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return Detail(c, http.StatusBadRequest, "error came "+verr.Message)
		}
		return fmt.Errorf("register user: %w", err)
	}

	return Message(c, http.StatusOK, "User created successfully")
}

// Login handles POST /login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, ok, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fmt.Errorf("authenticate user: %w", err)
	}
	if !ok {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return Detail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token, TokenType: dto.TokenType})
}

// AdminOnly handles GET /admin-only. The admin guard must run first.
func (h *AuthHandler) AdminOnly(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, AdminGreeting(identity))
}

// AdminGreeting builds the admin-only response for an authenticated identity.
func AdminGreeting(identity auth.Identity) dto.MessageResponse {
	return dto.MessageResponse{Message: "Welcome Admin " + identity.Role}
}
