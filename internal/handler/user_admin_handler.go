package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/user-service/internal/dto"
	"github.com/octobees/user-service/internal/repository"
	"github.com/octobees/user-service/internal/service"
)

// UserAdminHandler exposes administrative user management endpoints.
type UserAdminHandler struct {
	users *service.UserService
}

// NewUserAdminHandler constructs a handler instance.
func NewUserAdminHandler(users *service.UserService) *UserAdminHandler {
	return &UserAdminHandler{users: users}
}

// List returns all users.
func (h *UserAdminHandler) List(c echo.Context) error {
	records, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	return c.JSON(http.StatusOK, records)
}

// Search filters users by username, email and first name.
func (h *UserAdminHandler) Search(c echo.Context) error {
	var q dto.SearchUsersQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid query parameters").SetInternal(err)
	}

	records, err := h.users.SearchUsers(c.Request().Context(), q)
	if err != nil {
		return fmt.Errorf("search users: %w", err)
	}
	if len(records) == 0 {
		return Message(c, http.StatusOK, "No users found")
	}
	return c.JSON(http.StatusOK, records)
}

// Update modifies an existing user.
func (h *UserAdminHandler) Update(c echo.Context) error {
	var req dto.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateUser(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user.
func (h *UserAdminHandler) Delete(c echo.Context) error {
	if err := h.users.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return userError(c, err)
	}
	return Message(c, http.StatusOK, "User deleted successfully")
}

func userError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrInvalidUserID):
		return Detail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrUserNotFound):
		return Detail(c, http.StatusNotFound, "User not found")
	case errors.As(err, &verr):
		return Detail(c, http.StatusBadRequest, "error came "+verr.Message)
	default:
		return err
	}
}
