package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/user-service/internal/auth"
	"github.com/octobees/user-service/internal/dto"
	"github.com/octobees/user-service/internal/entity"
	"github.com/octobees/user-service/internal/repository"
)

// UserService encapsulates administrative operations for users.
type UserService struct {
	repo        repository.UsersRepository
	phoneRegion string
}

// NewUserService builds a new UserService instance.
func NewUserService(repo repository.UsersRepository, phoneRegion string) *UserService {
	if phoneRegion == "" {
		phoneRegion = defaultPhoneRegion
	}
	return &UserService{repo: repo, phoneRegion: phoneRegion}
}

// ListUsers returns all users as DTOs.
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

// SearchUsers returns users matching every supplied filter.
func (s *UserService) SearchUsers(ctx context.Context, q dto.SearchUsersQuery) ([]dto.UserResponse, error) {
	users, err := s.repo.Search(ctx, repository.UserFilter{
		Username:  q.Username,
		Email:     q.Email,
		FirstName: q.FirstName,
	})
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

// UpdateUser mutates selected user fields.
func (s *UserService) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	var patch repository.UserPatch

	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		if trimmed == "" {
			return nil, invalid("username cannot be empty")
		}
		patch.Username = &trimmed
	}
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}
	if req.FirstName != nil {
		trimmed := strings.TrimSpace(*req.FirstName)
		patch.FirstName = &trimmed
	}
	if req.LastName != nil {
		trimmed := strings.TrimSpace(*req.LastName)
		patch.LastName = &trimmed
	}
	if req.PhoneNumber != nil {
		phone, err := normalizePhone(*req.PhoneNumber, s.phoneRegion)
		if err != nil {
			return nil, err
		}
		patch.PhoneNumber = &phone
	}
	if req.Role != nil {
		role, err := normalizeRole(*req.Role)
		if err != nil {
			return nil, err
		}
		patch.Role = &role
	}
	if req.Password != nil {
		if strings.TrimSpace(*req.Password) == "" {
			return nil, invalid("password cannot be empty")
		}
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hashed
	}

	user, err := s.repo.Update(ctx, userID, patch)
	if err != nil {
		return nil, mapDuplicate(err)
	}

	resp := toResponse(*user)
	return &resp, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidUserID
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	return nil
}

func toResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID.String(),
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		State:       u.State,
	}
}

func toResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	return responses
}
