package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/octobees/user-service/internal/auth"
	"github.com/octobees/user-service/internal/dto"
	"github.com/octobees/user-service/internal/entity"
	"github.com/octobees/user-service/internal/logger"
	"github.com/octobees/user-service/internal/repository"
)

// AuthService registers users and exchanges credentials for access tokens.
type AuthService struct {
	users       repository.UsersRepository
	jwt         *auth.JWTManager
	phoneRegion string
}

// NewAuthService constructs a new AuthService. phoneRegion is the region
// assumed for phone numbers given without a country code.
func NewAuthService(users repository.UsersRepository, jwtManager *auth.JWTManager, phoneRegion string) *AuthService {
	if phoneRegion == "" {
		phoneRegion = defaultPhoneRegion
	}
	return &AuthService{users: users, jwt: jwtManager, phoneRegion: phoneRegion}
}

// Register validates and persists a new user. Rule violations are returned
// as *ValidationError; anything else is an infrastructure failure.
func (s *AuthService) Register(ctx context.Context, in dto.RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, invalid("username is required")
	}
	if in.Password == "" {
		return nil, invalid("password is required")
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	phone, err := normalizePhone(in.PhoneNumber, s.phoneRegion)
	if err != nil {
		return nil, err
	}
	role, err := normalizeRole(in.Role)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, invalid("Username already taken")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, entity.User{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hashed,
		Role:         role,
		PhoneNumber:  phone,
		State:        strings.TrimSpace(in.State),
	})
	if err != nil {
		return nil, mapDuplicate(err)
	}

	logger.FromContext(ctx).Info().Str("user_id", user.ID.String()).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// Authenticate verifies credentials. ok is false when the username is
// unknown or the password does not match; err is reserved for failures.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (token string, ok bool, err error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find user: %w", err)
	}

	match, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return "", false, err
	}
	if !match {
		logger.FromContext(ctx).Debug().Str("user_id", user.ID.String()).Msg("password mismatch")
		return "", false, nil
	}

	token, err = s.jwt.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", false, fmt.Errorf("issue token: %w", err)
	}

	return token, true, nil
}

func mapDuplicate(err error) error {
	switch {
	case errors.Is(err, repository.ErrUsernameDuplicate):
		return invalid("Username already taken")
	case errors.Is(err, repository.ErrEmailDuplicate):
		return invalid("Email already registered")
	default:
		return err
	}
}
