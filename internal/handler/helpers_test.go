package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/user-service/internal/entity"
	"github.com/octobees/user-service/internal/repository"
)

type stubUsersRepo struct {
	findByUsername func(ctx context.Context, username string) (*entity.User, error)
	create         func(ctx context.Context, user entity.User) (*entity.User, error)
	list           func(ctx context.Context) ([]entity.User, error)
	search         func(ctx context.Context, filter repository.UserFilter) ([]entity.User, error)
	update         func(ctx context.Context, id uuid.UUID, patch repository.UserPatch) (*entity.User, error)
	delete         func(ctx context.Context, id uuid.UUID) error
}

func (s *stubUsersRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if s.findByUsername != nil {
		return s.findByUsername(ctx, username)
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	if s.create != nil {
		return s.create(ctx, user)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) List(ctx context.Context) ([]entity.User, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) Search(ctx context.Context, filter repository.UserFilter) ([]entity.User, error) {
	if s.search != nil {
		return s.search(ctx, filter)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) Update(ctx context.Context, id uuid.UUID, patch repository.UserPatch) (*entity.User, error) {
	if s.update != nil {
		return s.update(ctx, id, patch)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return errors.New("not implemented")
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler()
	return e
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var body []byte
	switch p := payload.(type) {
	case nil:
	case string:
		body = []byte(p)
	default:
		var err error
		body, err = json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}
