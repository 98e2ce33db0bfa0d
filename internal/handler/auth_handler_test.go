package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/user-service/internal/auth"
	"github.com/octobees/user-service/internal/dto"
	"github.com/octobees/user-service/internal/entity"
	"github.com/octobees/user-service/internal/middleware"
	"github.com/octobees/user-service/internal/repository"
	"github.com/octobees/user-service/internal/service"
)

type stubAuthenticator struct {
	register     func(ctx context.Context, in dto.RegisterInput) (*entity.User, error)
	authenticate func(ctx context.Context, username, password string) (string, bool, error)
}

func (s *stubAuthenticator) Register(ctx context.Context, in dto.RegisterInput) (*entity.User, error) {
	if s.register != nil {
		return s.register(ctx, in)
	}
	return nil, errors.New("not implemented")
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, username, password string) (string, bool, error) {
	if s.authenticate != nil {
		return s.authenticate(ctx, username, password)
	}
	return "", false, errors.New("not implemented")
}

func signupPayload() map[string]string {
	return map[string]string{
		"username":     "alice",
		"email":        "a@x.com",
		"first_name":   "A",
		"last_name":    "L",
		"password":     "p",
		"role":         "user",
		"phone_number": "555",
		"state":        "CA",
	}
}

func authRoutes(h *AuthHandler) *echo.Echo {
	e := newTestEcho()
	e.POST("/signup", h.Signup)
	e.POST("/login", h.Login)
	return e
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("success binds every field by name", func(t *testing.T) {
		var got dto.RegisterInput
		h := NewAuthHandler(&stubAuthenticator{
			register: func(ctx context.Context, in dto.RegisterInput) (*entity.User, error) {
				got = in
				return &entity.User{ID: uuid.New(), Username: in.Username}, nil
			},
		})

		rec := httptest.NewRecorder()
		authRoutes(h).ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/signup", signupPayload()))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var body dto.MessageResponse
		decode(t, rec, &body)
		if body.Message != "User created successfully" {
			t.Fatalf("unexpected message %q", body.Message)
		}
		want := dto.RegisterInput{
			Username:    "alice",
			Email:       "a@x.com",
			FirstName:   "A",
			LastName:    "L",
			Password:    "p",
			Role:        "user",
			PhoneNumber: "555",
			State:       "CA",
		}
		if got != want {
			t.Fatalf("unexpected register input: %+v", got)
		}
	})

	t.Run("domain error", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthenticator{
			register: func(ctx context.Context, in dto.RegisterInput) (*entity.User, error) {
				return nil, &service.ValidationError{Message: "Username already taken"}
			},
		})

		rec := httptest.NewRecorder()
		authRoutes(h).ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/signup", signupPayload()))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var body DetailResponse
		decode(t, rec, &body)
		if body.Detail != "error came Username already taken" {
			t.Fatalf("unexpected detail %q", body.Detail)
		}
	})

	t.Run("unexpected error is not a 400", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthenticator{
			register: func(ctx context.Context, in dto.RegisterInput) (*entity.User, error) {
				return nil, errors.New("connection reset")
			},
		})

		rec := httptest.NewRecorder()
		authRoutes(h).ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/signup", signupPayload()))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("missing field never reaches the collaborator", func(t *testing.T) {
		called := false
		h := NewAuthHandler(&stubAuthenticator{
			register: func(ctx context.Context, in dto.RegisterInput) (*entity.User, error) {
				called = true
				return nil, nil
			},
		})
		payload := signupPayload()
		delete(payload, "state")

		rec := httptest.NewRecorder()
		authRoutes(h).ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/signup", payload))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if called {
			t.Fatalf("register must not be called")
		}
		var body DetailResponse
		decode(t, rec, &body)
		if body.Detail != "state: field required" {
			t.Fatalf("unexpected detail %q", body.Detail)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthenticator{})

		rec := httptest.NewRecorder()
		authRoutes(h).ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/signup", "{"))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthenticator{
			authenticate: func(ctx context.Context, username, password string) (string, bool, error) {
				if username != "alice" || password != "pw1" {
					t.Fatalf("unexpected credentials %q/%q", username, password)
				}
				return "T", true, nil
			},
		})

		rec := httptest.NewRecorder()
		authRoutes(h).ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "pw1"}))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var body dto.LoginResponse
		decode(t, rec, &body)
		if body.AccessToken != "T" || body.TokenType != "bearer" {
			t.Fatalf("unexpected response %+v", body)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthenticator{
			authenticate: func(ctx context.Context, username, password string) (string, bool, error) {
				return "", false, nil
			},
		})

		rec := httptest.NewRecorder()
		authRoutes(h).ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "nope"}))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if rec.Header().Get("WWW-Authenticate") != "Bearer" {
			t.Fatalf("expected WWW-Authenticate header")
		}
		var body DetailResponse
		decode(t, rec, &body)
		if body.Detail != "Invalid credentials" {
			t.Fatalf("unexpected detail %q", body.Detail)
		}
	})

	t.Run("collaborator failure", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthenticator{
			authenticate: func(ctx context.Context, username, password string) (string, bool, error) {
				return "", false, errors.New("db down")
			},
		})

		rec := httptest.NewRecorder()
		authRoutes(h).ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "pw1"}))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		h := NewAuthHandler(&stubAuthenticator{})

		rec := httptest.NewRecorder()
		authRoutes(h).ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/login", map[string]string{"username": "alice"}))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_AdminOnly(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthenticator{})

	t.Run("admin identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin-only", nil), rec)
		c.Set(middleware.ContextKeyUsername, "root")
		c.Set(middleware.ContextKeyUserRole, "admin")

		if err := h.AdminOnly(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var body dto.MessageResponse
		decode(t, rec, &body)
		if body.Message != "Welcome Admin admin" {
			t.Fatalf("unexpected message %q", body.Message)
		}
	})

	t.Run("no identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin-only", nil), rec)

		err := h.AdminOnly(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 http error, got %v", err)
		}
	})
}

func TestAdminGreeting(t *testing.T) {
	got := AdminGreeting(auth.Identity{Username: "root", Role: "admin"})
	if got.Message != "Welcome Admin admin" {
		t.Fatalf("unexpected greeting %q", got.Message)
	}
}

// The alice scenarios post the documented signup payload through the real
// registration service over a stub repository.
func TestAuthHandler_AliceScenarios(t *testing.T) {
	var stored *entity.User
	repo := &stubUsersRepo{
		findByUsername: func(ctx context.Context, username string) (*entity.User, error) {
			if stored != nil && stored.Username == username {
				return stored, nil
			}
			return nil, repository.ErrUserNotFound
		},
		create: func(ctx context.Context, user entity.User) (*entity.User, error) {
			user.ID = uuid.New()
			stored = &user
			return stored, nil
		},
	}
	jwtManager := auth.NewJWTManager("test-secret", 0)
	e := authRoutes(NewAuthHandler(service.NewAuthService(repo, jwtManager, "US")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/signup", signupPayload()))
	if rec.Code != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var created dto.MessageResponse
	decode(t, rec, &created)
	if created.Message != "User created successfully" {
		t.Fatalf("unexpected signup message %q", created.Message)
	}
	if stored == nil || stored.PasswordHash == "p" {
		t.Fatalf("expected hashed password to be stored")
	}
	if stored.PhoneNumber != "555" || stored.Email != "a@x.com" {
		t.Fatalf("unexpected stored contact fields: %q %q", stored.PhoneNumber, stored.Email)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/signup", signupPayload()))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup: expected 400, got %d", rec.Code)
	}
	var dup DetailResponse
	decode(t, rec, &dup)
	if dup.Detail != "error came Username already taken" {
		t.Fatalf("unexpected detail %q", dup.Detail)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "wrong"}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "p"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}
	var login dto.LoginResponse
	decode(t, rec, &login)
	claims, err := jwtManager.ParseToken(login.AccessToken)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != "user" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}
