package router

import (
	"github.com/labstack/echo/v4"

	"github.com/octobees/user-service/internal/auth"
	"github.com/octobees/user-service/internal/config"
	"github.com/octobees/user-service/internal/handler"
	middlewarepkg "github.com/octobees/user-service/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth   *handler.AuthHandler
	Users  *handler.UserAdminHandler
	Health *handler.HealthHandler
}

// Register wires all HTTP routes for the API, together with the validator
// and error handler they rely on.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = handler.ErrorHandler()

	if handlers.Health != nil {
		e.GET("/", handlers.Health.Root)
		e.GET("/healthz", handlers.Health.Health)
	}

	e.POST("/signup", handlers.Auth.Signup)
	e.POST("/login", handlers.Auth.Login, middlewarepkg.RateLimit(cfg.RateLimitLogin, "login rate limit exceeded"))

	// Route-level rather than an e.Group("") so unknown paths still 404
	// instead of hitting the token check.
	adminOnly := []echo.MiddlewareFunc{middlewarepkg.JWT(jwtManager), middlewarepkg.AdminRequired()}
	e.GET("/admin-only", handlers.Auth.AdminOnly, adminOnly...)

	if handlers.Users != nil {
		users := e.Group("/auth/user", adminOnly...)
		users.GET("/admin/fetch-all-users", handlers.Users.List)
		users.GET("/admin/search-user", handlers.Users.Search)
		users.PUT("/update/:id", handlers.Users.Update)
		users.DELETE("/delete/:id", handlers.Users.Delete)
	}
}
