package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/user-service/internal/auth"
	"github.com/octobees/user-service/internal/config"
	"github.com/octobees/user-service/internal/database"
	"github.com/octobees/user-service/internal/handler"
	"github.com/octobees/user-service/internal/logger"
	middlewarepkg "github.com/octobees/user-service/internal/middleware"
	"github.com/octobees/user-service/internal/repository"
	"github.com/octobees/user-service/internal/router"
	"github.com/octobees/user-service/internal/service"
	"github.com/octobees/user-service/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("api", "info").Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New("api", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := migrations.Migrate(database.SQLDB(pool), log.Child("component", "migrate")); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)

	authService := service.NewAuthService(usersRepo, jwtManager, cfg.PhoneRegion)
	userService := service.NewUserService(usersRepo, cfg.PhoneRegion)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID(log))
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Users:  handler.NewUserAdminHandler(userService),
		Health: handler.NewHealthHandler(pool),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting HTTP server")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
