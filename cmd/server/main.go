package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "authapi/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"authapi/internal/auth"
	"authapi/internal/cache"
	"authapi/internal/config"
	"authapi/internal/handler"
	"authapi/internal/logging"
	"authapi/internal/repository"
	"authapi/internal/router"
	"authapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Auth API
// @version 1.0
// @description User registration, login and bearer-token protected profile lookup.
// @host localhost:3000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// The store must be reachable before we accept any request.
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	userRepo, closeStore, err := repository.Open(connectCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()
	logger.Info("connected to credential store", "driver", cfg.StoreDriver)

	var cacheClient *cache.Client
	if cfg.CacheEnabled() {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cacheClient.Close()
		if err := cacheClient.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, profile cache will miss", "error", err)
		}
	}

	// Initialize auth components
	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		return err
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService)
	userService := service.NewUserService(userRepo, cacheClient, cfg.UserCacheTTL)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, logger, jwtService, authHandler, userHandler)

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
	}
	logger.Info("starting server", "config", cfg, "swagger", swaggerURL)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return e.Shutdown(shutdownCtx)
}
