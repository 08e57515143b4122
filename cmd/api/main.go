// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/carterperez-dev/garage-saas/internal/auth"
	"github.com/carterperez-dev/garage-saas/internal/chat"
	"github.com/carterperez-dev/garage-saas/internal/config"
	"github.com/carterperez-dev/garage-saas/internal/core"
	"github.com/carterperez-dev/garage-saas/internal/customer"
	"github.com/carterperez-dev/garage-saas/internal/garage"
	"github.com/carterperez-dev/garage-saas/internal/health"
	"github.com/carterperez-dev/garage-saas/internal/middleware"
	"github.com/carterperez-dev/garage-saas/internal/monitoring"
	"github.com/carterperez-dev/garage-saas/internal/server"
	"github.com/carterperez-dev/garage-saas/internal/vehicle"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
		"query_timeout", cfg.Database.QueryTimeout,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("session tokens initialized",
		"algorithm", "HS256",
		"key_id", tokens.KeyID(),
		"ttl", cfg.JWT.TokenTTL,
	)

	garageRepo := garage.NewRepository(db.DB)
	authSvc := auth.NewService(garageRepo, tokens, cfg.Subscription)
	authHandler := auth.NewHandler(authSvc)
	garageHandler := garage.NewHandler(garageRepo)

	vehicleSvc := vehicle.NewService(vehicle.NewRepository(db.DB))
	vehicleHandler := vehicle.NewHandler(vehicleSvc)

	customerSvc := customer.NewService(customer.NewRepository(db.DB))
	customerHandler := customer.NewHandler(customerSvc, vehicleSvc)

	chatSvc := chat.NewService(
		chat.NewRepository(db.DB),
		chat.NewClassifier(cfg.Chatbot.Language),
	)
	chatHandler := chat.NewHandler(chatSvc)

	healthHandler := health.NewHandler(db, redis)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			Scope:    "ip",
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	if cfg.Metrics.Enabled {
		registry, regErr := monitoring.NewRegistry(db.DB.DB, redis)
		if regErr != nil {
			return regErr
		}
		router.Method(http.MethodGet, cfg.Metrics.Path, registry.Handler())
	}

	credentialLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(
			cfg.RateLimit.AuthRequests,
			cfg.RateLimit.AuthBurst,
			cfg.RateLimit.Window,
		),
		Scope:    "auth",
		FailOpen: true,
	}).Handler

	garageLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Window,
		),
		Scope:    "garage",
		KeyFunc:  middleware.KeyByGarage,
		FailOpen: true,
	}).Handler

	verify := middleware.Authenticator(tokens)
	authenticated := func(next http.Handler) http.Handler {
		return verify(garageLimiter(next))
	}

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, credentialLimiter)
		garageHandler.RegisterRoutes(r, authenticated)
		vehicleHandler.RegisterRoutes(r, authenticated)
		customerHandler.RegisterRoutes(r, authenticated)
		chatHandler.RegisterRoutes(r, authenticated, credentialLimiter)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
