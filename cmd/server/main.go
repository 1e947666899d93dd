package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/nmixx-fans/streaming-backend/internal/clock"
	"github.com/nmixx-fans/streaming-backend/internal/config"
	"github.com/nmixx-fans/streaming-backend/internal/database"
	"github.com/nmixx-fans/streaming-backend/internal/dto"
	"github.com/nmixx-fans/streaming-backend/internal/handlers"
	"github.com/nmixx-fans/streaming-backend/internal/logging"
	"github.com/nmixx-fans/streaming-backend/internal/middleware"
	"github.com/nmixx-fans/streaming-backend/internal/routes"
	"github.com/nmixx-fans/streaming-backend/internal/services"
	"github.com/nmixx-fans/streaming-backend/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout); the database sink joins once the
	// connection is up.
	consoleLog := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(consoleLog))

	cfg := config.Load()

	// Every stored timestamp and leaderboard window uses this clock.
	clk, err := clock.NewInZone(cfg.Timezone)
	if err != nil {
		slog.Error("invalid APP_TIMEZONE", "zone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	if err := database.SeedSongs(database.DB); err != nil {
		slog.Error("song seeding failed", "error", err)
		os.Exit(1)
	}

	// Mirror ERROR+ logs into system_logs (async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.Tee(consoleLog, dbLogHandler)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Proof image storage
	files, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		slog.Error("upload dir setup failed", "error", err)
		os.Exit(1)
	}

	// Services
	userService := services.NewUserService(database.DB)
	songService := services.NewSongService(database.DB)
	verificationService := services.NewVerificationService(database.DB, files, clk)
	leaderboardService := services.NewLeaderboardService(database.DB, clk)
	statsService := services.NewStatsService(database.DB)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.MaxUploadSize,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))

	routes.Setup(app, cfg, routes.Handlers{
		Health:        handlers.NewHealthHandler(clk),
		Auth:          handlers.NewAuthHandler(userService),
		Songs:         handlers.NewSongHandler(songService),
		Leaderboard:   handlers.NewLeaderboardHandler(leaderboardService),
		Verifications: handlers.NewVerificationHandler(verificationService),
		Users:         handlers.NewUserHandler(userService, verificationService),
		Stats:         handlers.NewStatsHandler(statsService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: message})
}
