package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nmixx-fans/streaming-backend/internal/config"
	"github.com/nmixx-fans/streaming-backend/internal/handlers"
)

type Handlers struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Songs         *handlers.SongHandler
	Leaderboard   *handlers.LeaderboardHandler
	Verifications *handlers.VerificationHandler
	Users         *handlers.UserHandler
	Stats         *handlers.StatsHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	api.Get("/health", h.Health.Check)

	api.Post("/auth/login", h.Auth.Login)

	api.Get("/songs", h.Songs.GetAll)
	api.Get("/songs/:id", h.Songs.GetByID)

	api.Get("/leaderboard", h.Leaderboard.Get)

	api.Post("/verifications", h.Verifications.Submit)
	api.Get("/verifications/:id", h.Verifications.GetByID)
	api.Put("/verifications/:id/approve", h.Verifications.Approve)
	api.Put("/verifications/:id/reject", h.Verifications.Reject)

	// /users/id must be registered before the :username catch-all.
	api.Get("/users/id/:id", h.Users.GetByID)
	api.Get("/users/:username", h.Users.GetByUsername)

	api.Get("/stats", h.Stats.Get)

	// Raw proof images.
	app.Static("/uploads", cfg.UploadDir)
}
