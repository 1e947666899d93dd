package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nmixx-fans/streaming-backend/internal/clock"
	"github.com/nmixx-fans/streaming-backend/internal/database"
	"github.com/nmixx-fans/streaming-backend/internal/dto"
)

type HealthHandler struct {
	clock clock.Clock
}

func NewHealthHandler(clk clock.Clock) *HealthHandler {
	return &HealthHandler{clock: clk}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "healthy",
		Timestamp: h.clock.Now().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
