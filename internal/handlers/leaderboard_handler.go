package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nmixx-fans/streaming-backend/internal/dto"
	"github.com/nmixx-fans/streaming-backend/internal/services"
)

type LeaderboardHandler struct {
	leaderboard *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboard *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Get handles GET /leaderboard?filter=&songId= — per-song ranking when
// songId is given, per-user aggregate otherwise.
func (h *LeaderboardHandler) Get(c *fiber.Ctx) error {
	timeFilter := c.Query("filter", services.FilterAll)

	var songID *uint
	if raw := c.Query("songId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid songId"})
		}
		id := uint(parsed)
		songID = &id
	}

	entries, err := h.leaderboard.Leaderboard(timeFilter, songID)
	if err != nil {
		slog.Error("failed to build leaderboard", "error", err, "filter", timeFilter)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to load leaderboard"})
	}
	return c.JSON(entries)
}
