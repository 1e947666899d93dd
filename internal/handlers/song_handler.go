package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/nmixx-fans/streaming-backend/internal/dto"
	"github.com/nmixx-fans/streaming-backend/internal/services"
)

type SongHandler struct {
	songs *services.SongService
}

func NewSongHandler(songs *services.SongService) *SongHandler {
	return &SongHandler{songs: songs}
}

// GetAll lists the catalog ordered by cached stream count, highest first.
func (h *SongHandler) GetAll(c *fiber.Ctx) error {
	songs, err := h.songs.GetAll()
	if err != nil {
		slog.Error("failed to list songs", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to load songs"})
	}
	return c.JSON(songs)
}

func (h *SongHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid song id"})
	}

	song, err := h.songs.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrSongNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Song not found"})
		}
		slog.Error("failed to load song", "error", err, "id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to load song"})
	}
	return c.JSON(song)
}
