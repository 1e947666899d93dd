package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/nmixx-fans/streaming-backend/internal/dto"
	"github.com/nmixx-fans/streaming-backend/internal/models"
	"github.com/nmixx-fans/streaming-backend/internal/services"
)

type UserHandler struct {
	users         *services.UserService
	verifications *services.VerificationService
}

func NewUserHandler(users *services.UserService, verifications *services.VerificationService) *UserHandler {
	return &UserHandler{users: users, verifications: verifications}
}

// GetByUsername handles GET /users/:username — the full profile with every
// verification regardless of status.
func (h *UserHandler) GetByUsername(c *fiber.Ctx) error {
	user, err := h.users.FindByUsername(c.Params("username"))
	if err != nil {
		return h.userError(c, err)
	}
	return h.profile(c, user, "")
}

// GetByID handles GET /users/id/:id — same shape, but the verification list
// is restricted to approved claims.
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid user id"})
	}

	user, err := h.users.FindByID(uint(id))
	if err != nil {
		return h.userError(c, err)
	}
	return h.profile(c, user, models.StatusApproved)
}

func (h *UserHandler) profile(c *fiber.Ctx, user *models.User, statusFilter string) error {
	verifications, err := h.verifications.ListByUser(user.ID, statusFilter)
	if err != nil {
		slog.Error("failed to list user verifications", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to load profile"})
	}

	var totalStreams int64
	for _, v := range verifications {
		if v.Status == models.StatusApproved {
			totalStreams += v.StreamCount
		}
	}

	return c.JSON(dto.UserProfileResponse{
		ID:            user.ID,
		Username:      user.Username,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
		Verifications: verifications,
		TotalStreams:  totalStreams,
	})
}

func (h *UserHandler) userError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
	}
	slog.Error("failed to load user", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to load user"})
}
