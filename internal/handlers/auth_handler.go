package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nmixx-fans/streaming-backend/internal/dto"
	"github.com/nmixx-fans/streaming-backend/internal/services"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login verifies a username+PIN pair. No session or token is issued; the
// client simply remembers the credentials for later submissions.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	if req.Username == "" || req.Pin == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Username and PIN are required"})
	}
	if !validPin(req.Pin) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "PIN must be exactly 4 digits"})
	}

	user, err := h.users.Authenticate(req.Username, req.Pin)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
		case errors.Is(err, services.ErrPinMismatch):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid PIN for this username"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Login failed"})
		}
	}

	return c.JSON(dto.LoginResponse{
		Message: "Login successful",
		User:    dto.UserSummary{ID: user.ID, Username: user.Username},
	})
}
