package handlers

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nmixx-fans/streaming-backend/internal/dto"
	"github.com/nmixx-fans/streaming-backend/internal/models"
	"github.com/nmixx-fans/streaming-backend/internal/services"
	"github.com/nmixx-fans/streaming-backend/internal/storage"
)

type VerificationHandler struct {
	verifications *services.VerificationService
}

func NewVerificationHandler(verifications *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verifications: verifications}
}

// Submit handles POST /verifications (multipart). Validation is strictly
// before any store mutation: proof presence, file type, required fields, PIN
// shape and integer parsing all fail fast; only then does the transactional
// workflow run.
func (h *VerificationHandler) Submit(c *fiber.Ctx) error {
	proof, ferr := c.FormFile("proof")
	existingProof := strings.TrimSpace(c.FormValue("existingProofImage"))

	if ferr != nil {
		proof = nil
		if existingProof == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No proof image provided"})
		}
	}
	if proof != nil {
		if proof.Filename == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No file selected"})
		}
		if !storage.AllowedExtension(proof.Filename) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid file type"})
		}
	}

	username := c.FormValue("username")
	pin := c.FormValue("pin")
	songIDRaw := c.FormValue("songId")
	streamCountRaw := c.FormValue("streamCount")

	if username == "" || pin == "" || songIDRaw == "" || streamCountRaw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Missing required fields (username, pin, songId, streamCount)"})
	}
	if !validPin(pin) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "PIN must be exactly 4 digits"})
	}

	songID, songErr := strconv.ParseUint(songIDRaw, 10, 32)
	streamCount, countErr := strconv.ParseInt(streamCountRaw, 10, 64)
	if songErr != nil || countErr != nil || streamCount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid songId or stream count"})
	}

	verification, created, err := h.verifications.Submit(services.SubmitInput{
		Username:           username,
		Pin:                pin,
		SongID:             uint(songID),
		StreamCount:        streamCount,
		Proof:              proof,
		ExistingProofImage: existingProof,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSongNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Song not found"})
		case errors.Is(err, services.ErrPinMismatch):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid PIN for this username"})
		default:
			slog.Error("verification submission failed", "error", err, "username", username, "action", "submit_verification")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to save verification"})
		}
	}

	message := "Verification updated successfully"
	if created {
		message = "Verification created successfully"
	}
	return c.JSON(dto.SubmitVerificationResponse{
		Message:      message,
		Verification: toVerificationResponse(verification),
	})
}

func (h *VerificationHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid verification id"})
	}

	verification, err := h.verifications.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrVerificationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Verification not found"})
		}
		slog.Error("failed to load verification", "error", err, "id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to load verification"})
	}
	return c.JSON(toVerificationResponse(verification))
}

// Approve handles PUT /verifications/:id/approve. There is deliberately no
// caller-identity check on this or Reject.
func (h *VerificationHandler) Approve(c *fiber.Ctx) error {
	return h.setStatus(c, models.StatusApproved)
}

// Reject handles PUT /verifications/:id/reject.
func (h *VerificationHandler) Reject(c *fiber.Ctx) error {
	return h.setStatus(c, models.StatusRejected)
}

func (h *VerificationHandler) setStatus(c *fiber.Ctx, status string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid verification id"})
	}

	verification, err := h.verifications.SetStatus(uint(id), status)
	if err != nil {
		if errors.Is(err, services.ErrVerificationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Verification not found"})
		}
		slog.Error("failed to update verification status", "error", err, "id", id, "status", status)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to update verification"})
	}
	return c.JSON(toVerificationResponse(verification))
}
