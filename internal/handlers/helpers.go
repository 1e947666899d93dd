package handlers

import (
	"github.com/nmixx-fans/streaming-backend/internal/dto"
	"github.com/nmixx-fans/streaming-backend/internal/models"
)

// validPin reports whether pin is exactly 4 ASCII digits. Checked before any
// store mutation; the identity layer never sees a malformed PIN.
func validPin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// toVerificationResponse shapes a preloaded verification for the wire.
func toVerificationResponse(v *models.Verification) dto.VerificationResponse {
	return dto.VerificationResponse{
		ID:          v.ID,
		UserID:      v.UserID,
		Username:    v.User.Username,
		SongID:      v.SongID,
		SongTitle:   v.Song.Title,
		StreamCount: v.StreamCount,
		ProofImage:  v.ProofImage,
		Status:      v.Status,
		VerifiedAt:  v.VerifiedAt,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
