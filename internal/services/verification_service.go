package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/nmixx-fans/streaming-backend/internal/clock"
	"github.com/nmixx-fans/streaming-backend/internal/dto"
	"github.com/nmixx-fans/streaming-backend/internal/models"
	"github.com/nmixx-fans/streaming-backend/internal/storage"
	"gorm.io/gorm"
)

var ErrVerificationNotFound = errors.New("verification not found")

type VerificationService struct {
	db    *gorm.DB
	files storage.Store
	clock clock.Clock
}

func NewVerificationService(db *gorm.DB, files storage.Store, clk clock.Clock) *VerificationService {
	return &VerificationService{db: db, files: files, clock: clk}
}

// SubmitInput carries an already-validated submission: the handler has
// checked field presence, PIN shape, file extension and positive counts
// before this point.
type SubmitInput struct {
	Username    string
	Pin         string
	SongID      uint
	StreamCount int64
	// Proof is the freshly uploaded screenshot; nil when the caller reuses
	// ExistingProofImage instead.
	Proof              *multipart.FileHeader
	ExistingProofImage string
}

// Submit runs the whole submission workflow in one transaction: find or
// create the user, check the PIN, store the proof, upsert the claim for
// (user, song). User creation and the verification write commit or roll back
// together. The bool result reports whether a new claim row was created.
func (s *VerificationService) Submit(in SubmitInput) (*models.Verification, bool, error) {
	var song models.Song
	if err := s.db.First(&song, in.SongID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrSongNotFound
		}
		return nil, false, fmt.Errorf("failed to look up song: %w", err)
	}

	var verification models.Verification
	created := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.resolveUser(tx, in.Username, in.Pin)
		if err != nil {
			return err
		}

		proofRef := in.ExistingProofImage
		if in.Proof != nil {
			src, err := in.Proof.Open()
			if err != nil {
				return fmt.Errorf("failed to open proof upload: %w", err)
			}
			defer src.Close()

			name := storage.ProofFilename(user.ID, in.SongID, s.clock.Now(), in.Proof.Filename)
			proofRef, err = s.files.Save(src, name)
			if err != nil {
				return fmt.Errorf("failed to store proof image: %w", err)
			}
		}

		v, wasCreated, err := s.upsert(tx, user.ID, in.SongID, in.StreamCount, proofRef)
		if err != nil {
			return err
		}
		verification = *v
		created = wasCreated
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	detail, err := s.GetByID(verification.ID)
	if err != nil {
		return nil, false, err
	}
	return detail, created, nil
}

// resolveUser implements the lazy-signup identity model: a known username
// must present the right PIN, an unknown one is registered with the supplied
// PIN. Losing the insert race to a concurrent first submission degrades into
// the known-username path.
func (s *VerificationService) resolveUser(tx *gorm.DB, username, pin string) (*models.User, error) {
	var user models.User
	err := tx.Where("username = ?", username).First(&user).Error
	if err == nil {
		if !VerifyPin(&user, pin) {
			return nil, ErrPinMismatch
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user = models.User{Username: username, PinHash: HashPin(pin)}
	// The insert runs under its own savepoint: on postgres a unique
	// violation aborts the surrounding transaction, and the reread below
	// must execute after the failed INSERT has been rolled back.
	createErr := tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})
	if createErr != nil {
		if isUniqueViolation(createErr) {
			if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
				return nil, fmt.Errorf("failed to reread user after insert race: %w", err)
			}
			if !VerifyPin(&user, pin) {
				return nil, ErrPinMismatch
			}
			return &user, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", createErr)
	}
	return &user, nil
}

// upsert keeps at most one claim per (user, song). Updates overwrite
// stream_count, proof_image and verified_at but leave status and created_at
// from the prior record; inserts start out approved immediately (there is no
// pending review gate on the active path).
func (s *VerificationService) upsert(tx *gorm.DB, userID, songID uint, streamCount int64, proofRef string) (*models.Verification, bool, error) {
	now := s.clock.Now()

	var existing models.Verification
	err := tx.Where("user_id = ? AND song_id = ?", userID, songID).First(&existing).Error
	if err == nil {
		return s.overwrite(tx, &existing, streamCount, proofRef)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up verification: %w", err)
	}

	verification := models.Verification{
		UserID:      userID,
		SongID:      songID,
		StreamCount: streamCount,
		ProofImage:  proofRef,
		Status:      models.StatusApproved,
		VerifiedAt:  &now,
	}
	// Savepoint for the same reason as resolveUser: a conflict here must not
	// poison the transaction before the reread.
	createErr := tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&verification).Error
	})
	if createErr != nil {
		if isUniqueViolation(createErr) {
			// Lost the race to a concurrent submission for the same pair;
			// reread and update in place instead.
			if err := tx.Where("user_id = ? AND song_id = ?", userID, songID).First(&existing).Error; err != nil {
				return nil, false, fmt.Errorf("failed to reread verification after insert race: %w", err)
			}
			return s.overwrite(tx, &existing, streamCount, proofRef)
		}
		return nil, false, fmt.Errorf("failed to create verification: %w", createErr)
	}
	return &verification, true, nil
}

func (s *VerificationService) overwrite(tx *gorm.DB, existing *models.Verification, streamCount int64, proofRef string) (*models.Verification, bool, error) {
	now := s.clock.Now()
	updates := map[string]interface{}{
		"stream_count": streamCount,
		"proof_image":  proofRef,
		"verified_at":  now,
		"updated_at":   now,
	}
	if err := tx.Model(existing).Updates(updates).Error; err != nil {
		return nil, false, fmt.Errorf("failed to update verification: %w", err)
	}
	existing.StreamCount = streamCount
	existing.ProofImage = proofRef
	existing.VerifiedAt = &now
	existing.UpdatedAt = now
	return existing, false, nil
}

func (s *VerificationService) GetByID(id uint) (*models.Verification, error) {
	var verification models.Verification
	err := s.db.Preload("User").Preload("Song").First(&verification, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to look up verification: %w", err)
	}
	return &verification, nil
}

// SetStatus transitions a claim to any status unconditionally; there is no
// prior-state check. Approval stamps verified_at.
func (s *VerificationService) SetStatus(id uint, status string) (*models.Verification, error) {
	verification, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if status == models.StatusApproved {
		now := s.clock.Now()
		updates["verified_at"] = now
		verification.VerifiedAt = &now
	}
	if err := s.db.Model(verification).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update verification status: %w", err)
	}
	verification.Status = status
	return verification, nil
}

// ListByUser returns a user's claims joined with song titles, newest first.
// statusFilter narrows to one status when non-empty.
func (s *VerificationService) ListByUser(userID uint, statusFilter string) ([]dto.UserVerification, error) {
	query := s.db.Model(&models.Verification{}).
		Select("verifications.id, verifications.song_id, songs.title AS song_title, verifications.stream_count, verifications.proof_image, verifications.status, verifications.verified_at, verifications.created_at").
		Joins("JOIN songs ON songs.id = verifications.song_id").
		Where("verifications.user_id = ?", userID).
		Order("verifications.created_at DESC")

	if statusFilter != "" {
		query = query.Where("verifications.status = ?", statusFilter)
	}

	rows := make([]dto.UserVerification, 0)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}
	return rows, nil
}
