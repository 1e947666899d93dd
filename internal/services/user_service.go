package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/nmixx-fans/streaming-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrPinMismatch       = errors.New("invalid PIN for this username")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// HashPin digests a 4-digit PIN with SHA-256. The digest is deterministic on
// purpose: repeat submissions are authenticated by recomputing and comparing.
func HashPin(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// VerifyPin recomputes the digest of the supplied PIN and compares it to the
// stored hash in constant time.
func VerifyPin(user *models.User, pin string) bool {
	return subtle.ConstantTimeCompare([]byte(user.PinHash), []byte(HashPin(pin))) == 1
}

// FindByUsername does an exact, case-sensitive lookup.
func (s *UserService) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

func (s *UserService) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// Create persists a new user with the hashed PIN. A concurrent insert for the
// same username surfaces as ErrDuplicateUsername via the unique index.
func (s *UserService) Create(username, pin string) (*models.User, error) {
	user := models.User{
		Username: username,
		PinHash:  HashPin(pin),
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Authenticate verifies a username+PIN pair without issuing any session.
func (s *UserService) Authenticate(username, pin string) (*models.User, error) {
	user, err := s.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if !VerifyPin(user, pin) {
		return nil, ErrPinMismatch
	}
	return user, nil
}
