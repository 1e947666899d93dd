package services

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/nmixx-fans/streaming-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Song{}, &models.Verification{}))
	return db
}

// stubClock pins "now" for deterministic window and timestamp assertions.
type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

func kst(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	return loc
}

// memStore records saved names without touching disk.
type memStore struct {
	saved []string
}

func (m *memStore) Save(src io.Reader, name string) (string, error) {
	if _, err := io.Copy(io.Discard, src); err != nil {
		return "", err
	}
	m.saved = append(m.saved, name)
	return name, nil
}

func seedSong(t *testing.T, db *gorm.DB, title string) models.Song {
	t.Helper()
	song := models.Song{
		Title:       title,
		Album:       "Test Album",
		ReleaseDate: datatypes.Date(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, db.Create(&song).Error)
	return song
}

func seedUser(t *testing.T, db *gorm.DB, username, pin string) models.User {
	t.Helper()
	user := models.User{Username: username, PinHash: HashPin(pin)}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedVerification(t *testing.T, db *gorm.DB, userID, songID uint, count int64, status string, createdAt time.Time) models.Verification {
	t.Helper()
	verifiedAt := createdAt
	v := models.Verification{
		UserID:      userID,
		SongID:      songID,
		StreamCount: count,
		ProofImage:  "proof.png",
		Status:      status,
		VerifiedAt:  &verifiedAt,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}
