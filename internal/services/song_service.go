package services

import (
	"errors"
	"fmt"

	"github.com/nmixx-fans/streaming-backend/internal/models"
	"gorm.io/gorm"
)

var ErrSongNotFound = errors.New("song not found")

// SongService reads the seeded catalog. The cached total_stream_count is
// maintained out-of-band and never recomputed here.
type SongService struct {
	db *gorm.DB
}

func NewSongService(db *gorm.DB) *SongService {
	return &SongService{db: db}
}

func (s *SongService) GetAll() ([]models.Song, error) {
	var songs []models.Song
	if err := s.db.Order("total_stream_count DESC").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, nil
}

func (s *SongService) GetByID(id uint) (*models.Song, error) {
	var song models.Song
	if err := s.db.First(&song, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSongNotFound
		}
		return nil, fmt.Errorf("failed to look up song: %w", err)
	}
	return &song, nil
}
