package services

import (
	"fmt"

	"github.com/nmixx-fans/streaming-backend/internal/dto"
	"github.com/nmixx-fans/streaming-backend/internal/models"
	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Overview returns the global counters. Verification and stream totals cover
// approved claims only; active users counts anyone with any claim at all.
func (s *StatsService) Overview() (*dto.StatsResponse, error) {
	stats := &dto.StatsResponse{}

	err := s.db.Model(&models.Verification{}).
		Where("status = ?", models.StatusApproved).
		Count(&stats.TotalVerifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count verifications: %w", err)
	}

	// COALESCE keeps this 0 rather than NULL when nothing is approved yet.
	err = s.db.Model(&models.Verification{}).
		Select("COALESCE(SUM(stream_count), 0)").
		Where("status = ?", models.StatusApproved).
		Scan(&stats.TotalStreams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum streams: %w", err)
	}

	err = s.db.Model(&models.Verification{}).
		Distinct("user_id").
		Count(&stats.ActiveUsers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}

	err = s.db.Model(&models.Song{}).Count(&stats.TotalSongs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count songs: %w", err)
	}

	return stats, nil
}
