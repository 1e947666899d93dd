package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/nmixx-fans/streaming-backend/internal/clock"
	"github.com/nmixx-fans/streaming-backend/internal/dto"
	"github.com/nmixx-fans/streaming-backend/internal/models"
	"gorm.io/gorm"
)

const (
	FilterAll   = "all"
	FilterToday = "today"
	FilterWeek  = "week"
	FilterMonth = "month"

	allSongsLabel = "All Songs"
)

type LeaderboardService struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewLeaderboardService(db *gorm.DB, clk clock.Clock) *LeaderboardService {
	return &LeaderboardService{db: db, clock: clk}
}

type leaderboardRow struct {
	ID          uint
	UserID      uint
	Username    string
	SongID      uint
	SongTitle   string
	StreamCount int64
	VerifiedAt  *time.Time
	CreatedAt   time.Time
}

// Leaderboard builds the ranked view. With a songID it ranks individual
// claims for that song; without one it ranks users by their summed claims
// across all songs. Only approved claims count, windowed on created_at.
func (s *LeaderboardService) Leaderboard(timeFilter string, songID *uint) ([]dto.LeaderboardEntry, error) {
	query := s.db.Model(&models.Verification{}).
		Select("verifications.id, verifications.user_id, users.username, songs.id AS song_id, songs.title AS song_title, verifications.stream_count, verifications.verified_at, verifications.created_at").
		Joins("JOIN users ON users.id = verifications.user_id").
		Joins("JOIN songs ON songs.id = verifications.song_id").
		Where("verifications.status = ?", models.StatusApproved)

	if songID != nil {
		query = query.Where("verifications.song_id = ?", *songID)
	}
	query = s.applyTimeFilter(query, timeFilter)

	// Single-claim ordering; the aggregate path regroups and resorts below.
	var rows []leaderboardRow
	err := query.Order("verifications.stream_count DESC, verifications.created_at ASC").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	if songID != nil {
		return rankPerSong(rows), nil
	}
	return rankAggregate(rows), nil
}

// applyTimeFilter windows on created_at in the configured timezone. "today"
// means the same calendar date, not the trailing 24 hours; unknown filters
// fall back to no constraint, matching the observed behavior.
func (s *LeaderboardService) applyTimeFilter(query *gorm.DB, timeFilter string) *gorm.DB {
	now := s.clock.Now()
	switch timeFilter {
	case FilterToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return query.Where("verifications.created_at >= ? AND verifications.created_at < ?", start, start.AddDate(0, 0, 1))
	case FilterWeek:
		return query.Where("verifications.created_at >= ?", now.AddDate(0, 0, -7))
	case FilterMonth:
		return query.Where("verifications.created_at >= ?", now.AddDate(0, 0, -30))
	default:
		return query
	}
}

// rankPerSong: highest count first, earlier submission wins a count tie.
func rankPerSong(rows []leaderboardRow) []dto.LeaderboardEntry {
	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		songID := row.SongID
		entries = append(entries, dto.LeaderboardEntry{
			ID:          row.ID,
			Rank:        i + 1,
			Username:    row.Username,
			SongTitle:   row.SongTitle,
			SongID:      &songID,
			StreamCount: row.StreamCount,
			VerifiedAt:  row.VerifiedAt,
			CreatedAt:   row.CreatedAt,
		})
	}
	return entries
}

type userTotals struct {
	userID      uint
	username    string
	streamCount int64
	verifiedAt  *time.Time
	createdAt   time.Time
}

// rankAggregate groups claims by user, summing counts and keeping the most
// recent timestamps. The count tie-break is deliberately the opposite of
// per-song mode: the more recently active user ranks higher.
func rankAggregate(rows []leaderboardRow) []dto.LeaderboardEntry {
	byUser := make(map[uint]*userTotals)
	order := make([]uint, 0)

	for _, row := range rows {
		totals, ok := byUser[row.UserID]
		if !ok {
			totals = &userTotals{userID: row.UserID, username: row.Username}
			byUser[row.UserID] = totals
			order = append(order, row.UserID)
		}
		totals.streamCount += row.StreamCount
		if row.VerifiedAt != nil && (totals.verifiedAt == nil || row.VerifiedAt.After(*totals.verifiedAt)) {
			totals.verifiedAt = row.VerifiedAt
		}
		if row.CreatedAt.After(totals.createdAt) {
			totals.createdAt = row.CreatedAt
		}
	}

	grouped := make([]*userTotals, 0, len(byUser))
	for _, userID := range order {
		grouped = append(grouped, byUser[userID])
	}
	sort.SliceStable(grouped, func(i, j int) bool {
		if grouped[i].streamCount != grouped[j].streamCount {
			return grouped[i].streamCount > grouped[j].streamCount
		}
		return grouped[i].createdAt.After(grouped[j].createdAt)
	})

	entries := make([]dto.LeaderboardEntry, 0, len(grouped))
	for i, totals := range grouped {
		entries = append(entries, dto.LeaderboardEntry{
			ID:          totals.userID,
			Rank:        i + 1,
			Username:    totals.username,
			SongTitle:   allSongsLabel,
			SongID:      nil,
			StreamCount: totals.streamCount,
			VerifiedAt:  totals.verifiedAt,
			CreatedAt:   totals.createdAt,
		})
	}
	return entries
}
