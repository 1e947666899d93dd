package services

import (
	"testing"
	"time"

	"github.com/nmixx-fans/streaming-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLeaderboardFixture(t *testing.T) (*LeaderboardService, *gorm.DB, *stubClock) {
	t.Helper()
	db := newTestDB(t)
	clk := &stubClock{now: time.Date(2026, time.August, 28, 21, 0, 0, 0, kst(t))}
	return NewLeaderboardService(db, clk), db, clk
}

func TestLeaderboardPerSongTieBreak(t *testing.T) {
	svc, db, clk := newLeaderboardFixture(t)
	song := seedSong(t, db, "DASH")
	a := seedUser(t, db, "alice", "1111")
	b := seedUser(t, db, "bob", "2222")
	c := seedUser(t, db, "carol", "3333")

	// bob submitted 50 before alice's 50, so bob wins the tie.
	seedVerification(t, db, a.ID, song.ID, 50, models.StatusApproved, clk.now.Add(-time.Hour))
	seedVerification(t, db, b.ID, song.ID, 50, models.StatusApproved, clk.now.Add(-2*time.Hour))
	seedVerification(t, db, c.ID, song.ID, 30, models.StatusApproved, clk.now.Add(-30*time.Minute))

	entries, err := svc.Leaderboard(FilterAll, &song.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, []string{"bob", "alice", "carol"},
		[]string{entries[0].Username, entries[1].Username, entries[2].Username})
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
		require.NotNil(t, e.SongID)
		assert.Equal(t, song.ID, *e.SongID)
		assert.Equal(t, "DASH", e.SongTitle)
	}
}

func TestLeaderboardAggregateTieBreak(t *testing.T) {
	svc, db, clk := newLeaderboardFixture(t)
	dash := seedSong(t, db, "DASH")
	oo := seedSong(t, db, "O.O")
	a := seedUser(t, db, "alice", "1111")
	b := seedUser(t, db, "bob", "2222")

	// Both total 80; alice's latest claim is more recent, so alice ranks
	// first (the opposite tie direction from per-song mode).
	seedVerification(t, db, a.ID, dash.ID, 30, models.StatusApproved, clk.now.Add(-5*time.Hour))
	seedVerification(t, db, a.ID, oo.ID, 50, models.StatusApproved, clk.now.Add(-time.Hour))
	seedVerification(t, db, b.ID, dash.ID, 80, models.StatusApproved, clk.now.Add(-3*time.Hour))

	entries, err := svc.Leaderboard(FilterAll, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, int64(80), entries[0].StreamCount)
	assert.Equal(t, "bob", entries[1].Username)
	assert.Equal(t, int64(80), entries[1].StreamCount)
}

func TestLeaderboardAggregateShape(t *testing.T) {
	svc, db, clk := newLeaderboardFixture(t)
	dash := seedSong(t, db, "DASH")
	oo := seedSong(t, db, "O.O")
	a := seedUser(t, db, "alice", "1111")

	seedVerification(t, db, a.ID, dash.ID, 30, models.StatusApproved, clk.now.Add(-2*time.Hour))
	latest := seedVerification(t, db, a.ID, oo.ID, 20, models.StatusApproved, clk.now.Add(-time.Hour))

	entries, err := svc.Leaderboard(FilterAll, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, a.ID, e.ID)
	assert.Nil(t, e.SongID)
	assert.Equal(t, "All Songs", e.SongTitle)
	assert.Equal(t, int64(50), e.StreamCount)
	assert.True(t, e.CreatedAt.Equal(latest.CreatedAt))
}

func TestLeaderboardExcludesUnapproved(t *testing.T) {
	svc, db, clk := newLeaderboardFixture(t)
	song := seedSong(t, db, "DASH")
	a := seedUser(t, db, "alice", "1111")
	b := seedUser(t, db, "bob", "2222")
	c := seedUser(t, db, "carol", "3333")

	seedVerification(t, db, a.ID, song.ID, 100, models.StatusPending, clk.now)
	seedVerification(t, db, b.ID, song.ID, 90, models.StatusRejected, clk.now)
	seedVerification(t, db, c.ID, song.ID, 10, models.StatusApproved, clk.now)

	entries, err := svc.Leaderboard(FilterAll, &song.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "carol", entries[0].Username)
}

func TestLeaderboardTodayWindow(t *testing.T) {
	svc, db, _ := newLeaderboardFixture(t)
	song := seedSong(t, db, "DASH")
	a := seedUser(t, db, "alice", "1111")
	b := seedUser(t, db, "bob", "2222")

	// 00:30 today counts; 23:30 yesterday does not, even though it is
	// within the trailing 24 hours of a 21:00 "now".
	midnightish := time.Date(2026, time.August, 28, 0, 30, 0, 0, kst(t))
	lastNight := time.Date(2026, time.August, 27, 23, 30, 0, 0, kst(t))
	seedVerification(t, db, a.ID, song.ID, 10, models.StatusApproved, midnightish)
	seedVerification(t, db, b.ID, song.ID, 999, models.StatusApproved, lastNight)

	entries, err := svc.Leaderboard(FilterToday, &song.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
}

func TestLeaderboardWeekWindow(t *testing.T) {
	svc, db, clk := newLeaderboardFixture(t)
	song := seedSong(t, db, "DASH")
	a := seedUser(t, db, "alice", "1111")
	b := seedUser(t, db, "bob", "2222")

	seedVerification(t, db, a.ID, song.ID, 10, models.StatusApproved, clk.now.AddDate(0, 0, -3))
	seedVerification(t, db, b.ID, song.ID, 999, models.StatusApproved, clk.now.AddDate(0, 0, -10))

	entries, err := svc.Leaderboard(FilterWeek, &song.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
}

func TestLeaderboardUnknownFilterReturnsAll(t *testing.T) {
	svc, db, clk := newLeaderboardFixture(t)
	song := seedSong(t, db, "DASH")
	a := seedUser(t, db, "alice", "1111")

	seedVerification(t, db, a.ID, song.ID, 10, models.StatusApproved, clk.now.AddDate(0, -6, 0))

	entries, err := svc.Leaderboard("fortnight", &song.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLeaderboardEmpty(t *testing.T) {
	svc, db, _ := newLeaderboardFixture(t)
	song := seedSong(t, db, "DASH")

	perSong, err := svc.Leaderboard(FilterAll, &song.ID)
	require.NoError(t, err)
	assert.NotNil(t, perSong)
	assert.Empty(t, perSong)

	aggregate, err := svc.Leaderboard(FilterAll, nil)
	require.NoError(t, err)
	assert.NotNil(t, aggregate)
	assert.Empty(t, aggregate)
}
