package dto

import "time"

// LeaderboardEntry is one ranked row. In aggregate mode SongID is null,
// SongTitle is the literal "All Songs" and ID carries the user id.
type LeaderboardEntry struct {
	ID          uint       `json:"id"`
	Rank        int        `json:"rank"`
	Username    string     `json:"username"`
	SongTitle   string     `json:"songTitle"`
	SongID      *uint      `json:"songId"`
	StreamCount int64      `json:"streamCount"`
	VerifiedAt  *time.Time `json:"verifiedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}
