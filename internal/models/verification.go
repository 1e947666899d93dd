package models

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Verification is one user's stream-count claim for one song. The unique
// index on (user_id, song_id) backs the upsert semantics: concurrent
// submissions for the same pair cannot produce a second row.
type Verification struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_verifications_user_song" json:"userId"`
	SongID      uint       `gorm:"not null;uniqueIndex:idx_verifications_user_song" json:"songId"`
	StreamCount int64      `gorm:"not null" json:"streamCount"`
	ProofImage  string     `gorm:"size:255;not null" json:"proofImage"`
	Status      string     `gorm:"size:20;default:'pending'" json:"status"`
	VerifiedAt  *time.Time `json:"verifiedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Song Song `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
