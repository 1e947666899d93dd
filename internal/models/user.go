package models

import "time"

// User is created lazily on a fan's first verification submission.
// The PIN digest is the only credential; there are no sessions.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	PinHash       string         `gorm:"size:64;not null" json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Verifications []Verification `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
