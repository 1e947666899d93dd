package models

import (
	"time"

	"gorm.io/datatypes"
)

// Song is seed-managed reference data; the core never writes it.
// TotalStreamCount is a cached figure maintained out-of-band, not a sum of
// verifications.
type Song struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Title            string         `gorm:"size:100;not null" json:"title"`
	Album            string         `gorm:"size:100;not null" json:"album"`
	ReleaseDate      datatypes.Date `gorm:"not null" json:"releaseDate"`
	CoverImage       string         `gorm:"size:255" json:"coverImage"`
	TotalStreamCount int64          `gorm:"default:0" json:"streamCount"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	Verifications    []Verification `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
