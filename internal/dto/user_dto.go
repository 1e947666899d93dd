package dto

import "time"

// UserVerification is a verification row as shown on a profile page.
type UserVerification struct {
	ID          uint       `json:"id"`
	SongID      uint       `json:"songId"`
	SongTitle   string     `json:"songTitle"`
	StreamCount int64      `json:"streamCount"`
	ProofImage  string     `json:"proofImage"`
	Status      string     `json:"status"`
	VerifiedAt  *time.Time `json:"verifiedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UserProfileResponse is the profile plus its verifications; TotalStreams
// sums approved claims only.
type UserProfileResponse struct {
	ID            uint               `json:"id"`
	Username      string             `json:"username"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Verifications []UserVerification `json:"verifications"`
	TotalStreams  int64              `json:"totalStreams"`
}
