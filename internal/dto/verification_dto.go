package dto

import "time"

type VerificationResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"userId"`
	Username    string     `json:"username"`
	SongID      uint       `json:"songId"`
	SongTitle   string     `json:"songTitle"`
	StreamCount int64      `json:"streamCount"`
	ProofImage  string     `json:"proofImage"`
	Status      string     `json:"status"`
	VerifiedAt  *time.Time `json:"verifiedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type SubmitVerificationResponse struct {
	Message      string               `json:"message"`
	Verification VerificationResponse `json:"verification"`
}
