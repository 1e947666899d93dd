package dto

type LoginRequest struct {
	Username string `json:"username"`
	Pin      string `json:"pin"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
