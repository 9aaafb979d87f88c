package dto

import "time"

// LoginRequest is the payload for username/password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token; the refresh token travels in
// an http-only cookie.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ExchangeCodeRequest is the payload for the Google OAuth code exchange.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
