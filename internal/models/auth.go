package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials forwarded to the content gateway.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued portal token and user info.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        UserInfo  `json:"user"`
	IssuedAt    time.Time `json:"issued_at"`
}

// JWTClaims represents the JWT payload for portal access tokens. The upstream
// gateway token never leaves the server; SessionID keys its redis entry.
type JWTClaims struct {
	UserID       string   `json:"user_id"`
	SessionID    string   `json:"session_id"`
	Role         UserRole `json:"role"`
	Email        string   `json:"email"`
	UniversityID string   `json:"university_id,omitempty"`
	jwt.RegisteredClaims
}
