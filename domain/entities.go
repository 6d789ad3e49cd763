package domain

import "time"

// Purpose constrains what a one-time code or signed token may be used for
type Purpose string

const (
	PurposeForgetPassword Purpose = "FORGET_PASSWORD"
	PurposeSession        Purpose = "SESSION"
)

// Channel identifies the out-of-band delivery channel for a one-time code
type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
)

// User represents a user in the system
type User struct {
	ID           uint
	UserName     string
	FirstName    string
	Email        string
	Phone        string
	PasswordHash string `gorm:"column:password"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OneTimeCode represents a single recovery code issued to a user.
// A newer code for the same user and purpose supersedes this one.
type OneTimeCode struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Purpose   Purpose   `json:"purpose"`
	UserID    uint      `json:"user_id"`
	Receivers []string  `json:"receivers"`
	Type      Channel   `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenClaims represents the verified contents of a signed token
type TokenClaims struct {
	UserID    uint    `json:"user_id"`
	Purpose   Purpose `json:"purpose"`
	IssuedAt  int64   `json:"iat"`
	ExpiresAt int64   `json:"exp"`
}
