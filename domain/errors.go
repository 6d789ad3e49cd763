package domain

import "errors"

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// One-time code errors
var (
	ErrCodeNotFound = errors.New("one-time code not found")
	ErrCodeInvalid  = errors.New("invalid one-time code")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Password errors
var (
	ErrOldPasswordMismatch = errors.New("password not matched with old password")
)
