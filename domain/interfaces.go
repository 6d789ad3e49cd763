package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	FindByUserName(ctx context.Context, userName string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// OneTimeCodeRepository defines one-time code persistence. Insert replaces
// any outstanding code for the same user and purpose, so only the most
// recently issued code can ever be found or consumed.
type OneTimeCodeRepository interface {
	Insert(ctx context.Context, code *OneTimeCode) error
	FindLatest(ctx context.Context, userID uint, purpose Purpose) (*OneTimeCode, error)
	Consume(ctx context.Context, userID uint, purpose Purpose) error
}

// RecoveryService defines the password recovery and change business logic
type RecoveryService interface {
	RequestReset(ctx context.Context, userName string) (*OneTimeCode, error)
	VerifyReset(ctx context.Context, userID uint, code string) (string, error)
	CommitReset(ctx context.Context, userID uint, password, proofToken string) error
	ChangePassword(ctx context.Context, userID uint, oldPassword, password string) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines signed token operations. Issued tokens are scoped to
// exactly one user and one purpose; Verify fails closed on any signature,
// structure or expiry problem.
type TokenService interface {
	Issue(userID uint, purpose Purpose, ttl time.Duration) (string, error)
	Verify(token string) (*TokenClaims, error)
}

// CodeGenerator produces fixed-length numeric one-time codes
type CodeGenerator interface {
	Generate(length int) (string, error)
}

// NotificationService delivers a one-time code out-of-band
type NotificationService interface {
	SendOneTimeCode(ctx context.Context, brand, domainName, recipientName, recipientAddress, message, code string) error
}
