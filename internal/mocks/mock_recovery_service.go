package mocks

import (
	"context"

	"github.com/InSantoshMahto/login-system/domain"
)

// MockRecoveryService implements domain.RecoveryService interface for testing
type MockRecoveryService struct {
	RequestResetFunc   func(ctx context.Context, userName string) (*domain.OneTimeCode, error)
	VerifyResetFunc    func(ctx context.Context, userID uint, code string) (string, error)
	CommitResetFunc    func(ctx context.Context, userID uint, password, proofToken string) error
	ChangePasswordFunc func(ctx context.Context, userID uint, oldPassword, password string) error

	CommitResetCalls    int
	ChangePasswordCalls int
}

// NewMockRecoveryService creates a new MockRecoveryService with default behaviors
func NewMockRecoveryService() *MockRecoveryService {
	return &MockRecoveryService{}
}

// RequestReset issues a one-time code for the user
func (m *MockRecoveryService) RequestReset(ctx context.Context, userName string) (*domain.OneTimeCode, error) {
	if m.RequestResetFunc != nil {
		return m.RequestResetFunc(ctx, userName)
	}
	// Default behavior: unknown user
	return nil, domain.ErrUserNotFound
}

// VerifyReset exchanges a one-time code for a proof token
func (m *MockRecoveryService) VerifyReset(ctx context.Context, userID uint, code string) (string, error) {
	if m.VerifyResetFunc != nil {
		return m.VerifyResetFunc(ctx, userID, code)
	}
	// Default behavior: invalid code
	return "", domain.ErrCodeInvalid
}

// CommitReset commits a new password for the forgot-password flow
func (m *MockRecoveryService) CommitReset(ctx context.Context, userID uint, password, proofToken string) error {
	m.CommitResetCalls++
	if m.CommitResetFunc != nil {
		return m.CommitResetFunc(ctx, userID, password, proofToken)
	}
	// Default behavior: success
	return nil
}

// ChangePassword performs the authenticated in-session password change
func (m *MockRecoveryService) ChangePassword(ctx context.Context, userID uint, oldPassword, password string) error {
	m.ChangePasswordCalls++
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, oldPassword, password)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.RecoveryService = (*MockRecoveryService)(nil)
