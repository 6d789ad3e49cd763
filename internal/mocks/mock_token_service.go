package mocks

import (
	"time"

	"github.com/InSantoshMahto/login-system/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueFunc  func(userID uint, purpose domain.Purpose, ttl time.Duration) (string, error)
	VerifyFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue issues a signed token
func (m *MockTokenService) Issue(userID uint, purpose domain.Purpose, ttl time.Duration) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, purpose, ttl)
	}
	// Default behavior: opaque marker token
	return "token", nil
}

// Verify verifies a signed token
func (m *MockTokenService) Verify(token string) (*domain.TokenClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
