package mocks

import (
	"context"

	"github.com/InSantoshMahto/login-system/domain"
)

// MockOneTimeCodeRepository implements domain.OneTimeCodeRepository interface for testing
type MockOneTimeCodeRepository struct {
	InsertFunc     func(ctx context.Context, code *domain.OneTimeCode) error
	FindLatestFunc func(ctx context.Context, userID uint, purpose domain.Purpose) (*domain.OneTimeCode, error)
	ConsumeFunc    func(ctx context.Context, userID uint, purpose domain.Purpose) error

	InsertCalls  int
	ConsumeCalls int
}

// NewMockOneTimeCodeRepository creates a new MockOneTimeCodeRepository with default behaviors
func NewMockOneTimeCodeRepository() *MockOneTimeCodeRepository {
	return &MockOneTimeCodeRepository{}
}

// Insert stores a one-time code record
func (m *MockOneTimeCodeRepository) Insert(ctx context.Context, code *domain.OneTimeCode) error {
	m.InsertCalls++
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, code)
	}
	// Default behavior: success
	return nil
}

// FindLatest finds the latest code for a user and purpose
func (m *MockOneTimeCodeRepository) FindLatest(ctx context.Context, userID uint, purpose domain.Purpose) (*domain.OneTimeCode, error) {
	if m.FindLatestFunc != nil {
		return m.FindLatestFunc(ctx, userID, purpose)
	}
	// Default behavior: not found
	return nil, domain.ErrCodeNotFound
}

// Consume invalidates the latest code for a user and purpose
func (m *MockOneTimeCodeRepository) Consume(ctx context.Context, userID uint, purpose domain.Purpose) error {
	m.ConsumeCalls++
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, userID, purpose)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.OneTimeCodeRepository = (*MockOneTimeCodeRepository)(nil)
