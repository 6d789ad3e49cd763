package mocks

import (
	"context"

	"github.com/InSantoshMahto/login-system/domain"
)

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendOneTimeCodeFunc func(ctx context.Context, brand, domainName, recipientName, recipientAddress, message, code string) error

	// Sent receives one value per dispatch so tests can wait for the
	// fire-and-forget delivery goroutine
	Sent chan string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{
		Sent: make(chan string, 8),
	}
}

// SendOneTimeCode delivers a one-time code
func (m *MockNotificationService) SendOneTimeCode(ctx context.Context, brand, domainName, recipientName, recipientAddress, message, code string) error {
	var err error
	if m.SendOneTimeCodeFunc != nil {
		err = m.SendOneTimeCodeFunc(ctx, brand, domainName, recipientName, recipientAddress, message, code)
	}
	select {
	case m.Sent <- code:
	default:
	}
	return err
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
