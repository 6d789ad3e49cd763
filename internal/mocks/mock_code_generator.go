package mocks

import "github.com/InSantoshMahto/login-system/domain"

// MockCodeGenerator implements domain.CodeGenerator interface for testing
type MockCodeGenerator struct {
	GenerateFunc func(length int) (string, error)
}

// NewMockCodeGenerator creates a new MockCodeGenerator with default behaviors
func NewMockCodeGenerator() *MockCodeGenerator {
	return &MockCodeGenerator{}
}

// Generate produces a one-time code
func (m *MockCodeGenerator) Generate(length int) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(length)
	}
	// Default behavior: fixed code
	return "1234", nil
}

// Compile-time interface compliance verification
var _ domain.CodeGenerator = (*MockCodeGenerator)(nil)
