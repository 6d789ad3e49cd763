package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/InSantoshMahto/login-system/domain"
)

// SecureCodeGenerator implements domain.CodeGenerator using crypto/rand
type SecureCodeGenerator struct{}

// NewCodeGenerator creates a new secure code generator
func NewCodeGenerator() domain.CodeGenerator {
	return &SecureCodeGenerator{}
}

// Generate produces a numeric code of the given length, each digit drawn
// uniformly from a cryptographically secure source
func (g *SecureCodeGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length %d", length)
	}

	digits := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
