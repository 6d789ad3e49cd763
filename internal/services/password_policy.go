package services

import (
	"strings"
	"unicode"
)

// Violation reason messages, one per policy rule
const (
	ReasonLength    = "password must be 6 to 100 characters."
	ReasonUppercase = "password must contain at least one UPPERCASE character."
	ReasonLowercase = "password must contain at least one LOWERCASE character."
	ReasonNumber    = "password must contain at least one NUMBER."
	ReasonSymbol    = "password must contain at least one SPECIAL character."
	ReasonSpaces    = "spaces are not allowed."
	ReasonBang      = "special character ! is not allowed."
	ReasonDenyList  = "invalid password. eg: password ..etc."
)

const (
	minPasswordLength = 6
	maxPasswordLength = 100
)

// denyList holds trivially common passwords, matched case-insensitively
var denyList = []string{"password"}

// PasswordPolicy validates candidate passwords against the account password
// rules. Validation is a pure function of the candidate: every rule is
// checked independently so all violations are reported in a single pass.
type PasswordPolicy struct{}

// NewPasswordPolicy creates a new password policy validator
func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{}
}

// Validate returns the ordered list of violation reasons for the candidate
// password. An empty result means the password satisfies every rule.
func (p *PasswordPolicy) Validate(candidate string) []string {
	var (
		hasUpper  bool
		hasLower  bool
		hasDigit  bool
		hasSymbol bool
		hasSpace  bool
		hasBang   bool
	)

	for _, r := range candidate {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsSpace(r):
			hasSpace = true
		default:
			hasSymbol = true
		}
		if r == '!' {
			hasBang = true
		}
	}

	var reasons []string
	n := len([]rune(candidate))
	if n < minPasswordLength || n > maxPasswordLength {
		reasons = append(reasons, ReasonLength)
	}
	if !hasUpper {
		reasons = append(reasons, ReasonUppercase)
	}
	if !hasLower {
		reasons = append(reasons, ReasonLowercase)
	}
	if !hasDigit {
		reasons = append(reasons, ReasonNumber)
	}
	if !hasSymbol {
		reasons = append(reasons, ReasonSymbol)
	}
	if hasSpace {
		reasons = append(reasons, ReasonSpaces)
	}
	if hasBang {
		reasons = append(reasons, ReasonBang)
	}
	for _, denied := range denyList {
		if strings.EqualFold(candidate, denied) {
			reasons = append(reasons, ReasonDenyList)
			break
		}
	}

	return reasons
}
