package validation

import (
	"strings"
	"unicode/utf8"

	"signup/internal/registration/models"
)

const (
	MinPasswordLength = 8

	MsgPasswordTooShort   = "Password must be at least 8 characters long"
	MsgPasswordComplexity = "Password must contain uppercase, lowercase, digit, and special character"
)

// SpecialCharacters is the set accepted for the special character class.
const SpecialCharacters = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// CheckPasswordComplexity applies the length rule first and, only if it
// passes, the four character-class rules. A missing class yields one combined
// message that does not say which class is absent.
func CheckPasswordComplexity(password string) models.PasswordCheckResult {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return models.PasswordCheckResult{IsValid: false, Message: MsgPasswordTooShort}
	}

	if !hasUpper(password) || !hasLower(password) || !hasDigit(password) || !hasSpecial(password) {
		return models.PasswordCheckResult{IsValid: false, Message: MsgPasswordComplexity}
	}

	return models.PasswordCheckResult{IsValid: true}
}

func hasUpper(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' })
}

func hasLower(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= 'a' && r <= 'z' })
}

func hasDigit(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
}

func hasSpecial(s string) bool {
	return strings.ContainsAny(s, SpecialCharacters)
}
