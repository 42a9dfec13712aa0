package email

import (
	"strings"

	"signup/pkg/validation"
)

// IsValidFormat reports whether address has the local@domain shape accepted
// for registration: it must pass the validator's email rule and the domain
// must contain at least one dot.
func IsValidFormat(address string) bool {
	at := strings.LastIndexByte(address, '@')
	if at <= 0 || at == len(address)-1 {
		return false
	}
	domain := address[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return validation.IsEmail(address)
}

// Normalize lowercases and trims an address for use as a lookup key.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
