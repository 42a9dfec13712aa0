package service

import (
	"crypto/sha256"
	"encoding/base64"
)

// DigestPassword returns the base64-encoded SHA-256 digest handed to the
// save step. The plaintext password never leaves the workflow.
func DigestPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:])
}
