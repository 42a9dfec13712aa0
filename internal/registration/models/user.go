package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the persisted account created by a successful registration.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	PasswordDigest string
	Confirmed      bool
	CreatedAt      time.Time
	ConfirmedAt    *time.Time
}
