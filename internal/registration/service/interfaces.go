package service

import (
	"context"
	"time"

	"signup/internal/registration/models"
)

// Persistence is the user store as seen by the workflow.
// UserExists reports lookup failures as errors; Save reports failures in the
// returned SaveResult. Uniqueness of usernames is the implementation's job:
// the exists-then-save sequence below is not atomic.
type Persistence interface {
	UserExists(ctx context.Context, username string) (bool, error)
	Save(ctx context.Context, username, email, passwordDigest string) models.SaveResult
}

// Notifier delivers the confirmation code to the registered address.
type Notifier interface {
	SendConfirmation(ctx context.Context, email, code string) models.EmailResult
}

// Logger receives one entry per workflow step. Implementations must not
// block the workflow; their failures are ignored.
type Logger interface {
	Error(ctx context.Context, message, details string)
	Warning(ctx context.Context, message, details string)
	Info(ctx context.Context, message, details string)
}

// CodeGenerator produces confirmation codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// PendingCodeStore holds confirmation codes awaiting confirmation, keyed by
// normalized email.
// Error Contract: Get returns sentinel.ErrNotFound when no code is pending.
type PendingCodeStore interface {
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

// UserConfirmer marks a stored user as having confirmed their email.
// Error Contract: returns sentinel.ErrNotFound when no user has the address.
type UserConfirmer interface {
	MarkConfirmed(ctx context.Context, email string, at time.Time) error
}
