package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	dErrors "signup/pkg/domain-errors"
	"signup/pkg/email"
	"signup/pkg/platform/sentinel"
	"signup/pkg/requestcontext"
)

// Confirm checks code against the code pending for address and marks the
// user as confirmed on a match. The pending code is consumed on success.
func (s *Service) Confirm(ctx context.Context, address, code string) error {
	if s.pending == nil || s.confirmer == nil {
		return dErrors.New(dErrors.CodeInternal, "email confirmation is not configured")
	}
	key := email.Normalize(address)
	if key == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}

	stored, err := s.pending.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrExpired) {
			s.logWarning(ctx, "No pending confirmation", key)
			return dErrors.New(dErrors.CodeNotFound, "no pending confirmation for this email")
		}
		s.logError(ctx, "Failed to load confirmation code", err.Error())
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load confirmation code")
	}

	submitted := strings.ToUpper(strings.TrimSpace(code))
	if subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) != 1 {
		s.logWarning(ctx, "Confirmation code mismatch", key)
		return dErrors.New(dErrors.CodeValidation, "invalid confirmation code")
	}

	if err := s.confirmer.MarkConfirmed(ctx, key, requestcontext.Now(ctx)); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		s.logError(ctx, "Failed to mark user confirmed", err.Error())
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to confirm user")
	}

	if err := s.pending.Delete(ctx, key); err != nil {
		s.logWarning(ctx, "Failed to delete used confirmation code", joinDetail(key, err.Error()))
	}
	if s.metrics != nil {
		s.metrics.IncrementEmailsConfirmed()
	}
	s.logInfo(ctx, "Email address confirmed", key)
	return nil
}
