package service

import (
	"context"
	"time"

	"signup/internal/registration/models"
)

// Logging wrappers: a misbehaving Logger must not change the workflow result.

func (s *Service) logError(ctx context.Context, message, details string) {
	defer func() { _ = recover() }()
	s.logger.Error(ctx, message, details)
}

func (s *Service) logWarning(ctx context.Context, message, details string) {
	defer func() { _ = recover() }()
	s.logger.Warning(ctx, message, details)
}

func (s *Service) logInfo(ctx context.Context, message, details string) {
	defer func() { _ = recover() }()
	s.logger.Info(ctx, message, details)
}

// recordOutcome updates the registration metrics if metrics are enabled
func (s *Service) recordOutcome(outcome models.Outcome, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementRegistrations(outcome.Kind.String())
	if outcome.NotificationFailed {
		s.metrics.IncrementConfirmationEmailsFailed()
	}
	s.metrics.ObserveRegistrationDuration(float64(elapsed.Microseconds()) / 1000.0)
}
