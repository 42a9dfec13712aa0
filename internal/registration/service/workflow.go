package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"signup/internal/registration/models"
	"signup/internal/registration/validation"
)

// Execute runs the workflow for r and returns the user-facing status string.
// It never panics on collaborator failures.
func (s *Service) Execute(ctx context.Context, r *models.Registration) string {
	return s.Run(ctx, r).Status()
}

// Run executes the workflow steps in order, stopping at the first fatal step.
// It writes r.IsExistingUser and r.IsSaved, plus the validation fields
// written by validation.Validate.
func (s *Service) Run(ctx context.Context, r *models.Registration) (outcome models.Outcome) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "registration.run")
	defer func() {
		span.SetAttributes(
			attribute.String("registration.outcome", outcome.Kind.String()),
			attribute.Bool("registration.notification_failed", outcome.NotificationFailed),
		)
		if !outcome.Succeeded() {
			span.SetStatus(codes.Error, outcome.Kind.String())
		}
		span.End()
		s.recordOutcome(outcome, time.Since(start))
	}()

	if errs := validation.Validate(r); len(errs) > 0 {
		s.logError(ctx, "Input validation failed", strings.Join(errs, ", "))
		return models.Outcome{Kind: models.OutcomeValidationFailed, Errors: errs}
	}

	exists, err := s.userExists(ctx, r.Username)
	if err != nil {
		s.logError(ctx, "Failed to check for existing user", err.Error())
		return models.Outcome{Kind: models.OutcomePersistenceFailed}
	}
	if exists {
		r.IsExistingUser = true
		s.logError(ctx, "User already exists", r.Username)
		return models.Outcome{Kind: models.OutcomeConflict}
	}

	saved := s.save(ctx, r.Username, r.Email, DigestPassword(r.Password))
	if !saved.IsSuccess {
		s.logError(ctx, "Failed to save user registration", detailOr(saved.Error, "unknown error"))
		return models.Outcome{Kind: models.OutcomePersistenceFailed}
	}
	r.IsSaved = true
	span.AddEvent("user.saved")

	outcome = models.Outcome{Kind: models.OutcomeSuccess}
	code, err := s.generateCode()
	if err != nil {
		// The user exists now; a missing code degrades like a failed email.
		s.logWarning(ctx, "Failed to generate confirmation code", err.Error())
		outcome.NotificationFailed = true
	} else {
		outcome.ConfirmationCode = code
		sent := s.sendConfirmation(ctx, r.Email, code)
		if !sent.IsSuccess {
			s.logWarning(ctx, "Failed to send confirmation email", joinDetail(r.Email, sent.Error))
			outcome.NotificationFailed = true
		}
	}

	s.logInfo(ctx, "User registration successful", r.Username)
	return outcome
}

func (s *Service) userExists(ctx context.Context, username string) (exists bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			exists, err = false, fmt.Errorf("user lookup panicked: %v", rec)
		}
	}()
	return s.persistence.UserExists(ctx, username)
}

func (s *Service) save(ctx context.Context, username, email, digest string) (res models.SaveResult) {
	defer func() {
		if rec := recover(); rec != nil {
			res = models.SaveResult{IsSuccess: false, Error: fmt.Sprintf("save panicked: %v", rec)}
		}
	}()
	return s.persistence.Save(ctx, username, email, digest)
}

func (s *Service) sendConfirmation(ctx context.Context, email, code string) (res models.EmailResult) {
	defer func() {
		if rec := recover(); rec != nil {
			res = models.EmailResult{IsSuccess: false, Error: fmt.Sprintf("send panicked: %v", rec)}
		}
	}()
	return s.notifier.SendConfirmation(ctx, email, code)
}

func (s *Service) generateCode() (code string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			code, err = "", fmt.Errorf("code generation panicked: %v", rec)
		}
	}()
	return s.codes.Generate()
}

func detailOr(detail, fallback string) string {
	if detail == "" {
		return fallback
	}
	return detail
}

func joinDetail(subject, detail string) string {
	if detail == "" {
		return subject
	}
	return subject + ": " + detail
}
