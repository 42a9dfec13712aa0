package service

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"signup/internal/registration/models"
	"signup/internal/registration/service/mocks"
	"signup/internal/registration/validation"
)

func (s *ServiceSuite) TestExecute_Success() {
	ctx := context.Background()
	r := newValidRegistration()
	digest := DigestPassword(r.Password)

	gomock.InOrder(
		s.mockPersistence.EXPECT().UserExists(gomock.Any(), "testuser123").Return(false, nil),
		s.mockPersistence.EXPECT().Save(gomock.Any(), "testuser123", "test@example.com", digest).
			Return(models.SaveResult{IsSuccess: true}),
		s.mockCodes.EXPECT().Generate().Return("A1B2C3", nil),
		s.mockNotifier.EXPECT().SendConfirmation(gomock.Any(), "test@example.com", "A1B2C3").
			Return(models.EmailResult{IsSuccess: true}),
	)

	status := s.service.Execute(ctx, r)

	s.Equal(models.StatusRegistered, status)
	s.True(r.IsSaved)
	s.False(r.IsExistingUser)
	s.True(r.IsEmailValid)
	s.True(r.IsPasswordValid)
	s.Empty(r.ValidationErrors)
	s.Equal([]string{"info"}, s.logger.levels())
	s.Equal("User registration successful", s.logger.last().message)
	s.InDelta(1, testutil.ToFloat64(s.metrics.RegistrationsTotal.WithLabelValues("success")), 0)
}

func (s *ServiceSuite) TestRun_SuccessCarriesConfirmationCode() {
	s.mockPersistence.EXPECT().UserExists(gomock.Any(), gomock.Any()).Return(false, nil)
	s.mockPersistence.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.SaveResult{IsSuccess: true})
	s.mockCodes.EXPECT().Generate().Return("ZZ9PLZ", nil)
	s.mockNotifier.EXPECT().SendConfirmation(gomock.Any(), gomock.Any(), "ZZ9PLZ").
		Return(models.EmailResult{IsSuccess: true})

	outcome := s.service.Run(context.Background(), newValidRegistration())

	s.Equal(models.OutcomeSuccess, outcome.Kind)
	s.Equal("ZZ9PLZ", outcome.ConfirmationCode)
	s.False(outcome.NotificationFailed)
}

func (s *ServiceSuite) TestExecute_ValidationFailure() {
	s.Run("empty username stops before persistence", func() {
		r := newValidRegistration()
		r.Username = ""

		status := s.service.Execute(context.Background(), r)

		s.Contains(status, validation.MsgUsernameRequired)
		s.False(r.IsSaved)
		s.False(r.IsExistingUser)
	})

	s.Run("all messages joined in rule order", func() {
		r := &models.Registration{
			Username:             "",
			Email:                "invalid-email",
			EmailConfirmation:    "different-email",
			Password:             "weak",
			PasswordConfirmation: "different",
		}

		outcome := s.service.Run(context.Background(), r)

		s.Equal(models.OutcomeValidationFailed, outcome.Kind)
		s.Equal(r.ValidationErrors, outcome.Errors)
		s.Equal(
			"Username is required, Invalid email format, Email addresses do not match, "+
				"Password must be at least 8 characters long, Passwords do not match",
			outcome.Status(),
		)
		s.False(r.IsSaved)
	})

	s.Equal("error", s.logger.last().level)
	s.Equal("Input validation failed", s.logger.last().message)
	s.InDelta(2, testutil.ToFloat64(s.metrics.RegistrationsTotal.WithLabelValues("validation_failed")), 0)
}

func (s *ServiceSuite) TestExecute_ExistingUser() {
	r := newValidRegistration()
	s.mockPersistence.EXPECT().UserExists(gomock.Any(), r.Username).Return(true, nil)

	status := s.service.Execute(context.Background(), r)

	s.Equal(models.StatusUsernameTaken, status)
	s.True(r.IsExistingUser)
	s.False(r.IsSaved)
	s.Equal(logEntry{level: "error", message: "User already exists", details: r.Username}, s.logger.last())
}

func (s *ServiceSuite) TestExecute_PersistenceFailures() {
	s.Run("lookup error", func() {
		r := newValidRegistration()
		s.mockPersistence.EXPECT().UserExists(gomock.Any(), r.Username).Return(false, errors.New("connection refused"))

		status := s.service.Execute(context.Background(), r)

		s.Equal(models.StatusRegistrationFailed, status)
		s.False(r.IsSaved)
		s.False(r.IsExistingUser)
		s.Equal("connection refused", s.logger.last().details)
	})

	s.Run("save reports failure", func() {
		r := newValidRegistration()
		s.mockPersistence.EXPECT().UserExists(gomock.Any(), r.Username).Return(false, nil)
		s.mockPersistence.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.SaveResult{IsSuccess: false, Error: "duplicate key"})

		status := s.service.Execute(context.Background(), r)

		s.Equal(models.StatusRegistrationFailed, status)
		s.False(r.IsSaved)
		s.Equal(logEntry{level: "error", message: "Failed to save user registration", details: "duplicate key"}, s.logger.last())
	})

	s.Run("save failure without detail", func() {
		r := newValidRegistration()
		s.mockPersistence.EXPECT().UserExists(gomock.Any(), r.Username).Return(false, nil)
		s.mockPersistence.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.SaveResult{})

		s.Equal(models.StatusRegistrationFailed, s.service.Execute(context.Background(), r))
		s.Equal("unknown error", s.logger.last().details)
	})

	s.Run("save panics", func() {
		r := newValidRegistration()
		s.mockPersistence.EXPECT().UserExists(gomock.Any(), r.Username).Return(false, nil)
		s.mockPersistence.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, string, string) models.SaveResult {
				panic("driver exploded")
			})

		s.NotPanics(func() {
			s.Equal(models.StatusRegistrationFailed, s.service.Execute(context.Background(), r))
		})
		s.False(r.IsSaved)
	})

	s.Run("lookup panics", func() {
		r := newValidRegistration()
		s.mockPersistence.EXPECT().UserExists(gomock.Any(), r.Username).
			DoAndReturn(func(context.Context, string) (bool, error) {
				panic("nil pool")
			})

		s.NotPanics(func() {
			s.Equal(models.StatusRegistrationFailed, s.service.Execute(context.Background(), r))
		})
	})

	s.InDelta(5, testutil.ToFloat64(s.metrics.RegistrationsTotal.WithLabelValues("persistence_failed")), 0)
}

func (s *ServiceSuite) TestExecute_NotificationFailureIsSwallowed() {
	s.Run("notifier reports failure", func() {
		r := newValidRegistration()
		s.mockPersistence.EXPECT().UserExists(gomock.Any(), r.Username).Return(false, nil)
		s.mockPersistence.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.SaveResult{IsSuccess: true})
		s.mockCodes.EXPECT().Generate().Return("ABC123", nil)
		s.mockNotifier.EXPECT().SendConfirmation(gomock.Any(), r.Email, "ABC123").
			Return(models.EmailResult{IsSuccess: false, Error: "smtp timeout"})

		outcome := s.service.Run(context.Background(), r)

		s.Equal(models.StatusRegistered, outcome.Status())
		s.True(outcome.NotificationFailed)
		s.True(r.IsSaved)
		s.Equal([]string{"warning", "info"}, s.logger.levels())
		s.Equal("test@example.com: smtp timeout", s.logger.entries[0].details)
	})

	s.Run("notifier panics", func() {
		s.logger.entries = nil
		r := newValidRegistration()
		s.mockPersistence.EXPECT().UserExists(gomock.Any(), r.Username).Return(false, nil)
		s.mockPersistence.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.SaveResult{IsSuccess: true})
		s.mockCodes.EXPECT().Generate().Return("ABC123", nil)
		s.mockNotifier.EXPECT().SendConfirmation(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, string) models.EmailResult {
				panic("broker gone")
			})

		var status string
		s.NotPanics(func() {
			status = s.service.Execute(context.Background(), r)
		})
		s.Equal(models.StatusRegistered, status)
		s.True(r.IsSaved)
	})

	s.Run("code generation fails", func() {
		s.logger.entries = nil
		r := newValidRegistration()
		s.mockPersistence.EXPECT().UserExists(gomock.Any(), r.Username).Return(false, nil)
		s.mockPersistence.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.SaveResult{IsSuccess: true})
		s.mockCodes.EXPECT().Generate().Return("", errors.New("entropy exhausted"))

		outcome := s.service.Run(context.Background(), r)

		s.Equal(models.OutcomeSuccess, outcome.Kind)
		s.True(outcome.NotificationFailed)
		s.Empty(outcome.ConfirmationCode)
		s.Equal([]string{"warning", "info"}, s.logger.levels())
	})

	s.InDelta(3, testutil.ToFloat64(s.metrics.ConfirmationEmailsFailed), 0)
}

func (s *ServiceSuite) TestExecute_PanickingLoggerDoesNotChangeStatus() {
	logger := mocks.NewMockLogger(s.ctrl)
	svc := New(s.mockPersistence, s.mockNotifier, WithLogger(logger), WithCodeGenerator(s.mockCodes))

	r := newValidRegistration()
	s.mockPersistence.EXPECT().UserExists(gomock.Any(), r.Username).Return(true, nil)
	logger.EXPECT().Error(gomock.Any(), "User already exists", r.Username).Do(func(context.Context, string, string) {
		panic("log sink closed")
	})

	var status string
	s.NotPanics(func() {
		status = svc.Execute(context.Background(), r)
	})
	s.Equal(models.StatusUsernameTaken, status)
	s.True(r.IsExistingUser)
}

func (s *ServiceSuite) TestExecute_LogClassification() {
	logger := mocks.NewMockLogger(s.ctrl)
	svc := New(s.mockPersistence, s.mockNotifier, WithLogger(logger), WithCodeGenerator(s.mockCodes))

	r := newValidRegistration()
	gomock.InOrder(
		s.mockPersistence.EXPECT().UserExists(gomock.Any(), r.Username).Return(false, nil),
		s.mockPersistence.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.SaveResult{IsSuccess: true}),
		s.mockCodes.EXPECT().Generate().Return("ABC123", nil),
		s.mockNotifier.EXPECT().SendConfirmation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.EmailResult{IsSuccess: false}),
		logger.EXPECT().Warning(gomock.Any(), "Failed to send confirmation email", r.Email),
		logger.EXPECT().Info(gomock.Any(), "User registration successful", r.Username),
	)

	s.Equal(models.StatusRegistered, svc.Execute(context.Background(), r))
}
