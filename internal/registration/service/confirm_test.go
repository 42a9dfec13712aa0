package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	dErrors "signup/pkg/domain-errors"
	"signup/pkg/platform/sentinel"
	"signup/pkg/requestcontext"
)

func (s *ServiceSuite) TestConfirm() {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	s.Run("matching code confirms and consumes", func() {
		gomock.InOrder(
			s.mockPending.EXPECT().Get(ctx, "jane@example.com").Return("AB12CD", nil),
			s.mockConfirmer.EXPECT().MarkConfirmed(ctx, "jane@example.com", now).Return(nil),
			s.mockPending.EXPECT().Delete(ctx, "jane@example.com").Return(nil),
		)

		err := s.service.Confirm(ctx, " Jane@Example.com ", "ab12cd")

		s.Require().NoError(err)
		s.InDelta(1, testutil.ToFloat64(s.metrics.EmailsConfirmed), 0)
	})

	s.Run("no pending code", func() {
		s.mockPending.EXPECT().Get(ctx, "jane@example.com").
			Return("", fmt.Errorf("confirmation code: %w", sentinel.ErrNotFound))

		err := s.service.Confirm(ctx, "jane@example.com", "AB12CD")

		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("expired code", func() {
		s.mockPending.EXPECT().Get(ctx, "jane@example.com").Return("", sentinel.ErrExpired)

		err := s.service.Confirm(ctx, "jane@example.com", "AB12CD")

		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("store failure", func() {
		s.mockPending.EXPECT().Get(ctx, "jane@example.com").Return("", errors.New("redis down"))

		err := s.service.Confirm(ctx, "jane@example.com", "AB12CD")

		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("mismatched code", func() {
		s.mockPending.EXPECT().Get(ctx, "jane@example.com").Return("AB12CD", nil)

		err := s.service.Confirm(ctx, "jane@example.com", "AB12CE")

		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal("warning", s.logger.last().level)
	})

	s.Run("user vanished", func() {
		s.mockPending.EXPECT().Get(ctx, "jane@example.com").Return("AB12CD", nil)
		s.mockConfirmer.EXPECT().MarkConfirmed(ctx, "jane@example.com", now).Return(sentinel.ErrNotFound)

		err := s.service.Confirm(ctx, "jane@example.com", "AB12CD")

		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("delete failure is not fatal", func() {
		s.mockPending.EXPECT().Get(ctx, "jane@example.com").Return("AB12CD", nil)
		s.mockConfirmer.EXPECT().MarkConfirmed(ctx, "jane@example.com", now).Return(nil)
		s.mockPending.EXPECT().Delete(ctx, "jane@example.com").Return(errors.New("redis down"))

		s.NoError(s.service.Confirm(ctx, "jane@example.com", "AB12CD"))
	})

	s.Run("blank email", func() {
		err := s.service.Confirm(ctx, "  ", "AB12CD")

		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestConfirm_NotConfigured() {
	svc := New(s.mockPersistence, s.mockNotifier, WithLogger(s.logger))

	err := svc.Confirm(context.Background(), "jane@example.com", "AB12CD")

	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
