package service

import (
	"context"
	"log/slog"

	"signup/pkg/requestcontext"
)

// SlogLogger adapts a *slog.Logger to the workflow Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps logger, falling back to slog.Default when nil.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) Error(ctx context.Context, message, details string) {
	l.logger.ErrorContext(ctx, message, l.attrs(ctx, details)...)
}

func (l *SlogLogger) Warning(ctx context.Context, message, details string) {
	l.logger.WarnContext(ctx, message, l.attrs(ctx, details)...)
}

func (l *SlogLogger) Info(ctx context.Context, message, details string) {
	l.logger.InfoContext(ctx, message, l.attrs(ctx, details)...)
}

func (l *SlogLogger) attrs(ctx context.Context, details string) []any {
	args := []any{"details", details, "component", "registration"}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	return args
}
