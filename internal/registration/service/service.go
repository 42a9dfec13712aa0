package service

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"signup/internal/registration/metrics"
)

// Service runs the registration workflow: validate, check for an existing
// user, persist, generate a confirmation code, send it, and report one
// outcome. Persistence and notification are external collaborators.
type Service struct {
	persistence Persistence
	notifier    Notifier
	logger      Logger
	codes       CodeGenerator
	pending     PendingCodeStore
	confirmer   UserConfirmer
	metrics     *metrics.Metrics
	tracer      trace.Tracer
}

type Option func(*Service)

func WithLogger(logger Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithCodeGenerator(codes CodeGenerator) Option {
	return func(s *Service) {
		s.codes = codes
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithConfirmation enables Confirm. pending must be the store the notifier
// records codes in.
func WithConfirmation(pending PendingCodeStore, confirmer UserConfirmer) Option {
	return func(s *Service) {
		s.pending = pending
		s.confirmer = confirmer
	}
}

func New(persistence Persistence, notifier Notifier, opts ...Option) *Service {
	svc := &Service{
		persistence: persistence,
		notifier:    notifier,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = NewSlogLogger(nil)
	}
	if svc.codes == nil {
		svc.codes = NewRandomCodeGenerator(nil)
	}
	if svc.tracer == nil {
		svc.tracer = otel.Tracer("signup/registration")
	}
	return svc
}
