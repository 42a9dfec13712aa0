package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the registration workflow.
type Metrics struct {
	RegistrationsTotal       *prometheus.CounterVec
	ConfirmationEmailsFailed prometheus.Counter
	EmailsConfirmed          prometheus.Counter
	RegistrationDurationMs   prometheus.Histogram
}

// New creates and registers the registration metrics with reg. A nil reg
// registers with the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_registrations_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}),
		ConfirmationEmailsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "signup_confirmation_emails_failed_total",
			Help: "Confirmation emails that could not be dispatched after a successful save",
		}),
		EmailsConfirmed: factory.NewCounter(prometheus.CounterOpts{
			Name: "signup_emails_confirmed_total",
			Help: "Email addresses confirmed with a valid code",
		}),
		RegistrationDurationMs: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "signup_registration_duration_ms",
			Help:    "Duration of a registration workflow run in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
	}
}

// IncrementRegistrations counts one attempt with the given outcome label.
func (m *Metrics) IncrementRegistrations(outcome string) {
	m.RegistrationsTotal.WithLabelValues(outcome).Inc()
}

// IncrementConfirmationEmailsFailed counts a swallowed notification failure.
func (m *Metrics) IncrementConfirmationEmailsFailed() {
	m.ConfirmationEmailsFailed.Inc()
}

// IncrementEmailsConfirmed counts a successful confirmation.
func (m *Metrics) IncrementEmailsConfirmed() {
	m.EmailsConfirmed.Inc()
}

// ObserveRegistrationDuration records the duration of one workflow run.
func (m *Metrics) ObserveRegistrationDuration(durationMs float64) {
	m.RegistrationDurationMs.Observe(durationMs)
}
