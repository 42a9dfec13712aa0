package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"signup/internal/notification/email"
	"signup/internal/registration/models"
	"signup/pkg/requestcontext"
)

// CodeStore records the code a recipient has to echo back to confirm.
type CodeStore interface {
	Put(ctx context.Context, address, code string, ttl time.Duration) error
}

// Transport delivers a rendered message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher sends confirmation emails. It implements the workflow Notifier.
type Dispatcher struct {
	codes     CodeStore
	transport Transport
	from      string
	ttl       time.Duration
	logger    *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithCodeTTL sets how long a recorded code stays valid.
func WithCodeTTL(ttl time.Duration) Option {
	return func(d *Dispatcher) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

func NewDispatcher(codes CodeStore, transport Transport, from string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		codes:     codes,
		transport: transport,
		from:      from,
		ttl:       24 * time.Hour,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SendConfirmation records code for address and dispatches the confirmation
// email. Failures are reported in the result, never returned as errors.
func (d *Dispatcher) SendConfirmation(ctx context.Context, address, code string) models.EmailResult {
	if err := d.send(ctx, address, code); err != nil {
		return models.EmailResult{IsSuccess: false, Error: err.Error()}
	}
	return models.EmailResult{IsSuccess: true}
}

func (d *Dispatcher) send(ctx context.Context, address, code string) error {
	body, err := email.RenderConfirmation(code)
	if err != nil {
		return err
	}
	if err := d.codes.Put(ctx, address, code, d.ttl); err != nil {
		return fmt.Errorf("record confirmation code: %w", err)
	}

	msg := Message{
		ID:        uuid.New(),
		To:        address,
		From:      d.from,
		Subject:   email.ConfirmationSubject,
		HTMLBody:  body,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := d.transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("deliver confirmation email: %w", err)
	}

	d.logger.DebugContext(ctx, "confirmation email dispatched",
		"message_id", msg.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}
