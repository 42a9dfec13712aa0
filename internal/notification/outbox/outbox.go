package outbox

import (
	"context"
	"sync"

	"signup/internal/notification"
)

// Outbox is an in-memory Transport. It keeps every message it was handed,
// for local runs and tests without a mail relay.
type Outbox struct {
	mu       sync.RWMutex
	messages []notification.Message
}

func New() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Send(_ context.Context, msg notification.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
	return nil
}

// Messages returns a snapshot of the delivered messages in send order.
func (o *Outbox) Messages() []notification.Message {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]notification.Message, len(o.messages))
	copy(out, o.messages)
	return out
}

// Last returns the most recent message sent to address.
func (o *Outbox) Last(address string) (notification.Message, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for i := len(o.messages) - 1; i >= 0; i-- {
		if o.messages[i].To == address {
			return o.messages[i], true
		}
	}
	return notification.Message{}, false
}
