package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"signup/internal/notification"
	"signup/internal/platform/kafka/producer"
	"signup/pkg/email"
)

// Producer publishes a single message synchronously.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// Transport publishes confirmation emails to a topic consumed by the mail
// relay. Records are keyed by the normalized recipient so one address stays
// on one partition.
type Transport struct {
	producer Producer
	topic    string
}

func NewTransport(p Producer, topic string) *Transport {
	return &Transport{producer: p, topic: topic}
}

func (t *Transport) Send(ctx context.Context, msg notification.Message) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode email message: %w", err)
	}
	return t.producer.Produce(ctx, &producer.Message{
		Topic: t.topic,
		Key:   []byte(email.Normalize(msg.To)),
		Value: value,
		Headers: map[string]string{
			"message_id":   msg.ID.String(),
			"content_type": "application/json",
		},
	})
}
