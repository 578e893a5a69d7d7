package outbox

import (
	"context"
	"strconv"

	"surety/internal/platform/kafka/producer"
)

// MessagePublisher is satisfied by *producer.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msgs ...producer.Message) error
}

// KafkaPublisher adapts a producer to the relay's Publisher port.
type KafkaPublisher struct {
	producer MessagePublisher
}

func NewKafkaPublisher(p MessagePublisher) *KafkaPublisher {
	return &KafkaPublisher{producer: p}
}

func (k *KafkaPublisher) Publish(ctx context.Context, entries []Entry) error {
	msgs := make([]producer.Message, len(entries))
	for i, e := range entries {
		msgs[i] = producer.Message{
			Key:   e.AggregateID,
			Value: e.Payload,
			Headers: map[string]string{
				"event_type": e.EventType,
				"outbox_id":  e.ID.String(),
				"sequence":   strconv.FormatInt(e.Sequence, 10),
			},
		}
	}
	return k.producer.Publish(ctx, msgs...)
}
