package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

const defaultBatchSize = 100

type KafkaPublisher struct {
	writer    *kafka.Writer
	batchSize int
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
		batchSize: defaultBatchSize,
	}
}

// Publish writes messages in chunks of batchSize. Messages sharing a key
// (the supplier id) land on the same partition.
func (k *KafkaPublisher) Publish(ctx context.Context, msgs ...domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	now := time.Now()
	km := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  now,
		})
	}

	for i := 0; i < len(km); i += k.batchSize {
		end := i + k.batchSize
		if end > len(km) {
			end = len(km)
		}
		if err := k.writer.WriteMessages(ctx, km[i:end]...); err != nil {
			return fmt.Errorf("failed to write messages %d-%d: %w", i, end, err)
		}
	}
	return nil
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ...domain.Message) error { return nil }
