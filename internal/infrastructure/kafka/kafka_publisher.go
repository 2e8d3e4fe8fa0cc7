package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
)

type DefaultKafkaPublisher struct {
	writer *kafka.Writer
}

func NewDefaultKafkaPublisher(brokers []string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr: kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *DefaultKafkaPublisher) Publish(ctx context.Context, topic string, msgs ...domain.Message) error {
	km := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key: m.Key,
			Value: m.Value,
			Time: time.Now(),
			Topic: topic,
		})
	}

	return k.writer.WriteMessages(ctx, km...)
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}

// WalletEventPublisher serializes wallet events and retries delivery with
// exponential backoff. Delivery happens after the database commit, so a
// failure here never undoes a balance change.
type WalletEventPublisher struct {
	port 			domain.PublisherPort
	topic 			string
	maxElapsedTime 	time.Duration
}

func NewWalletEventPublisher(port domain.PublisherPort, topic string) *WalletEventPublisher {
	return &WalletEventPublisher{
		port: port,
		topic: topic,
		maxElapsedTime: 30 * time.Second,
	}
}

func (p *WalletEventPublisher) PublishWalletEvent(ctx context.Context, event WalletEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal wallet event: %w", err)
	}
	msg := domain.Message{Key: []byte(event.UserID), Value: value}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = p.maxElapsedTime

	attempt := 0
	operation := func() error {
		attempt++
		if err := p.port.Publish(ctx, p.topic, msg); err != nil {
			slog.Warn("wallet event publish failed", "type", event.Type, "attempt", attempt, "error", err)
			return err
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}
