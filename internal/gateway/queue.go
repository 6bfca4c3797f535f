package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// QueuePublisher publishes a payload to a named queue/topic and reports
// whether the publish succeeded.
type QueuePublisher interface {
	Put(ctx context.Context, topic string, key string, payload any) (bool, error)
}

// KafkaPublisher implements QueuePublisher on a shared kafka writer. The
// topic is set per message so one writer serves every queue.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher against the given brokers.
func NewKafkaPublisher(brokers []string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Put publishes the payload as JSON, keyed so related events land in order.
func (p *KafkaPublisher) Put(ctx context.Context, topic string, key string, payload any) (bool, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("marshal payload for %s: %w", topic, err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		p.logger.Error("queue publish failed",
			zap.String("topic", topic), zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("publish to %s: %w", topic, err)
	}
	p.logger.Info("queue publish",
		zap.String("topic", topic), zap.String("key", key))
	return true, nil
}
