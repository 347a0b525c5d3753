// Package kafka publishes slot events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"lechon/internal/adapters/out/events"
	"lechon/internal/core/domain/model/slot"

	"github.com/IBM/sarama"
)

// SlotEventProducer sends each slot event as a JSON message keyed by slot id,
// so the events of one slot stay ordered within a partition.
type SlotEventProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewSlotEventProducer connects a synchronous producer to brokers.
func NewSlotEventProducer(brokers []string, topic string, logger *slog.Logger) (*SlotEventProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewSlotEventProducerWith(producer, topic, logger), nil
}

// NewSlotEventProducerWith wraps an existing producer.
func NewSlotEventProducerWith(producer sarama.SyncProducer, topic string, logger *slog.Logger) *SlotEventProducer {
	return &SlotEventProducer{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka-producer", "topic", topic),
	}
}

// Publish sends the events as one batch.
func (p *SlotEventProducer) Publish(ctx context.Context, evs ...slot.Event) error {
	if len(evs) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	messages := make([]*sarama.ProducerMessage, 0, len(evs))
	for _, e := range evs {
		payload, err := json.Marshal(events.NewSlotEvent(e))
		if err != nil {
			return fmt.Errorf("encode slot event: %w", err)
		}
		messages = append(messages, &sarama.ProducerMessage{
			Topic:     p.topic,
			Key:       sarama.StringEncoder(e.SlotID.String()),
			Value:     sarama.ByteEncoder(payload),
			Timestamp: e.OccurredAt,
		})
	}

	if err := p.producer.SendMessages(messages); err != nil {
		return fmt.Errorf("send slot events: %w", err)
	}

	p.logger.DebugContext(ctx, "slot events sent", "count", len(messages))
	return nil
}

func (p *SlotEventProducer) Close() error {
	return p.producer.Close()
}
