package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"demo/foodorders/internal/model"
)

type KafkaPublisher struct {
	w      *kafka.Writer
	source string
	logger *slog.Logger
	now    func() time.Time
}

func NewKafkaPublisher(brokers []string, topic, source string, logger *slog.Logger) *KafkaPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	p := &KafkaPublisher{source: source, logger: logger, now: time.Now}
	p.w = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion:   p.completion,
	}
	return p
}

func (p *KafkaPublisher) Publish(ctx context.Context, o model.Order) {
	msg, err := p.message(o)
	if err != nil {
		p.logger.ErrorContext(ctx, "encode order event", "order_id", o.OrderID, "error", err)
		return
	}
	// Async writer: this only enqueues. The request context may end before
	// the batch is flushed.
	if err := p.w.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		p.logger.ErrorContext(ctx, "enqueue order event", "order_id", o.OrderID, "error", err)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

func (p *KafkaPublisher) message(o model.Order) (kafka.Message, error) {
	now := p.now().UTC()
	val, err := json.Marshal(Event{
		EventID:    uuid.NewString(),
		Type:       TypeOrderReceived,
		OrderID:    o.OrderID,
		Item:       o.Item,
		OccurredAt: now,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(o.OrderID),
		Value: val,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "source", Value: []byte(p.source)},
		},
	}, nil
}

func (p *KafkaPublisher) completion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		p.logger.Error("deliver order event", "order_id", string(m.Key), "error", err)
	}
}
