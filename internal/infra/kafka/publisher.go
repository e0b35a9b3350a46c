package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"order-processor/internal/infra"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	w messageWriter
}

var _ infra.EventPublisher = (*Publisher)(nil)

func NewPublisher(brokersSTR, topic string) *Publisher {
	brokers := strings.Split(brokersSTR, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}

	return &Publisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *Publisher) Close() error {
	return p.w.Close()
}

// Publish writes one message keyed by the event's orderId when it has one.
// The routing key travels as the "pattern" header.
func (p *Publisher) Publish(ctx context.Context, routingKey string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}

	var keyed struct {
		OrderID string `json:"orderId"`
	}
	_ = json.Unmarshal(b, &keyed)

	msg := kafka.Message{
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "pattern", Value: []byte(routingKey)},
		},
	}
	if keyed.OrderID != "" {
		msg.Key = []byte(keyed.OrderID)
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", routingKey, err)
	}
	return nil
}
