// Package kafka publishes order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"codeorders/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// StatusChangedMessage is the JSON value written for every status change.
type StatusChangedMessage struct {
	OrderID string    `json:"order_id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	At      time.Time `json:"at"`
}

// DefaultPublishTimeout bounds a single Publish call.
const DefaultPublishTimeout = 5 * time.Second

const maxWriteAttempts = 3

type Publisher struct {
	w       *kafka.Writer
	timeout time.Duration
}

// NewPublisher creates a synchronous writer for brokers, a comma separated host list.
// Each Publish gives up after timeout; a non-positive timeout uses DefaultPublishTimeout.
func NewPublisher(brokers, topic string, timeout time.Duration) *Publisher {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &Publisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(brokers, ",")...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			MaxAttempts:  maxWriteAttempts,
			WriteTimeout: timeout,
		},
		timeout: timeout,
	}
}

func (p *Publisher) Close() error {
	return p.w.Close()
}

// Publish writes one message per event keyed by order id, so the changes of one order
// stay ordered within a partition. An unreachable broker fails the call once the
// publish timeout elapses.
func (p *Publisher) Publish(ctx context.Context, events ...order.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := newMessage(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.w.WriteMessages(ctx, msgs...)
}

func newMessage(e order.StatusChanged) (kafka.Message, error) {
	b, err := json.Marshal(StatusChangedMessage{
		OrderID: e.OrderID.String(),
		From:    e.From.String(),
		To:      e.To.String(),
		At:      e.At.UTC(),
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(e.OrderID.String()),
		Value: b,
		Time:  e.At,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}, nil
}
