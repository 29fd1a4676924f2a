// Package events publishes reservation lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"reservationportal/internal/domain"
)

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publishes events as persistent JSON messages to a durable topic exchange. The
// routing key is the event type, e.g. "reservation.created".
type RabbitMQPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// NewRabbitMQPublisher dials url and declares the exchange.
func NewRabbitMQPublisher(url, exchange string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	return &RabbitMQPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event *domain.ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	}
	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, p.exchange, event.Type, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogPublisher logs events instead of delivering them. It is used when no broker is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p *LogPublisher) Publish(ctx context.Context, event *domain.ReservationEvent) error {
	p.Logger.DebugContext(ctx, "reservation event", "type", event.Type, "slot_id", event.SlotID, "user_id", event.UserID)
	return nil
}
