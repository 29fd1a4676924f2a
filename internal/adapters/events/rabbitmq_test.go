package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservationportal/internal/domain"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	out    []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.out = append(f.out, published{exchange, key, msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestRabbitMQPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitMQPublisher{ch: ch, exchange: "reservations"}
	event := &domain.ReservationEvent{
		Type:          domain.EventReservationCreated,
		ReservationID: "res-1",
		UserID:        "user-1",
		SlotID:        "slot-1",
		OccurredAt:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, ch.out, 1)
	got := ch.out[0]
	assert.Equal(t, "reservations", got.exchange)
	assert.Equal(t, "reservation.created", got.key)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "application/json", got.msg.ContentType)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, "res-1", decoded["reservation_id"])
	assert.Equal(t, "slot-1", decoded["slot_id"])

	ch.err = errors.New("channel closed")
	require.Error(t, p.Publish(context.Background(), event))

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestLogPublisher(t *testing.T) {
	p := &LogPublisher{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	require.NoError(t, p.Publish(context.Background(), &domain.ReservationEvent{Type: domain.EventSlotDeleted}))
}
