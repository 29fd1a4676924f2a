package domain

import (
	"context"
	"time"
)

// Reservation lifecycle event types.
const (
	EventReservationCreated  = "reservation.created"
	EventReservationCanceled = "reservation.canceled"
	EventSlotDeleted         = "slot.deleted"
)

// ReservationEvent is published after a reservation or slot mutation commits.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	SlotID        string    `json:"slot_id"`
	SlotDate      string    `json:"slot_date,omitempty"`
	TimeStart     string    `json:"time_start,omitempty"`
	TimeEnd       string    `json:"time_end,omitempty"`
	CanceledCount int       `json:"canceled_count,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher delivers reservation events to downstream consumers (infrastructure port).
type EventPublisher interface {
	Publish(ctx context.Context, event *ReservationEvent) error
}
